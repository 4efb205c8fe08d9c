package gui

import (
	"testing"

	"choco.dev/choco/pkg/value"
)

func TestWindowAndButtonReturnDistinctIDs(t *testing.T) {
	h := NewNullHost()
	win, err := h.Window([]value.Value{value.Str("main")}, 1)
	if err != nil {
		t.Fatalf("Window: %v", err)
	}
	btn, err := h.Button([]value.Value{value.Str("ok")}, 1)
	if err != nil {
		t.Fatalf("Button: %v", err)
	}
	if win.Str == btn.Str {
		t.Fatalf("expected distinct widget ids, got %q twice", win.Str)
	}
}

func TestAddUnknownChildErrors(t *testing.T) {
	h := NewNullHost()
	win, _ := h.Window(nil, 1)
	_, err := h.Add([]value.Value{win, value.Str("nope")}, 1)
	if err == nil {
		t.Fatal("expected an error for an unknown child widget id")
	}
}

func TestSetTextAndGetTextRoundTrip(t *testing.T) {
	h := NewNullHost()
	lbl, _ := h.Label([]value.Value{value.Str("hi")}, 1)
	if _, err := h.SetText([]value.Value{lbl, value.Str("bye")}, 1); err != nil {
		t.Fatalf("SetText: %v", err)
	}
	got, err := h.GetText([]value.Value{lbl}, 1)
	if err != nil {
		t.Fatalf("GetText: %v", err)
	}
	if got.Str != "bye" {
		t.Fatalf("expected %q, got %q", "bye", got.Str)
	}
}

func TestCheckboxDefaultsUncheckedAndSetChecked(t *testing.T) {
	h := NewNullHost()
	cb, _ := h.Checkbox([]value.Value{value.Str("agree")}, 1)
	got, err := h.GetChecked([]value.Value{cb}, 1)
	if err != nil {
		t.Fatalf("GetChecked: %v", err)
	}
	if got.Bool {
		t.Fatal("expected a fresh checkbox to start unchecked")
	}
	if _, err := h.SetChecked([]value.Value{cb, value.Bln(true)}, 1); err != nil {
		t.Fatalf("SetChecked: %v", err)
	}
	got, _ = h.GetChecked([]value.Value{cb}, 1)
	if !got.Bool {
		t.Fatal("expected checkbox to report checked after SetChecked(true)")
	}
}

func TestRunDeliversQueuedEventToRegisteredHandler(t *testing.T) {
	h := NewNullHost()
	btn, _ := h.Button([]value.Value{value.Str("ok")}, 1)

	var calledWith []value.Value
	adapter := func(callee value.Value, args []value.Value) (value.Value, error) {
		calledWith = args
		return value.NilValue(), nil
	}

	if _, err := h.On([]value.Value{btn, value.Str("click"), value.Str("on_click")}, 1, adapter); err != nil {
		t.Fatalf("On: %v", err)
	}
	h.QueueEvent(btn.Str, "click")

	if _, err := h.Run(nil, 1, adapter); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(calledWith) != 1 || calledWith[0].Str != btn.Str {
		t.Fatalf("expected the handler to be called with the widget id, got %v", calledWith)
	}
}

func TestRunRejectsReentrantInvocation(t *testing.T) {
	h := NewNullHost()
	btn, _ := h.Button(nil, 1)
	h.On([]value.Value{btn, value.Str("click"), value.Str("f")}, 1, nil)
	h.QueueEvent(btn.Str, "click")

	var innerErr error
	var adapter CallAdapter
	adapter = func(callee value.Value, args []value.Value) (value.Value, error) {
		_, innerErr = h.Run(nil, 1, adapter)
		return value.NilValue(), nil
	}
	if _, err := h.Run(nil, 1, adapter); err != nil {
		t.Fatalf("outer Run: %v", err)
	}
	if innerErr == nil {
		t.Fatal("expected a reentrant gui_run to fail")
	}
}

func TestQuitStopsRunAndDropsRemainingQueue(t *testing.T) {
	h := NewNullHost()
	btn, _ := h.Button(nil, 1)
	calls := 0
	adapter := func(callee value.Value, args []value.Value) (value.Value, error) {
		calls++
		h.Quit(nil, 1)
		return value.NilValue(), nil
	}
	h.On([]value.Value{btn, value.Str("click"), value.Str("f")}, 1, adapter)
	h.QueueEvent(btn.Str, "click")
	h.QueueEvent(btn.Str, "click")

	if _, err := h.Run(nil, 1, adapter); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected gui_quit to stop delivery after the first event, got %d calls", calls)
	}
}
