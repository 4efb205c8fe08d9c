// Package gui is the out-of-scope GUI collaborator's seam: a widget
// registry and event bus the core interpreter talks to through a single
// injected interface, never a singleton (spec.md §1, §9).
//
// The method set is recovered verbatim from original_source/choco_gui.h,
// the GTK4 binding the original ChocoLang implementation carries; this
// module owns only the seam, not a real toolkit binding.
package gui

import "choco.dev/choco/pkg/value"

// CallAdapter re-enters the interpreter synchronously from a host
// callback — e.g. a button click dispatched while gui_run has transferred
// control to the host event loop (spec.md §5). callee is whatever value
// gui_on was handed: a function name string or a lambda value.
type CallAdapter func(callee value.Value, args []value.Value) (value.Value, error)

// Host is the widget-registry + event-dispatch seam. Each method mirrors
// one gui_* built-in, taking the call's arguments and source line.
type Host interface {
	Init(args []value.Value, line int) (value.Value, error)
	Window(args []value.Value, line int) (value.Value, error)
	Button(args []value.Value, line int) (value.Value, error)
	Label(args []value.Value, line int) (value.Value, error)
	Entry(args []value.Value, line int) (value.Value, error)
	Box(args []value.Value, line int) (value.Value, error)
	Add(args []value.Value, line int) (value.Value, error)
	SetText(args []value.Value, line int) (value.Value, error)
	GetText(args []value.Value, line int) (value.Value, error)
	On(args []value.Value, line int, call CallAdapter) (value.Value, error)
	Show(args []value.Value, line int) (value.Value, error)
	Run(args []value.Value, line int, call CallAdapter) (value.Value, error)
	Quit(args []value.Value, line int) (value.Value, error)
	Checkbox(args []value.Value, line int) (value.Value, error)
	TextView(args []value.Value, line int) (value.Value, error)
	Frame(args []value.Value, line int) (value.Value, error)
	Separator(args []value.Value, line int) (value.Value, error)
	SetSensitive(args []value.Value, line int) (value.Value, error)
	GetChecked(args []value.Value, line int) (value.Value, error)
	SetChecked(args []value.Value, line int) (value.Value, error)
}
