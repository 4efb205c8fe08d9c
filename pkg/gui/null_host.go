package gui

import (
	"fmt"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

// widget is one entry in NullHost's in-memory registry.
type widget struct {
	id        string
	kind      string
	text      string
	checked   bool
	sensitive bool
	children  []string
}

// queuedEvent is a dispatched event waiting to be delivered by Run.
type queuedEvent struct {
	widgetID string
	event    string
	args     []value.Value
}

// NullHost is a headless widget registry and event bus: no real toolkit
// is bound (spec.md §1 scopes the GUI layer to its seam only), but every
// gui_* built-in behaves as the original's GTK4 binding contractually
// would — widgets get ids, handlers get registered, gui_run delivers
// queued events synchronously through the CallAdapter.
type NullHost struct {
	widgets  map[string]*widget
	nextID   int
	handlers map[string]map[string]value.Value // widget id -> event -> callback
	queue    []queuedEvent
	running  bool
	quit     bool
}

// NewNullHost creates an empty registry.
func NewNullHost() *NullHost {
	return &NullHost{
		widgets:  make(map[string]*widget),
		handlers: make(map[string]map[string]value.Value),
	}
}

// QueueEvent schedules an event to be delivered the next time Run drains
// the queue — the deterministic substitute for a live toolkit delivering
// a click/keypress. Test-only entry point; no gui_* built-in calls this.
func (h *NullHost) QueueEvent(widgetID, event string, args ...value.Value) {
	h.queue = append(h.queue, queuedEvent{widgetID: widgetID, event: event, args: args})
}

func (h *NullHost) newWidget(kind string) *widget {
	h.nextID++
	w := &widget{id: fmt.Sprintf("%s-%d", kind, h.nextID), kind: kind, sensitive: true}
	h.widgets[w.id] = w
	return w
}

func (h *NullHost) lookup(args []value.Value, idx int, name string, line int) (*widget, error) {
	if idx >= len(args) || args[idx].Kind != value.String {
		return nil, chocoerr.NewRuntime(line, "%s: expected a widget id string argument", name)
	}
	w, ok := h.widgets[args[idx].Str]
	if !ok {
		return nil, chocoerr.NewRuntime(line, "%s: unknown widget id %q", name, args[idx].Str)
	}
	return w, nil
}

func (h *NullHost) Init(args []value.Value, line int) (value.Value, error) {
	return value.NilValue(), nil
}

func (h *NullHost) Window(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("window")
	if len(args) > 0 && args[0].Kind == value.String {
		w.text = args[0].Str
	}
	return value.Str(w.id), nil
}

func (h *NullHost) Button(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("button")
	if len(args) > 0 && args[0].Kind == value.String {
		w.text = args[0].Str
	}
	return value.Str(w.id), nil
}

func (h *NullHost) Label(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("label")
	if len(args) > 0 && args[0].Kind == value.String {
		w.text = args[0].Str
	}
	return value.Str(w.id), nil
}

func (h *NullHost) Entry(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("entry")
	if len(args) > 0 && args[0].Kind == value.String {
		w.text = args[0].Str
	}
	return value.Str(w.id), nil
}

func (h *NullHost) Box(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("box")
	return value.Str(w.id), nil
}

func (h *NullHost) Checkbox(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("checkbox")
	if len(args) > 0 && args[0].Kind == value.String {
		w.text = args[0].Str
	}
	return value.Str(w.id), nil
}

func (h *NullHost) TextView(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("textview")
	return value.Str(w.id), nil
}

func (h *NullHost) Frame(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("frame")
	if len(args) > 0 && args[0].Kind == value.String {
		w.text = args[0].Str
	}
	return value.Str(w.id), nil
}

func (h *NullHost) Separator(args []value.Value, line int) (value.Value, error) {
	w := h.newWidget("separator")
	return value.Str(w.id), nil
}

func (h *NullHost) Add(args []value.Value, line int) (value.Value, error) {
	parent, err := h.lookup(args, 0, "gui_add", line)
	if err != nil {
		return value.Value{}, err
	}
	child, err := h.lookup(args, 1, "gui_add", line)
	if err != nil {
		return value.Value{}, err
	}
	parent.children = append(parent.children, child.id)
	return value.NilValue(), nil
}

func (h *NullHost) SetText(args []value.Value, line int) (value.Value, error) {
	w, err := h.lookup(args, 0, "gui_set_text", line)
	if err != nil {
		return value.Value{}, err
	}
	if len(args) < 2 || args[1].Kind != value.String {
		return value.Value{}, chocoerr.NewRuntime(line, "gui_set_text: expected a string argument")
	}
	w.text = args[1].Str
	return value.NilValue(), nil
}

func (h *NullHost) GetText(args []value.Value, line int) (value.Value, error) {
	w, err := h.lookup(args, 0, "gui_get_text", line)
	if err != nil {
		return value.Value{}, err
	}
	return value.Str(w.text), nil
}

func (h *NullHost) On(args []value.Value, line int, call CallAdapter) (value.Value, error) {
	w, err := h.lookup(args, 0, "gui_on", line)
	if err != nil {
		return value.Value{}, err
	}
	if len(args) < 3 || args[1].Kind != value.String {
		return value.Value{}, chocoerr.NewRuntime(line, "gui_on: expected (widget, event_name, callback)")
	}
	event := args[1].Str
	callback := args[2]
	if callback.Kind != value.String && callback.Kind != value.Lambda {
		return value.Value{}, chocoerr.NewRuntime(line, "gui_on: callback must be a function name or a lambda")
	}
	if h.handlers[w.id] == nil {
		h.handlers[w.id] = make(map[string]value.Value)
	}
	h.handlers[w.id][event] = callback
	return value.NilValue(), nil
}

func (h *NullHost) Show(args []value.Value, line int) (value.Value, error) {
	if _, err := h.lookup(args, 0, "gui_show", line); err != nil {
		return value.Value{}, err
	}
	return value.NilValue(), nil
}

// Run drains the queued-event list, dispatching each to its registered
// handler through call. It must not be invoked while already running
// (spec.md §5: GUI callbacks re-enter synchronously and must not overlap).
func (h *NullHost) Run(args []value.Value, line int, call CallAdapter) (value.Value, error) {
	if h.running {
		return value.Value{}, chocoerr.NewRuntime(line, "gui_run: already running")
	}
	h.running = true
	h.quit = false
	defer func() { h.running = false }()

	for len(h.queue) > 0 && !h.quit {
		ev := h.queue[0]
		h.queue = h.queue[1:]
		handlersForWidget, ok := h.handlers[ev.widgetID]
		if !ok {
			continue
		}
		callback, ok := handlersForWidget[ev.event]
		if !ok {
			continue
		}
		if _, err := call(callback, append([]value.Value{value.Str(ev.widgetID)}, ev.args...)); err != nil {
			return value.Value{}, err
		}
	}
	return value.NilValue(), nil
}

func (h *NullHost) Quit(args []value.Value, line int) (value.Value, error) {
	h.quit = true
	h.queue = nil
	return value.NilValue(), nil
}

func (h *NullHost) SetSensitive(args []value.Value, line int) (value.Value, error) {
	w, err := h.lookup(args, 0, "gui_set_sensitive", line)
	if err != nil {
		return value.Value{}, err
	}
	if len(args) < 2 || args[1].Kind != value.Bool {
		return value.Value{}, chocoerr.NewRuntime(line, "gui_set_sensitive: expected a bool argument")
	}
	w.sensitive = args[1].Bool
	return value.NilValue(), nil
}

func (h *NullHost) GetChecked(args []value.Value, line int) (value.Value, error) {
	w, err := h.lookup(args, 0, "gui_get_checked", line)
	if err != nil {
		return value.Value{}, err
	}
	return value.Bln(w.checked), nil
}

func (h *NullHost) SetChecked(args []value.Value, line int) (value.Value, error) {
	w, err := h.lookup(args, 0, "gui_set_checked", line)
	if err != nil {
		return value.Value{}, err
	}
	if len(args) < 2 || args[1].Kind != value.Bool {
		return value.Value{}, chocoerr.NewRuntime(line, "gui_set_checked: expected a bool argument")
	}
	w.checked = args[1].Bool
	return value.NilValue(), nil
}
