package builtin

import (
	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/gui"
	"choco.dev/choco/pkg/value"
)

// registerGUI wires each gui_* built-in to the injected gui.Host collaborator
// (spec.md §1, §9: the GUI binding is an out-of-scope seam, never a
// singleton). gui_on and gui_run additionally need a gui.CallAdapter that
// re-enters the interpreter through ctx.Caller.
func registerGUI(r Registry) {
	r["gui_init"] = &Func{Name: "gui_init", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Init(args, line)
	})}
	r["gui_window"] = &Func{Name: "gui_window", Arity: arityRange(0, 3), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Window(args, line)
	})}
	r["gui_button"] = &Func{Name: "gui_button", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Button(args, line)
	})}
	r["gui_label"] = &Func{Name: "gui_label", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Label(args, line)
	})}
	r["gui_entry"] = &Func{Name: "gui_entry", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Entry(args, line)
	})}
	r["gui_box"] = &Func{Name: "gui_box", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Box(args, line)
	})}
	r["gui_checkbox"] = &Func{Name: "gui_checkbox", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Checkbox(args, line)
	})}
	r["gui_textview"] = &Func{Name: "gui_textview", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.TextView(args, line)
	})}
	r["gui_frame"] = &Func{Name: "gui_frame", Arity: arityRange(0, 1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Frame(args, line)
	})}
	r["gui_separator"] = &Func{Name: "gui_separator", Arity: arityExactly(0), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Separator(args, line)
	})}
	r["gui_add"] = &Func{Name: "gui_add", Arity: arityExactly(2), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Add(args, line)
	})}
	r["gui_set_text"] = &Func{Name: "gui_set_text", Arity: arityExactly(2), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.SetText(args, line)
	})}
	r["gui_get_text"] = &Func{Name: "gui_get_text", Arity: arityExactly(1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.GetText(args, line)
	})}
	r["gui_show"] = &Func{Name: "gui_show", Arity: arityExactly(1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Show(args, line)
	})}
	r["gui_quit"] = &Func{Name: "gui_quit", Arity: arityExactly(0), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.Quit(args, line)
	})}
	r["gui_set_sensitive"] = &Func{Name: "gui_set_sensitive", Arity: arityExactly(2), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.SetSensitive(args, line)
	})}
	r["gui_get_checked"] = &Func{Name: "gui_get_checked", Arity: arityExactly(1), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.GetChecked(args, line)
	})}
	r["gui_set_checked"] = &Func{Name: "gui_set_checked", Arity: arityExactly(2), Run: hostCall(func(h gui.Host, args []value.Value, line int) (value.Value, error) {
		return h.SetChecked(args, line)
	})}

	r["gui_on"] = &Func{Name: "gui_on", Arity: arityExactly(3), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		if ctx.GUI == nil {
			return value.Value{}, chocoerr.NewRuntime(line, "gui_on: no GUI host bound")
		}
		return ctx.GUI.On(args, line, callAdapter(ctx, line))
	}}
	r["gui_run"] = &Func{Name: "gui_run", Arity: arityExactly(0), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		if ctx.GUI == nil {
			return value.Value{}, chocoerr.NewRuntime(line, "gui_run: no GUI host bound")
		}
		return ctx.GUI.Run(args, line, callAdapter(ctx, line))
	}}
}

// hostCall adapts a gui.Host method call into a Func.Run body, rejecting
// the call up front when no host has been injected (spec.md §9: running
// without a bound GUI host is a runtime error, not a silent no-op).
func hostCall(fn func(h gui.Host, args []value.Value, line int) (value.Value, error)) func(*Context, []value.Value, int) (value.Value, error) {
	return func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		if ctx.GUI == nil {
			return value.Value{}, chocoerr.NewRuntime(line, "gui: no GUI host bound")
		}
		return fn(ctx.GUI, args, line)
	}
}

// callAdapter wraps ctx.Caller so the gui.Host can re-enter the interpreter
// by name (a registered function) or lambda value without importing
// pkg/interp.
func callAdapter(ctx *Context, line int) gui.CallAdapter {
	return func(callee value.Value, args []value.Value) (value.Value, error) {
		return ctx.Caller.CallValue(callee, args, line)
	}
}
