package interp

import (
	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

// CallValue implements builtin.Caller: it lets a built-in (map/filter/
// reduce, a gui_on/gui_run callback adapter) invoke a ChocoLang callable
// without pkg/builtin importing this package (spec.md §4.5's call rule:
// callee must be a function-name string, resolved first to built-ins then
// to user functions, or a lambda).
func (in *Interpreter) CallValue(callee value.Value, args []value.Value, line int) (value.Value, error) {
	switch callee.Kind {
	case value.String:
		name := callee.Str
		if _, ok := in.builtins.Lookup(name); ok {
			return in.builtins.Call(in.bctx, name, args, line)
		}
		if fn, ok := in.functions[name]; ok {
			return in.callFunction(fn, args, line)
		}
		return value.Value{}, chocoerr.NewRuntime(line, "unknown function %q", name)
	case value.Lambda:
		return in.callLambda(callee.Lambda, args, line)
	default:
		return value.Value{}, chocoerr.NewRuntime(line, "cannot call a value of type %s", callee.TypeOf())
	}
}

// callFunction implements spec.md §4.6's function call mechanics: push a
// scope, bind parameters, save/restore the cursor and stream, execute
// until the body's end or a Returning signal.
func (in *Interpreter) callFunction(fn *funcDef, args []value.Value, line int) (value.Value, error) {
	if len(args) < len(fn.Params) {
		return value.Value{}, chocoerr.NewRuntime(line, "call: missing arguments (want %d, got %d)", len(fn.Params), len(args))
	}
	in.env.PushScope()
	defer in.env.PopScope()
	for i, p := range fn.Params {
		in.env.Assign(p, args[i])
	}

	savedStream, savedPos := in.stream, in.pos
	defer func() { in.stream, in.pos = savedStream, savedPos }()
	in.stream, in.pos = fn.Stream, fn.Body.Start

	in.funcDepth++
	defer func() { in.funcDepth-- }()

	return in.runBody(fn.Body.End)
}

// callLambda is identical to callFunction except the pushed scope starts
// from the lambda's capture snapshot, so parameters shadow captures with
// the same name (spec.md §4.6).
func (in *Interpreter) callLambda(lam *value.LambdaValue, args []value.Value, line int) (value.Value, error) {
	if len(args) < len(lam.Params) {
		return value.Value{}, chocoerr.NewRuntime(line, "call: missing arguments (want %d, got %d)", len(lam.Params), len(args))
	}
	in.env.PushScopeWith(lam.Captures)
	defer in.env.PopScope()
	for i, p := range lam.Params {
		in.env.Assign(p, args[i])
	}

	savedStream, savedPos := in.stream, in.pos
	defer func() { in.stream, in.pos = savedStream, savedPos }()
	in.stream, in.pos = lam.Stream, lam.Body.Start

	in.funcDepth++
	defer func() { in.funcDepth-- }()

	return in.runBody(lam.Body.End)
}

// runBody executes statements from the current cursor up to bodyEnd,
// returning the Returning signal's value or nil if control falls off the
// end without an explicit return (spec.md §4.6: "missing return yields
// nil"). Breaking/Continuing never reach here uncaught — they are only
// ever produced inside an active loop's own execSpan, which absorbs them
// before they can propagate past it. A loop enclosing the call site does
// not count: the body starts with no active loop.
func (in *Interpreter) runBody(bodyEnd int) (value.Value, error) {
	savedLoopDepth := in.loopDepth
	in.loopDepth = 0
	defer func() { in.loopDepth = savedLoopDepth }()
	for in.pos < bodyEnd {
		sig, err := in.execStatement()
		if err != nil {
			return value.Value{}, err
		}
		if sig.Kind == SigReturning {
			return sig.Value, nil
		}
	}
	return value.NilValue(), nil
}
