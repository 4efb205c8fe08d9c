package builtin

import (
	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

func registerArray(r Registry) {
	r["push"] = &Func{Name: "push", Arity: arityExactly(2), Run: builtinPush}
	r["pop"] = &Func{Name: "pop", Arity: arityExactly(1), Run: builtinPop}
	r["map"] = &Func{Name: "map", Arity: arityExactly(2), Run: builtinMap}
	r["filter"] = &Func{Name: "filter", Arity: arityExactly(2), Run: builtinFilter}
	r["reduce"] = &Func{Name: "reduce", Arity: arityExactly(3), Run: builtinReduce}
}

// builtinPush returns a *new* array with elem appended — the original is
// never mutated, so `arr = push(arr, x);` is idiomatic (spec.md §4.7 note).
func builtinPush(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if args[0].Kind != value.Array {
		return value.Value{}, chocoerr.NewRuntime(line, "push: expected array, got %s", args[0].TypeOf())
	}
	out := make([]value.Value, len(args[0].Arr)+1)
	copy(out, args[0].Arr)
	out[len(args[0].Arr)] = args[1]
	return value.Arr(out), nil
}

func builtinPop(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if args[0].Kind != value.Array {
		return value.Value{}, chocoerr.NewRuntime(line, "pop: expected array, got %s", args[0].TypeOf())
	}
	if len(args[0].Arr) == 0 {
		return value.Value{}, chocoerr.NewRuntime(line, "pop: array is empty")
	}
	return args[0].Arr[len(args[0].Arr)-1], nil
}

func builtinMap(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if args[0].Kind != value.Array {
		return value.Value{}, chocoerr.NewRuntime(line, "map: expected array, got %s", args[0].TypeOf())
	}
	fn := args[1]
	out := make([]value.Value, len(args[0].Arr))
	for i, elem := range args[0].Arr {
		res, err := ctx.Caller.CallValue(fn, []value.Value{elem}, line)
		if err != nil {
			return value.Value{}, err
		}
		out[i] = res
	}
	return value.Arr(out), nil
}

func builtinFilter(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if args[0].Kind != value.Array {
		return value.Value{}, chocoerr.NewRuntime(line, "filter: expected array, got %s", args[0].TypeOf())
	}
	fn := args[1]
	var out []value.Value
	for _, elem := range args[0].Arr {
		res, err := ctx.Caller.CallValue(fn, []value.Value{elem}, line)
		if err != nil {
			return value.Value{}, err
		}
		if res.Truthy() {
			out = append(out, elem)
		}
	}
	return value.Arr(out), nil
}

func builtinReduce(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if args[0].Kind != value.Array {
		return value.Value{}, chocoerr.NewRuntime(line, "reduce: expected array, got %s", args[0].TypeOf())
	}
	acc := args[1]
	fn := args[2]
	for _, elem := range args[0].Arr {
		res, err := ctx.Caller.CallValue(fn, []value.Value{acc, elem}, line)
		if err != nil {
			return value.Value{}, err
		}
		acc = res
	}
	return acc, nil
}
