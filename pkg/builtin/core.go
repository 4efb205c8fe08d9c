package builtin

import (
	"strconv"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

func registerCore(r Registry) {
	r["len"] = &Func{Name: "len", Arity: arityExactly(1), Run: builtinLen}
	r["typeof"] = &Func{Name: "typeof", Arity: arityExactly(1), Run: builtinTypeof}
	r["str"] = &Func{Name: "str", Arity: arityRange(0, 1), Run: builtinStr}
	r["int"] = &Func{Name: "int", Arity: arityExactly(1), Run: builtinInt}
	r["float"] = &Func{Name: "float", Arity: arityExactly(1), Run: builtinFloat}
}

func builtinLen(ctx *Context, args []value.Value, line int) (value.Value, error) {
	switch args[0].Kind {
	case value.Array:
		return value.Num(float64(len(args[0].Arr))), nil
	case value.String:
		return value.Num(float64(len(args[0].Str))), nil
	default:
		return value.Value{}, chocoerr.NewRuntime(line, "len: expected array or string, got %s", args[0].TypeOf())
	}
}

func builtinTypeof(ctx *Context, args []value.Value, line int) (value.Value, error) {
	return value.Str(args[0].TypeOf()), nil
}

func builtinStr(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if len(args) == 0 {
		return value.Str(""), nil
	}
	return value.Str(args[0].String()), nil
}

func builtinInt(ctx *Context, args []value.Value, line int) (value.Value, error) {
	switch args[0].Kind {
	case value.Number:
		return value.Num(float64(int64(args[0].Num))), nil
	case value.String:
		n, err := strconv.ParseFloat(args[0].Str, 64)
		if err != nil {
			return value.Value{}, chocoerr.NewRuntime(line, "int: cannot parse %q as a number", args[0].Str)
		}
		return value.Num(float64(int64(n))), nil
	default:
		return value.Value{}, chocoerr.NewRuntime(line, "int: expected number or string, got %s", args[0].TypeOf())
	}
}

func builtinFloat(ctx *Context, args []value.Value, line int) (value.Value, error) {
	switch args[0].Kind {
	case value.Number:
		return args[0], nil
	case value.String:
		n, err := strconv.ParseFloat(args[0].Str, 64)
		if err != nil {
			return value.Value{}, chocoerr.NewRuntime(line, "float: cannot parse %q as a number", args[0].Str)
		}
		return value.Num(n), nil
	default:
		return value.Value{}, chocoerr.NewRuntime(line, "float: expected number or string, got %s", args[0].TypeOf())
	}
}
