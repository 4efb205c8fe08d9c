package builtin

import (
	"strings"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

func registerStrings(r Registry) {
	r["uppercase"] = &Func{Name: "uppercase", Arity: arityExactly(1), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		s, err := requireString("uppercase", args[0], line)
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(strings.ToUpper(s)), nil
	}}
	r["lowercase"] = &Func{Name: "lowercase", Arity: arityExactly(1), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		s, err := requireString("lowercase", args[0], line)
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(strings.ToLower(s)), nil
	}}
	r["substr"] = &Func{Name: "substr", Arity: arityExactly(3), Run: builtinSubstr}
	r["split"] = &Func{Name: "split", Arity: arityExactly(2), Run: builtinSplit}
	r["join"] = &Func{Name: "join", Arity: arityExactly(2), Run: builtinJoin}
}

func requireString(name string, v value.Value, line int) (string, error) {
	if v.Kind != value.String {
		return "", chocoerr.NewRuntime(line, "%s: expected string, got %s", name, v.TypeOf())
	}
	return v.Str, nil
}

func builtinSubstr(ctx *Context, args []value.Value, line int) (value.Value, error) {
	s, err := requireString("substr", args[0], line)
	if err != nil {
		return value.Value{}, err
	}
	if args[1].Kind != value.Number || args[2].Kind != value.Number {
		return value.Value{}, chocoerr.NewRuntime(line, "substr: start and length must be numbers")
	}
	start := int(args[1].Num)
	length := int(args[2].Num)
	if start < 0 || start > len(s) {
		return value.Value{}, chocoerr.NewRuntime(line, "substr: start %d out of range for string of length %d", start, len(s))
	}
	end := start + length
	if length < 0 || end > len(s) {
		end = len(s)
	}
	return value.Str(s[start:end]), nil
}

func builtinSplit(ctx *Context, args []value.Value, line int) (value.Value, error) {
	s, err := requireString("split", args[0], line)
	if err != nil {
		return value.Value{}, err
	}
	sep, err := requireString("split", args[1], line)
	if err != nil {
		return value.Value{}, err
	}
	if sep == "" {
		return value.Value{}, chocoerr.NewRuntime(line, "split: delimiter must not be empty")
	}
	parts := strings.Split(s, sep)
	out := make([]value.Value, len(parts))
	for i, p := range parts {
		out[i] = value.Str(p)
	}
	return value.Arr(out), nil
}

func builtinJoin(ctx *Context, args []value.Value, line int) (value.Value, error) {
	if args[0].Kind != value.Array {
		return value.Value{}, chocoerr.NewRuntime(line, "join: expected array, got %s", args[0].TypeOf())
	}
	sep, err := requireString("join", args[1], line)
	if err != nil {
		return value.Value{}, err
	}
	parts := make([]string, len(args[0].Arr))
	for i, v := range args[0].Arr {
		parts[i] = v.String()
	}
	return value.Str(strings.Join(parts, sep)), nil
}
