package builtin

import (
	"math"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

func registerNumeric(r Registry) {
	num1 := func(name string, fn func(float64) (float64, error)) *Func {
		return &Func{Name: name, Arity: arityExactly(1), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
			n, err := requireNumber(name, args[0], line)
			if err != nil {
				return value.Value{}, err
			}
			res, err := fn(n)
			if err != nil {
				return value.Value{}, chocoerr.NewRuntime(line, "%s: %s", name, err.Error())
			}
			return value.Num(res), nil
		}}
	}

	r["sqrt"] = num1("sqrt", func(n float64) (float64, error) {
		if n < 0 {
			return 0, errNegativeSqrt
		}
		return math.Sqrt(n), nil
	})
	r["abs"] = num1("abs", func(n float64) (float64, error) { return math.Abs(n), nil })
	r["floor"] = num1("floor", func(n float64) (float64, error) { return math.Floor(n), nil })
	r["ceil"] = num1("ceil", func(n float64) (float64, error) { return math.Ceil(n), nil })
	r["round"] = num1("round", func(n float64) (float64, error) { return math.Round(n), nil })

	r["pow"] = &Func{Name: "pow", Arity: arityExactly(2), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		a, b, err := requireNumberPair("pow", args, line)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Pow(a, b)), nil
	}}
	r["min"] = &Func{Name: "min", Arity: arityExactly(2), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		a, b, err := requireNumberPair("min", args, line)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Min(a, b)), nil
	}}
	r["max"] = &Func{Name: "max", Arity: arityExactly(2), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		a, b, err := requireNumberPair("max", args, line)
		if err != nil {
			return value.Value{}, err
		}
		return value.Num(math.Max(a, b)), nil
	}}

	r["random"] = &Func{Name: "random", Arity: arityExactly(0), Run: func(ctx *Context, args []value.Value, line int) (value.Value, error) {
		return value.Num(ctx.Rng.Float64()), nil
	}}
	r["random_int"] = &Func{Name: "random_int", Arity: arityExactly(2), Run: builtinRandomInt}
}

var errNegativeSqrt = errString("square root of a negative number")

type errString string

func (e errString) Error() string { return string(e) }

func requireNumber(name string, v value.Value, line int) (float64, error) {
	if v.Kind != value.Number {
		return 0, chocoerr.NewRuntime(line, "%s: expected number, got %s", name, v.TypeOf())
	}
	return v.Num, nil
}

func requireNumberPair(name string, args []value.Value, line int) (float64, float64, error) {
	a, err := requireNumber(name, args[0], line)
	if err != nil {
		return 0, 0, err
	}
	b, err := requireNumber(name, args[1], line)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func builtinRandomInt(ctx *Context, args []value.Value, line int) (value.Value, error) {
	lo, hi, err := requireNumberPair("random_int", args, line)
	if err != nil {
		return value.Value{}, err
	}
	loI, hiI := int64(lo), int64(hi)
	if loI > hiI {
		return value.Value{}, chocoerr.NewRuntime(line, "random_int: min %d greater than max %d", loI, hiI)
	}
	n := loI + ctx.Rng.Int63n(hiI-loI+1)
	return value.Num(float64(n)), nil
}
