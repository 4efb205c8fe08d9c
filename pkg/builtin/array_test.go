package builtin

import (
	"testing"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/value"
)

// fakeCaller stands in for the interpreter when testing map/filter/reduce:
// it dispatches a callee by name to a plain Go function instead of walking
// a token stream.
type fakeCaller struct {
	fns map[string]func(args []value.Value) (value.Value, error)
}

func (c *fakeCaller) CallValue(callee value.Value, args []value.Value, line int) (value.Value, error) {
	fn, ok := c.fns[callee.Str]
	if !ok {
		return value.Value{}, chocoerr.NewRuntime(line, "unknown function %q", callee.Str)
	}
	return fn(args)
}

func TestArrayBuiltins(t *testing.T) {
	r := NewRegistry()
	caller := &fakeCaller{fns: map[string]func([]value.Value) (value.Value, error){
		"double":   func(args []value.Value) (value.Value, error) { return value.Num(args[0].Num * 2), nil },
		"isEven":   func(args []value.Value) (value.Value, error) { return value.Bln(int(args[0].Num)%2 == 0), nil },
		"sum":      func(args []value.Value) (value.Value, error) { return value.Num(args[0].Num + args[1].Num), nil },
	}}
	ctx := &Context{Caller: caller}

	xs := value.Arr([]value.Value{value.Num(1), value.Num(2), value.Num(3), value.Num(4)})

	t.Run("Push", func(t *testing.T) {
		got, err := r.Call(ctx, "push", []value.Value{xs, value.Num(5)}, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Arr) != 5 || got.Arr[4].Num != 5 {
			t.Errorf("push(xs,5) = %v", got.Arr)
		}
		if len(xs.Arr) != 4 {
			t.Errorf("push mutated its input: %v", xs.Arr)
		}
	})

	t.Run("Pop", func(t *testing.T) {
		got, err := r.Call(ctx, "pop", []value.Value{xs}, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got.Num != 4 {
			t.Errorf("pop(xs) = %v, want 4", got.Num)
		}
	})

	t.Run("Map", func(t *testing.T) {
		got, err := r.Call(ctx, "map", []value.Value{xs, value.Str("double")}, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Arr) != 4 || got.Arr[0].Num != 2 || got.Arr[3].Num != 8 {
			t.Errorf("map(xs,double) = %v", got.Arr)
		}
	})

	t.Run("Filter", func(t *testing.T) {
		got, err := r.Call(ctx, "filter", []value.Value{xs, value.Str("isEven")}, 1)
		if err != nil {
			t.Fatal(err)
		}
		if len(got.Arr) != 2 || got.Arr[0].Num != 2 || got.Arr[1].Num != 4 {
			t.Errorf("filter(xs,isEven) = %v", got.Arr)
		}
	})

	t.Run("Reduce", func(t *testing.T) {
		got, err := r.Call(ctx, "reduce", []value.Value{xs, value.Num(0), value.Str("sum")}, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got.Num != 10 {
			t.Errorf("reduce(xs,0,sum) = %v, want 10", got.Num)
		}
	})
}

func TestArrayBuiltinErrors(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Caller: &fakeCaller{fns: map[string]func([]value.Value) (value.Value, error){}}}

	tests := []struct {
		name string
		fn   string
		args []value.Value
	}{
		{"PushNotArray", "push", []value.Value{value.Num(1), value.Num(2)}},
		{"PopNotArray", "pop", []value.Value{value.Num(1)}},
		{"PopEmpty", "pop", []value.Value{value.Arr(nil)}},
		{"MapNotArray", "map", []value.Value{value.Num(1), value.Str("double")}},
		{"MapUnknownFn", "map", []value.Value{value.Arr([]value.Value{value.Num(1)}), value.Str("missing")}},
		{"FilterNotArray", "filter", []value.Value{value.Num(1), value.Str("isEven")}},
		{"ReduceNotArray", "reduce", []value.Value{value.Num(1), value.Num(0), value.Str("sum")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Call(ctx, tt.fn, tt.args, 1); err == nil {
				t.Errorf("%s: expected error, got nil", tt.name)
			}
		})
	}
}
