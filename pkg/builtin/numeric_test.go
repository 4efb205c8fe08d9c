package builtin

import (
	"math"
	"math/rand"
	"testing"

	"choco.dev/choco/pkg/value"
)

func TestNumericBuiltins(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Rng: rand.New(rand.NewSource(1))}

	tests := []struct {
		name string
		fn   string
		args []value.Value
		want float64
	}{
		{"Sqrt", "sqrt", []value.Value{value.Num(9)}, 3},
		{"Abs", "abs", []value.Value{value.Num(-4)}, 4},
		{"Floor", "floor", []value.Value{value.Num(1.9)}, 1},
		{"Ceil", "ceil", []value.Value{value.Num(1.1)}, 2},
		{"Round", "round", []value.Value{value.Num(1.5)}, 2},
		{"Pow", "pow", []value.Value{value.Num(2), value.Num(10)}, 1024},
		{"Min", "min", []value.Value{value.Num(3), value.Num(5)}, 3},
		{"Max", "max", []value.Value{value.Num(3), value.Num(5)}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := r.Call(ctx, tt.fn, tt.args, 1)
			if err != nil {
				t.Fatal(err)
			}
			if got.Num != tt.want {
				t.Errorf("%s(%v) = %v, want %v", tt.fn, tt.args, got.Num, tt.want)
			}
		})
	}
}

func TestRandomIntStaysWithinBounds(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Rng: rand.New(rand.NewSource(1))}
	for i := 0; i < 50; i++ {
		got, err := r.Call(ctx, "random_int", []value.Value{value.Num(1), value.Num(6)}, 1)
		if err != nil {
			t.Fatal(err)
		}
		if got.Num < 1 || got.Num > 6 {
			t.Fatalf("random_int(1,6) = %v, out of range", got.Num)
		}
	}
}

func TestRandomStaysWithinUnitInterval(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Rng: rand.New(rand.NewSource(1))}
	got, err := r.Call(ctx, "random", nil, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got.Num < 0 || got.Num >= 1 || math.IsNaN(got.Num) {
		t.Fatalf("random() = %v, want [0,1)", got.Num)
	}
}

func TestNumericBuiltinErrors(t *testing.T) {
	r := NewRegistry()
	ctx := &Context{Rng: rand.New(rand.NewSource(1))}

	tests := []struct {
		name string
		fn   string
		args []value.Value
	}{
		{"SqrtNegative", "sqrt", []value.Value{value.Num(-1)}},
		{"AbsNotNumber", "abs", []value.Value{value.Str("x")}},
		{"PowNotNumber", "pow", []value.Value{value.Str("x"), value.Num(2)}},
		{"MinNotNumber", "min", []value.Value{value.Num(1), value.Str("x")}},
		{"RandomIntInverted", "random_int", []value.Value{value.Num(6), value.Num(1)}},
		{"RandomIntNotNumber", "random_int", []value.Value{value.Str("x"), value.Num(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := r.Call(ctx, tt.fn, tt.args, 1); err == nil {
				t.Errorf("%s: expected error, got nil", tt.name)
			}
		})
	}
}
