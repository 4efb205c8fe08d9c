// Package value implements ChocoLang's dynamically-typed value model: a
// tagged variant over number, string, bool, array, struct, lambda, and nil
// (spec.md §3).
package value

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind is the tag of the Value variant.
type Kind uint8

const (
	Number Kind = iota
	String
	Bool
	Array
	Struct
	Lambda
	Nil
)

func (k Kind) String() string {
	switch k {
	case Number:
		return "number"
	case String:
		return "string"
	case Bool:
		return "bool"
	case Array:
		return "array"
	case Struct:
		return "struct"
	case Lambda:
		return "lambda"
	case Nil:
		return "nil"
	default:
		return "unknown"
	}
}

// Value is the tagged union described by spec.md §3. Exactly one field is
// meaningful for a given Kind.
type Value struct {
	Kind   Kind
	Num    float64
	Str    string
	Bool   bool
	Arr    []Value
	Struct *StructInstance
	Lambda *LambdaValue
}

// StructInstance is one instantiated struct value: its declared type name
// and its field values, tracked in insertion order for deterministic
// printing (DESIGN.md Open Question 3).
type StructInstance struct {
	TypeName string
	Fields   map[string]Value
	Order    []string
}

// NewStruct creates an instance whose fields are lit's, in the struct
// literal's own order, followed by every declared field the literal did
// not set, defaulting to Nil, in declaration order.
func NewStruct(typeName string, declared []string, lit map[string]Value, litOrder []string) *StructInstance {
	s := &StructInstance{TypeName: typeName, Fields: make(map[string]Value, len(declared))}
	seen := make(map[string]bool, len(declared))
	for _, name := range litOrder {
		v, ok := lit[name]
		if !ok {
			continue
		}
		s.Fields[name] = v
		s.Order = append(s.Order, name)
		seen[name] = true
	}
	for _, name := range declared {
		if seen[name] {
			continue
		}
		s.Fields[name] = Value{Kind: Nil}
		s.Order = append(s.Order, name)
		seen[name] = true
	}
	return s
}

// Get looks up a field, reporting whether it exists.
func (s *StructInstance) Get(name string) (Value, bool) {
	v, ok := s.Fields[name]
	return v, ok
}

// Set writes a field, appending to Order on first write.
func (s *StructInstance) Set(name string, v Value) {
	if _, ok := s.Fields[name]; !ok {
		s.Order = append(s.Order, name)
	}
	s.Fields[name] = v
}

// Constructors for the non-composite kinds.
func Num(n float64) Value    { return Value{Kind: Number, Num: n} }
func Str(s string) Value     { return Value{Kind: String, Str: s} }
func Bln(b bool) Value       { return Value{Kind: Bool, Bool: b} }
func Arr(elems []Value) Value { return Value{Kind: Array, Arr: elems} }
func NilValue() Value        { return Value{Kind: Nil} }
func StructVal(s *StructInstance) Value { return Value{Kind: Struct, Struct: s} }
func LambdaVal(l *LambdaValue) Value     { return Value{Kind: Lambda, Lambda: l} }

// Truthy implements spec.md §4.5's truthiness coercion: bool uses its own
// value; number uses != 0; string/array/struct use non-empty; lambda and
// nil are always falsey.
func (v Value) Truthy() bool {
	switch v.Kind {
	case Bool:
		return v.Bool
	case Number:
		return v.Num != 0
	case String:
		return len(v.Str) != 0
	case Array:
		return len(v.Arr) != 0
	case Struct:
		return v.Struct != nil && len(v.Struct.Fields) != 0
	default:
		return false
	}
}

// Equal implements kind-and-value equality: mismatching kinds are never
// equal (spec.md §3, §4.5). Arrays/structs/lambdas compare by identity of
// their contents is not specified by the spec beyond numbers/strings/
// bools, so container kinds are never equal (they never appear on either
// side of a match/== in any spec example).
func Equal(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Number:
		return a.Num == b.Num
	case String:
		return a.Str == b.Str
	case Bool:
		return a.Bool == b.Bool
	case Nil:
		return true
	default:
		return false
	}
}

// String renders a Value the way `puts`, string-interpolation, and string
// concatenation render it (spec.md §4.2): this is the single print path,
// mirroring the teacher's Value.Format being the VM/stdlib/test's shared
// print path.
func (v Value) String() string {
	switch v.Kind {
	case Number:
		return formatNumber(v.Num)
	case String:
		return v.Str
	case Bool:
		if v.Bool {
			return "true"
		}
		return "false"
	case Array:
		parts := make([]string, len(v.Arr))
		for i, e := range v.Arr {
			parts[i] = e.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case Struct:
		parts := make([]string, 0, len(v.Struct.Order))
		for _, name := range v.Struct.Order {
			parts = append(parts, fmt.Sprintf("%s: %s", name, v.Struct.Fields[name].String()))
		}
		return fmt.Sprintf("%s { %s }", v.Struct.TypeName, strings.Join(parts, ", "))
	case Lambda:
		return "<lambda>"
	case Nil:
		return "nil"
	default:
		return ""
	}
}

// TypeOf implements the `typeof` built-in: the kind name, or a struct's
// own type name.
func (v Value) TypeOf() string {
	if v.Kind == Struct {
		return v.Struct.TypeName
	}
	return v.Kind.String()
}

// formatNumber prints an integer-valued double without a decimal point,
// and otherwise strips trailing zeros and a trailing '.' (spec.md §4.2).
func formatNumber(n float64) string {
	if n == math.Trunc(n) && !math.IsInf(n, 0) {
		return strconv.FormatFloat(n, 'f', 0, 64)
	}
	s := strconv.FormatFloat(n, 'f', -1, 64)
	return s
}
