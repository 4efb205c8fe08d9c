package interp

import (
	"math"
	"strconv"
	"strings"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/token"
	"choco.dev/choco/pkg/value"
)

// evalExpression is the grammar's entry point (spec.md §4.5):
// expression -> logical-or.
func (in *Interpreter) evalExpression() (value.Value, error) {
	return in.evalOr()
}

func (in *Interpreter) evalOr() (value.Value, error) {
	left, err := in.evalAnd()
	if err != nil {
		return value.Value{}, err
	}
	for in.cur().Kind == token.OR {
		in.advance()
		right, err := in.evalAnd()
		if err != nil {
			return value.Value{}, err
		}
		left = value.Bln(left.Truthy() || right.Truthy())
	}
	return left, nil
}

func (in *Interpreter) evalAnd() (value.Value, error) {
	left, err := in.evalComparison()
	if err != nil {
		return value.Value{}, err
	}
	for in.cur().Kind == token.AND {
		in.advance()
		right, err := in.evalComparison()
		if err != nil {
			return value.Value{}, err
		}
		left = value.Bln(left.Truthy() && right.Truthy())
	}
	return left, nil
}

func (in *Interpreter) evalComparison() (value.Value, error) {
	left, err := in.evalTerm()
	if err != nil {
		return value.Value{}, err
	}
	for {
		op := in.cur().Kind
		switch op {
		case token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE:
			line := in.cur().Line
			in.advance()
			right, err := in.evalTerm()
			if err != nil {
				return value.Value{}, err
			}
			left, err = compareValues(op, left, right, line)
			if err != nil {
				return value.Value{}, err
			}
		default:
			return left, nil
		}
	}
}

func compareValues(op token.Kind, a, b value.Value, line int) (value.Value, error) {
	switch op {
	case token.EQ:
		return value.Bln(value.Equal(a, b)), nil
	case token.NEQ:
		return value.Bln(!value.Equal(a, b)), nil
	}
	if a.Kind != value.Number || b.Kind != value.Number {
		return value.Value{}, chocoerr.NewRuntime(line, "comparison requires two numbers, got %s and %s", a.TypeOf(), b.TypeOf())
	}
	switch op {
	case token.LT:
		return value.Bln(a.Num < b.Num), nil
	case token.GT:
		return value.Bln(a.Num > b.Num), nil
	case token.LE:
		return value.Bln(a.Num <= b.Num), nil
	case token.GE:
		return value.Bln(a.Num >= b.Num), nil
	}
	return value.Value{}, chocoerr.NewRuntime(line, "unreachable comparison operator")
}

func (in *Interpreter) evalTerm() (value.Value, error) {
	left, err := in.evalFactor()
	if err != nil {
		return value.Value{}, err
	}
	for in.cur().Kind == token.PLUS || in.cur().Kind == token.MINUS {
		op := in.cur().Kind
		line := in.cur().Line
		in.advance()
		right, err := in.evalFactor()
		if err != nil {
			return value.Value{}, err
		}
		left, err = addOrSub(op, left, right, line)
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func addOrSub(op token.Kind, a, b value.Value, line int) (value.Value, error) {
	if op == token.PLUS {
		if a.Kind == value.Number && b.Kind == value.Number {
			return value.Num(a.Num + b.Num), nil
		}
		if a.Kind == value.String && b.Kind == value.String {
			return value.Str(a.Str + b.Str), nil
		}
		return value.Value{}, chocoerr.NewRuntime(line, "'+' requires two numbers or two strings, got %s and %s", a.TypeOf(), b.TypeOf())
	}
	if a.Kind != value.Number || b.Kind != value.Number {
		return value.Value{}, chocoerr.NewRuntime(line, "'-' requires two numbers, got %s and %s", a.TypeOf(), b.TypeOf())
	}
	return value.Num(a.Num - b.Num), nil
}

func (in *Interpreter) evalFactor() (value.Value, error) {
	left, err := in.evalUnary()
	if err != nil {
		return value.Value{}, err
	}
	for in.cur().Kind == token.STAR || in.cur().Kind == token.SLASH || in.cur().Kind == token.PERCENT {
		op := in.cur().Kind
		line := in.cur().Line
		in.advance()
		right, err := in.evalUnary()
		if err != nil {
			return value.Value{}, err
		}
		left, err = mulDivMod(op, left, right, line)
		if err != nil {
			return value.Value{}, err
		}
	}
	return left, nil
}

func mulDivMod(op token.Kind, a, b value.Value, line int) (value.Value, error) {
	if a.Kind != value.Number || b.Kind != value.Number {
		return value.Value{}, chocoerr.NewRuntime(line, "%s requires two numbers, got %s and %s", op, a.TypeOf(), b.TypeOf())
	}
	switch op {
	case token.STAR:
		return value.Num(a.Num * b.Num), nil
	case token.SLASH:
		if b.Num == 0 {
			return value.Value{}, chocoerr.NewRuntime(line, "division by zero")
		}
		return value.Num(a.Num / b.Num), nil
	case token.PERCENT:
		if b.Num == 0 {
			return value.Value{}, chocoerr.NewRuntime(line, "modulo by zero")
		}
		return value.Num(math.Mod(a.Num, b.Num)), nil
	}
	return value.Value{}, chocoerr.NewRuntime(line, "unreachable factor operator")
}

func (in *Interpreter) evalUnary() (value.Value, error) {
	switch in.cur().Kind {
	case token.BANG:
		in.advance()
		v, err := in.evalUnary()
		if err != nil {
			return value.Value{}, err
		}
		if v.Kind == value.Bool {
			return value.Bln(!v.Bool), nil
		}
		return value.Bln(false), nil
	case token.MINUS:
		line := in.cur().Line
		in.advance()
		v, err := in.evalUnary()
		if err != nil {
			return value.Value{}, err
		}
		if v.Kind != value.Number {
			return value.Value{}, chocoerr.NewRuntime(line, "unary '-' requires a number, got %s", v.TypeOf())
		}
		return value.Num(-v.Num), nil
	default:
		return in.evalCall()
	}
}

// evalCall implements the call/index/field-access postfix chain: call ->
// primary ( (args) | [expr] | .IDENT )* (spec.md §4.5).
func (in *Interpreter) evalCall() (value.Value, error) {
	v, err := in.evalPrimary()
	if err != nil {
		return value.Value{}, err
	}
	for {
		switch in.cur().Kind {
		case token.LPAREN:
			line := in.cur().Line
			in.advance()
			args, err := in.evalArgList(token.RPAREN)
			if err != nil {
				return value.Value{}, err
			}
			if err := in.expect(token.RPAREN); err != nil {
				return value.Value{}, err
			}
			in.advance()
			v, err = in.CallValue(v, args, line)
			if err != nil {
				return value.Value{}, err
			}
		case token.LBRACKET:
			line := in.cur().Line
			in.advance()
			idx, err := in.evalExpression()
			if err != nil {
				return value.Value{}, err
			}
			if err := in.expect(token.RBRACKET); err != nil {
				return value.Value{}, err
			}
			in.advance()
			v, err = indexValue(v, idx, line)
			if err != nil {
				return value.Value{}, err
			}
		case token.DOT:
			line := in.cur().Line
			in.advance()
			if err := in.expect(token.IDENT); err != nil {
				return value.Value{}, err
			}
			field := in.advance().Lexeme
			v, err = fieldAccess(v, field, line)
			if err != nil {
				return value.Value{}, err
			}
		default:
			return v, nil
		}
	}
}

func (in *Interpreter) evalArgList(terminator token.Kind) ([]value.Value, error) {
	var args []value.Value
	for in.cur().Kind != terminator {
		a, err := in.evalExpression()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		if in.cur().Kind == token.COMMA {
			in.advance()
			continue
		}
		break
	}
	return args, nil
}

func indexValue(v, idx value.Value, line int) (value.Value, error) {
	if idx.Kind != value.Number {
		return value.Value{}, chocoerr.NewRuntime(line, "index must be a number, got %s", idx.TypeOf())
	}
	i := int(idx.Num)
	switch v.Kind {
	case value.Array:
		if i < 0 || i >= len(v.Arr) {
			return value.Value{}, chocoerr.NewRuntime(line, "array index %d out of range (length %d)", i, len(v.Arr))
		}
		return v.Arr[i], nil
	case value.String:
		if i < 0 || i >= len(v.Str) {
			return value.Value{}, chocoerr.NewRuntime(line, "string index %d out of range (length %d)", i, len(v.Str))
		}
		return value.Str(string(v.Str[i])), nil
	default:
		return value.Value{}, chocoerr.NewRuntime(line, "indexing requires an array or string, got %s", v.TypeOf())
	}
}

func fieldAccess(v value.Value, field string, line int) (value.Value, error) {
	if v.Kind != value.Struct {
		return value.Value{}, chocoerr.NewRuntime(line, "field access requires a struct, got %s", v.TypeOf())
	}
	f, ok := v.Struct.Get(field)
	if !ok {
		return value.Value{}, chocoerr.NewRuntime(line, "%s has no field %q", v.Struct.TypeName, field)
	}
	return f, nil
}

// evalPrimary handles literals, string interpolation, lambda/array/struct
// literals, identifiers, and parenthesized expressions (spec.md §4.5).
func (in *Interpreter) evalPrimary() (value.Value, error) {
	tok := in.cur()
	switch tok.Kind {
	case token.NUMBER:
		in.advance()
		n, err := strconv.ParseFloat(tok.Lexeme, 64)
		if err != nil {
			return value.Value{}, chocoerr.NewRuntime(tok.Line, "malformed number literal %q", tok.Lexeme)
		}
		return value.Num(n), nil
	case token.STRING:
		in.advance()
		s, err := in.interpolate(tok.Lexeme, tok.Line)
		if err != nil {
			return value.Value{}, err
		}
		return value.Str(s), nil
	case token.TRUE:
		in.advance()
		return value.Bln(true), nil
	case token.FALSE:
		in.advance()
		return value.Bln(false), nil
	case token.PIPE, token.OR:
		return in.evalLambdaLiteral()
	case token.LBRACKET:
		return in.evalArrayLiteral()
	case token.IDENT:
		return in.evalIdentPrimary()
	case token.LPAREN:
		in.advance()
		v, err := in.evalExpression()
		if err != nil {
			return value.Value{}, err
		}
		if err := in.expect(token.RPAREN); err != nil {
			return value.Value{}, err
		}
		in.advance()
		return v, nil
	default:
		return value.Value{}, chocoerr.NewParse(tok.Line, "unexpected token %s in expression", tok.Kind)
	}
}

// evalLambdaLiteral parses `| p1, …, pn | => { BODY }`; a bare `||` lexes
// as one OR token and stands for the empty parameter list (spec.md §4.5).
// The capture snapshot is taken here, by value, before the body ever
// runs — DESIGN.md Open Question 6 and spec.md §9's closure-capture note.
func (in *Interpreter) evalLambdaLiteral() (value.Value, error) {
	var params []string
	if in.cur().Kind == token.OR {
		in.advance()
	} else {
		in.advance() // opening '|'
		p, err := in.parseParamList()
		if err != nil {
			return value.Value{}, err
		}
		params = p
		if err := in.expect(token.PIPE); err != nil {
			return value.Value{}, err
		}
		in.advance()
	}
	if err := in.expect(token.FATARROW); err != nil {
		return value.Value{}, err
	}
	in.advance()
	if err := in.expect(token.LBRACE); err != nil {
		return value.Value{}, err
	}
	openIdx := in.pos
	span, closeIdx, err := in.braceSpanAt(openIdx)
	if err != nil {
		return value.Value{}, err
	}
	in.pos = closeIdx + 1

	captures := in.env.Snapshot()
	lam := &value.LambdaValue{Params: params, Body: span, Stream: in.stream, Captures: captures}
	return value.LambdaVal(lam), nil
}

func (in *Interpreter) evalArrayLiteral() (value.Value, error) {
	in.advance() // '['
	elems, err := in.evalArgList(token.RBRACKET)
	if err != nil {
		return value.Value{}, err
	}
	if err := in.expect(token.RBRACKET); err != nil {
		return value.Value{}, err
	}
	in.advance()
	return value.Arr(elems), nil
}

// evalIdentPrimary implements spec.md §4.5's identifier-primary priority:
// struct literal, then known-function callable, then plain variable
// lookup.
func (in *Interpreter) evalIdentPrimary() (value.Value, error) {
	tok := in.cur()
	name := tok.Lexeme

	if fields, ok := in.structs[name]; ok && in.peek(1).Kind == token.LBRACE {
		in.advance()
		return in.evalStructLiteral(name, fields)
	}
	if _, ok := in.functions[name]; ok {
		in.advance()
		return value.Str(name), nil
	}
	if _, ok := in.builtins.Lookup(name); ok {
		in.advance()
		return value.Str(name), nil
	}
	v, ok := in.env.Lookup(name)
	if !ok {
		return value.Value{}, chocoerr.NewRuntime(tok.Line, "unknown variable %q", name)
	}
	in.advance()
	return v, nil
}

// evalStructLiteral parses `TypeName { f1: e1, f2: e2, … }`; unlisted
// declared fields default to nil (spec.md §4.5).
func (in *Interpreter) evalStructLiteral(name string, declared []string) (value.Value, error) {
	if err := in.expect(token.LBRACE); err != nil {
		return value.Value{}, err
	}
	in.advance()
	lit := make(map[string]value.Value)
	var litOrder []string
	for in.cur().Kind != token.RBRACE {
		if err := in.expect(token.IDENT); err != nil {
			return value.Value{}, err
		}
		field := in.advance().Lexeme
		if err := in.expect(token.COLON); err != nil {
			return value.Value{}, err
		}
		in.advance()
		v, err := in.evalExpression()
		if err != nil {
			return value.Value{}, err
		}
		lit[field] = v
		litOrder = append(litOrder, field)
		if in.cur().Kind == token.COMMA {
			in.advance()
			continue
		}
		break
	}
	if err := in.expect(token.RBRACE); err != nil {
		return value.Value{}, err
	}
	in.advance()
	return value.StructVal(value.NewStruct(name, declared, lit, litOrder)), nil
}

// interpolate replaces every #{NAME} in s with the current string form of
// NAME, looked up via the environment (spec.md §4.5). Only a bare
// identifier may appear between the braces.
func (in *Interpreter) interpolate(s string, line int) (string, error) {
	if !strings.Contains(s, "#{") {
		return s, nil
	}
	var b strings.Builder
	i := 0
	for i < len(s) {
		if s[i] == '#' && i+1 < len(s) && s[i+1] == '{' {
			end := strings.IndexByte(s[i+2:], '}')
			if end < 0 {
				return "", chocoerr.NewRuntime(line, "unterminated string interpolation")
			}
			name := s[i+2 : i+2+end]
			v, ok := in.env.Lookup(name)
			if !ok {
				return "", chocoerr.NewRuntime(line, "unknown variable %q in string interpolation", name)
			}
			b.WriteString(v.String())
			i += 2 + end + 1
			continue
		}
		b.WriteByte(s[i])
		i++
	}
	return b.String(), nil
}
