package interp

import (
	"errors"
	"math"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/lexer"
	"choco.dev/choco/pkg/token"
	"choco.dev/choco/pkg/value"
)

// execStatement dispatches on the token at the cursor and consumes
// exactly one statement's tokens, including any nested compound
// statement's full span (spec.md §4.4).
func (in *Interpreter) execStatement() (Signal, error) {
	switch in.cur().Kind {
	case token.LET:
		return in.execLet()
	case token.FN:
		return in.execFn()
	case token.STRUCT:
		return in.execStructDecl()
	case token.IMPORT:
		return in.execImport()
	case token.TRY:
		return in.execTry()
	case token.THROW:
		return in.execThrow()
	case token.BREAK:
		return in.execBreak()
	case token.CONTINUE:
		return in.execContinue()
	case token.RETURN:
		return in.execReturn()
	case token.PUTS:
		return in.execPuts()
	case token.IF:
		return in.execIf()
	case token.WHILE:
		return in.execWhile()
	case token.FOR:
		return in.execFor()
	case token.MATCH:
		return in.execMatch()
	default:
		return in.execAssignOrExpr()
	}
}

func (in *Interpreter) execLet() (Signal, error) {
	in.advance() // 'let'
	if err := in.expect(token.IDENT); err != nil {
		return Signal{}, err
	}
	name := in.advance().Lexeme
	if err := in.expect(token.ASSIGN); err != nil {
		return Signal{}, err
	}
	in.advance()
	val, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()
	in.env.Assign(name, val)
	return Signal{Kind: SigNormal}, nil
}

// execFn records (params, body span) into the function table and binds
// NAME to a callable string value in the current scope (spec.md §4.4) so
// it can be passed around like any other first-class callable.
func (in *Interpreter) execFn() (Signal, error) {
	in.advance() // 'fn'
	if err := in.expect(token.IDENT); err != nil {
		return Signal{}, err
	}
	name := in.advance().Lexeme
	if err := in.expect(token.LPAREN); err != nil {
		return Signal{}, err
	}
	in.advance()
	params, err := in.parseParamList()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.RPAREN); err != nil {
		return Signal{}, err
	}
	in.advance()
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	openIdx := in.pos
	span, closeIdx, err := in.braceSpanAt(openIdx)
	if err != nil {
		return Signal{}, err
	}
	in.functions[name] = &funcDef{Params: params, Body: span, Stream: in.stream}
	in.env.Assign(name, value.Str(name))
	in.pos = closeIdx + 1
	return Signal{Kind: SigNormal}, nil
}

// parseParamList consumes a comma-separated identifier list up to (but
// not consuming) the closing token, used for both fn params and lambda
// params.
func (in *Interpreter) parseParamList() ([]string, error) {
	var params []string
	for in.cur().Kind == token.IDENT {
		params = append(params, in.advance().Lexeme)
		if in.cur().Kind == token.COMMA {
			in.advance()
			continue
		}
		break
	}
	return params, nil
}

func (in *Interpreter) execStructDecl() (Signal, error) {
	in.advance() // 'struct'
	if err := in.expect(token.IDENT); err != nil {
		return Signal{}, err
	}
	name := in.advance().Lexeme
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	in.advance()
	var fields []string
	for in.cur().Kind == token.IDENT {
		fields = append(fields, in.advance().Lexeme)
		if in.cur().Kind == token.COMMA {
			in.advance()
			continue
		}
		break
	}
	if err := in.expect(token.RBRACE); err != nil {
		return Signal{}, err
	}
	in.advance()
	in.structs[name] = fields
	return Signal{Kind: SigNormal}, nil
}

// execImport delegates source-text lookup to the injected Loader, lexes
// it into a *separate* stream, swaps it in, runs to EOF, then restores
// the importer's stream and cursor (spec.md §4.4). Lambdas and functions
// defined during the import keep their own Stream pointer, so they stay
// callable after the restore.
func (in *Interpreter) execImport() (Signal, error) {
	line := in.cur().Line
	in.advance() // 'import'
	if err := in.expect(token.IDENT); err != nil {
		return Signal{}, err
	}
	name := in.advance().Lexeme
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()

	if in.loader == nil {
		return Signal{}, chocoerr.NewRuntime(line, "import: no module loader bound")
	}
	src, err := in.loader.Load(name)
	if err != nil {
		return Signal{}, chocoerr.NewRuntime(line, "import %q: %s", name, err.Error())
	}
	toks, err := lexer.Tokenize([]byte(src))
	if err != nil {
		return Signal{}, err
	}
	newStream, err := token.NewStream(toks)
	if err != nil {
		return Signal{}, chocoerr.NewParse(line, "import %q: %s", name, err.Error())
	}

	savedStream, savedPos := in.stream, in.pos
	in.stream, in.pos = newStream, 0
	for in.pos < in.stream.Len() && in.cur().Kind != token.EOF {
		if _, err := in.execStatement(); err != nil {
			in.stream, in.pos = savedStream, savedPos
			return Signal{}, err
		}
	}
	in.stream, in.pos = savedStream, savedPos
	return Signal{Kind: SigNormal}, nil
}

func (in *Interpreter) execTry() (Signal, error) {
	in.advance() // 'try'
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	openA := in.pos
	spanA, closeA, err := in.braceSpanAt(openA)
	if err != nil {
		return Signal{}, err
	}
	in.pos = closeA + 1

	if err := in.expect(token.CATCH); err != nil {
		return Signal{}, err
	}
	in.advance()
	if err := in.expect(token.IDENT); err != nil {
		return Signal{}, err
	}
	excName := in.advance().Lexeme
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	openB := in.pos
	spanB, closeB, err := in.braceSpanAt(openB)
	if err != nil {
		return Signal{}, err
	}
	afterPos := closeB + 1

	sig, err := in.execSpan(spanA)
	var thrown *chocoerr.Thrown
	if err != nil && errors.As(err, &thrown) {
		in.env.PushScope()
		sig2, err2 := in.execCatchBody(excName, thrown.Value, spanB)
		in.env.PopScope()
		in.pos = afterPos
		return sig2, err2
	}
	in.pos = afterPos
	return sig, err
}

func (in *Interpreter) execCatchBody(excName, excValue string, spanB value.Span) (Signal, error) {
	in.env.Assign(excName, value.Str(excValue))
	return in.execSpan(spanB)
}

func (in *Interpreter) execThrow() (Signal, error) {
	line := in.cur().Line
	in.advance() // 'throw'
	val, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()
	return Signal{}, chocoerr.NewThrown(line, val.String())
}

func (in *Interpreter) execBreak() (Signal, error) {
	line := in.cur().Line
	in.advance()
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()
	if in.loopDepth == 0 {
		return Signal{}, chocoerr.NewRuntime(line, "break used outside a loop")
	}
	return Signal{Kind: SigBreaking}, nil
}

func (in *Interpreter) execContinue() (Signal, error) {
	line := in.cur().Line
	in.advance()
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()
	if in.loopDepth == 0 {
		return Signal{}, chocoerr.NewRuntime(line, "continue used outside a loop")
	}
	return Signal{Kind: SigContinuing}, nil
}

func (in *Interpreter) execReturn() (Signal, error) {
	line := in.cur().Line
	in.advance()
	val, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()
	if in.funcDepth == 0 {
		return Signal{}, chocoerr.NewRuntime(line, "return used outside a function")
	}
	return Signal{Kind: SigReturning, Value: val}, nil
}

func (in *Interpreter) execPuts() (Signal, error) {
	in.advance() // 'puts'
	val, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()
	in.puts(val.String())
	return Signal{Kind: SigNormal}, nil
}

func (in *Interpreter) execIf() (Signal, error) {
	in.advance() // 'if'
	cond, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	openA := in.pos
	spanA, closeA, err := in.braceSpanAt(openA)
	if err != nil {
		return Signal{}, err
	}
	after := closeA + 1

	var spanB value.Span
	hasElse := false
	if in.stream.At(after).Kind == token.ELSE {
		elseOpen := after + 1
		if in.stream.At(elseOpen).Kind != token.LBRACE {
			return Signal{}, chocoerr.NewParse(in.stream.At(elseOpen).Line, "expected '{' after else")
		}
		sB, closeB, err := in.braceSpanAt(elseOpen)
		if err != nil {
			return Signal{}, err
		}
		spanB, hasElse, after = sB, true, closeB+1
	}

	var sig Signal
	if cond.Truthy() {
		sig, err = in.execSpan(spanA)
	} else if hasElse {
		sig, err = in.execSpan(spanB)
	} else {
		sig = Signal{Kind: SigNormal}
	}
	in.pos = after
	return sig, err
}

func (in *Interpreter) execWhile() (Signal, error) {
	in.advance() // 'while'
	condStart := in.pos
	cond, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	openB := in.pos
	spanB, closeB, err := in.braceSpanAt(openB)
	if err != nil {
		return Signal{}, err
	}
	after := closeB + 1

	in.loopDepth++
	defer func() { in.loopDepth-- }()

	for cond.Truthy() {
		sig, err := in.execSpan(spanB)
		if err != nil {
			return Signal{}, err
		}
		switch sig.Kind {
		case SigBreaking:
			in.pos = after
			return Signal{Kind: SigNormal}, nil
		case SigReturning:
			in.pos = after
			return sig, nil
		}
		in.pos = condStart
		cond, err = in.evalExpression()
		if err != nil {
			return Signal{}, err
		}
	}
	in.pos = after
	return Signal{Kind: SigNormal}, nil
}

// execFor implements `for I in START..END { B }`: a half-open integer
// range, I bound via assign (not a pushed scope) each iteration
// (spec.md §4.4).
func (in *Interpreter) execFor() (Signal, error) {
	in.advance() // 'for'
	if err := in.expect(token.IDENT); err != nil {
		return Signal{}, err
	}
	varName := in.advance().Lexeme
	if err := in.expect(token.IN); err != nil {
		return Signal{}, err
	}
	in.advance()
	startVal, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.DOTDOT); err != nil {
		return Signal{}, err
	}
	line := in.cur().Line
	in.advance()
	endVal, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if startVal.Kind != value.Number || endVal.Kind != value.Number {
		return Signal{}, chocoerr.NewRuntime(line, "for range bounds must be numbers")
	}
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	openB := in.pos
	spanB, closeB, err := in.braceSpanAt(openB)
	if err != nil {
		return Signal{}, err
	}
	after := closeB + 1

	start := int(math.Trunc(startVal.Num))
	end := int(math.Trunc(endVal.Num))

	in.loopDepth++
	defer func() { in.loopDepth-- }()

	for i := start; i < end; i++ {
		in.env.Assign(varName, value.Num(float64(i)))
		sig, err := in.execSpan(spanB)
		if err != nil {
			return Signal{}, err
		}
		switch sig.Kind {
		case SigBreaking:
			in.pos = after
			return Signal{Kind: SigNormal}, nil
		case SigReturning:
			in.pos = after
			return sig, nil
		}
	}
	in.pos = after
	return Signal{Kind: SigNormal}, nil
}

// execMatch evaluates V once, then evaluates every case's expression in
// source order while scanning the arms, including the arms after the one
// that matches; the first case that is kind-and-value equal to V runs
// (spec.md §4.4). At most one default is allowed.
func (in *Interpreter) execMatch() (Signal, error) {
	in.advance() // 'match'
	subject, err := in.evalExpression()
	if err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.LBRACE); err != nil {
		return Signal{}, err
	}
	in.advance()

	type caseArm struct {
		cond value.Value
		body value.Span
	}
	var cases []caseArm
	var defaultBody *value.Span

	for in.cur().Kind != token.RBRACE {
		switch in.cur().Kind {
		case token.CASE:
			in.advance()
			caseVal, err := in.evalExpression()
			if err != nil {
				return Signal{}, err
			}
			if err := in.expect(token.FATARROW); err != nil {
				return Signal{}, err
			}
			in.advance()
			if err := in.expect(token.LBRACE); err != nil {
				return Signal{}, err
			}
			open := in.pos
			span, closeIdx, err := in.braceSpanAt(open)
			if err != nil {
				return Signal{}, err
			}
			in.pos = closeIdx + 1
			cases = append(cases, caseArm{cond: caseVal, body: span})
		case token.DEFAULT:
			if defaultBody != nil {
				return Signal{}, chocoerr.NewParse(in.cur().Line, "match: at most one default arm is allowed")
			}
			in.advance()
			if err := in.expect(token.FATARROW); err != nil {
				return Signal{}, err
			}
			in.advance()
			if err := in.expect(token.LBRACE); err != nil {
				return Signal{}, err
			}
			open := in.pos
			span, closeIdx, err := in.braceSpanAt(open)
			if err != nil {
				return Signal{}, err
			}
			in.pos = closeIdx + 1
			defaultBody = &span
		default:
			return Signal{}, chocoerr.NewParse(in.cur().Line, "match: expected 'case' or 'default'")
		}
	}
	if err := in.expect(token.RBRACE); err != nil {
		return Signal{}, err
	}
	in.advance()
	after := in.pos

	var chosen *value.Span
	for _, c := range cases {
		if value.Equal(subject, c.cond) {
			chosen = &c.body
			break
		}
	}
	if chosen == nil {
		chosen = defaultBody
	}

	var sig Signal
	if chosen != nil {
		sig, err = in.execSpan(*chosen)
		if err != nil {
			return Signal{}, err
		}
	} else {
		sig = Signal{Kind: SigNormal}
	}
	in.pos = after
	return sig, nil
}

// execAssignOrExpr handles both `IDENT = EXPR;` and a bare expression
// statement (spec.md §4.4): the dispatcher only recognizes the assignment
// shape when the very next two tokens are IDENT ASSIGN.
func (in *Interpreter) execAssignOrExpr() (Signal, error) {
	if in.cur().Kind == token.IDENT && in.peek(1).Kind == token.ASSIGN {
		name := in.advance().Lexeme
		in.advance() // '='
		val, err := in.evalExpression()
		if err != nil {
			return Signal{}, err
		}
		if err := in.expect(token.SEMICOLON); err != nil {
			return Signal{}, err
		}
		in.advance()
		in.env.Assign(name, val)
		return Signal{Kind: SigNormal}, nil
	}

	if _, err := in.evalExpression(); err != nil {
		return Signal{}, err
	}
	if err := in.expect(token.SEMICOLON); err != nil {
		return Signal{}, err
	}
	in.advance()
	return Signal{Kind: SigNormal}, nil
}
