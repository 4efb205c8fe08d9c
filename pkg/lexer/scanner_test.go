package lexer_test

import (
	"testing"

	"choco.dev/choco/pkg/lexer"
	"choco.dev/choco/pkg/token"
)

func kinds(t *testing.T, src string) []token.Kind {
	t.Helper()
	toks, err := lexer.Tokenize([]byte(src))
	if err != nil {
		t.Fatalf("Tokenize(%q): %v", src, err)
	}
	var ks []token.Kind
	for _, tok := range toks {
		ks = append(ks, tok.Kind)
	}
	return ks
}

func TestScannerKeywordsAndPunctuation(t *testing.T) {
	got := kinds(t, `let x = 5 + 3;`)
	want := []token.Kind{token.LET, token.IDENT, token.ASSIGN, token.NUMBER, token.PLUS, token.NUMBER, token.SEMICOLON, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScannerTwoCharOperators(t *testing.T) {
	got := kinds(t, `== != <= >= && || -> =>`)
	want := []token.Kind{token.EQ, token.NEQ, token.LE, token.GE, token.AND, token.OR, token.ARROW, token.FATARROW, token.EOF}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestScannerRangeDotsStopNumber(t *testing.T) {
	toks, err := lexer.Tokenize([]byte(`0..10`))
	if err != nil {
		t.Fatal(err)
	}
	if toks[0].Kind != token.NUMBER || toks[0].Lexeme != "0" {
		t.Errorf("first token: %+v", toks[0])
	}
	if toks[1].Kind != token.DOTDOT {
		t.Errorf("second token: %+v", toks[1])
	}
	if toks[2].Kind != token.NUMBER || toks[2].Lexeme != "10" {
		t.Errorf("third token: %+v", toks[2])
	}
}

func TestScannerNumberRoundTrip(t *testing.T) {
	for _, src := range []string{"0", "1", "42", "3.14", "1000000"} {
		toks, err := lexer.Tokenize([]byte(src))
		if err != nil {
			t.Fatal(err)
		}
		if len(toks) != 2 || toks[0].Kind != token.NUMBER || toks[0].Lexeme != src {
			t.Errorf("Tokenize(%q) = %+v", src, toks)
		}
	}
}

func TestScannerStringEscapes(t *testing.T) {
	toks, err := lexer.Tokenize([]byte(`"a\nb\tc\\d\"e #{name}"`))
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nb\tc\\d\"e #{name}"
	if toks[0].Lexeme != want {
		t.Errorf("got %q, want %q", toks[0].Lexeme, want)
	}
}

func TestScannerUnterminatedString(t *testing.T) {
	if _, err := lexer.Tokenize([]byte(`"abc`)); err == nil {
		t.Fatal("expected error for unterminated string")
	}
	if _, err := lexer.Tokenize([]byte("\"ab\nc\"")); err == nil {
		t.Fatal("expected error for literal newline inside string")
	}
}

func TestScannerLineComment(t *testing.T) {
	toks, err := lexer.Tokenize([]byte("let x = 1; // comment\nlet y = 2;"))
	if err != nil {
		t.Fatal(err)
	}
	if toks[len(toks)-2].Line != 2 {
		t.Errorf("expected last real token on line 2, got line %d", toks[len(toks)-2].Line)
	}
}

func TestScannerLoneAmpersandIsError(t *testing.T) {
	if _, err := lexer.Tokenize([]byte(`&`)); err == nil {
		t.Fatal("expected error for lone '&'")
	}
}

func TestScannerLonePipeIsLambdaToken(t *testing.T) {
	got := kinds(t, `|`)
	if got[0] != token.PIPE {
		t.Errorf("expected PIPE, got %v", got[0])
	}
}
