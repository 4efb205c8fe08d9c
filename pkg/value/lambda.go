package value

import "choco.dev/choco/pkg/token"

// Span is a half-open [Start,End) range of indices into a token vector,
// covering the body of a control construct or callable. End points at the
// matching closing brace (spec.md GLOSSARY: "token span").
type Span struct {
	Start, End int
}

// LambdaValue is a first-class lambda: its parameter names, the span of
// its body, the token stream that span indexes into, and a capture
// snapshot taken at creation time.
//
// Stream is shared (not copied), so a lambda created while the
// interpreter had swapped in a different stream (during `import`) keeps
// working after the importer's original stream is restored — DESIGN.md
// Open Question 4.
type LambdaValue struct {
	Params   []string
	Body     Span
	Stream   *token.Stream
	Captures map[string]Value
}
