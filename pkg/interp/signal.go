package interp

import "choco.dev/choco/pkg/value"

// SignalKind is the out-of-band status a statement execution reports,
// observed by its caller instead of the baseline flags model's
// has_returned/should_break/should_continue mutable fields (spec.md §9's
// own suggested redesign, DESIGN.md Open Question 1).
//
// A thrown exception is deliberately not a SignalKind: it needs to cross
// function-call boundaries to reach an enclosing try anywhere up the Go
// call stack, so it travels as an ordinary error (*chocoerr.Thrown)
// instead — see execTry in statement.go.
type SignalKind uint8

const (
	SigNormal SignalKind = iota
	SigReturning
	SigBreaking
	SigContinuing
)

// Signal is the result of executing one statement or statement span.
type Signal struct {
	Kind  SignalKind
	Value value.Value // meaningful only when Kind == SigReturning
}
