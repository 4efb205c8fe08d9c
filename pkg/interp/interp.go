// Package interp is ChocoLang's token-stream-walking interpreter
// (spec.md §1, §4): it owns the token vector, a single cursor, the
// environment, and the function/struct tables. There is no AST —
// every control construct is executed by scanning to a brace-balanced
// body span (via the token stream's precomputed match table, see
// pkg/token.Stream) and repositioning the cursor into that span.
package interp

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"choco.dev/choco/internal/chocoerr"
	"choco.dev/choco/pkg/builtin"
	"choco.dev/choco/pkg/env"
	"choco.dev/choco/pkg/gui"
	"choco.dev/choco/pkg/lexer"
	"choco.dev/choco/pkg/token"
	"choco.dev/choco/pkg/value"
)

// Loader resolves an `import NAME;` module name to source text
// (pkg/module.Loader satisfies this structurally; the interpreter only
// needs the splice contract, spec.md §1).
type Loader interface {
	Load(name string) (string, error)
}

// funcDef is a named function's entry in the per-interpreter function
// table (spec.md §3): parameter names, body span, and the stream that
// span indexes into — mirroring value.LambdaValue so a function whose
// definition runs during `import` stays callable after the importer's
// stream is restored.
type funcDef struct {
	Params []string
	Body   value.Span
	Stream *token.Stream
}

// Options configures a new Interpreter. Stdout/Stdin/FS/GUI/Loader/Rng are
// all injected collaborators (spec.md §1's out-of-scope seams); nil means
// "that surface is unavailable" rather than a crash — e.g. a GUI built-in
// used without GUI bound reports a runtime error instead of panicking.
type Options struct {
	Stdout io.Writer
	Stdin  io.Reader
	FS     builtin.FileSystem
	GUI    gui.Host
	Loader Loader
	Rng    *rand.Rand
}

// Interpreter is one ChocoLang execution context: persistent across REPL
// lines (spec.md §6 — only the `clear` command replaces it wholesale).
type Interpreter struct {
	stream *token.Stream
	pos    int

	env       *env.Environment
	functions map[string]*funcDef
	structs   map[string][]string

	builtins builtin.Registry
	bctx     *builtin.Context

	loader Loader

	loopDepth int
	funcDepth int
}

// New creates an Interpreter with empty global state, ready to Load and
// Run source.
func New(opts Options) *Interpreter {
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	var stdin io.Reader = opts.Stdin
	if stdin == nil {
		stdin = strings.NewReader("")
	}
	rng := opts.Rng
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}

	in := &Interpreter{
		env:       env.New(),
		functions: make(map[string]*funcDef),
		structs:   make(map[string][]string),
		builtins:  builtin.NewRegistry(),
		loader:    opts.Loader,
	}
	in.bctx = &builtin.Context{
		Caller: in,
		FS:     opts.FS,
		GUI:    opts.GUI,
		Stdout: stdout,
		Stdin:  bufio.NewReader(stdin),
		Rng:    rng,
	}
	in.stream, _ = token.NewStream([]token.Token{{Kind: token.EOF, Line: 1}})
	return in
}

// Reset drops every global binding, function, and struct definition,
// producing a fresh interpreter state in place — the REPL's `clear`
// command (spec.md §6) uses this instead of allocating a new Interpreter
// so the injected collaborators (FS, GUI, loader, stdout) are kept.
func (in *Interpreter) Reset() {
	in.env = env.New()
	in.functions = make(map[string]*funcDef)
	in.structs = make(map[string][]string)
	in.bctx.Caller = in
	in.loopDepth = 0
	in.funcDepth = 0
}

// Load lexes src into a fresh token stream and points the cursor at its
// start, without touching environment/function/struct state — so the REPL
// can feed it one accepted line at a time while keeping prior bindings.
func (in *Interpreter) Load(src []byte) error {
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return err
	}
	stream, err := token.NewStream(toks)
	if err != nil {
		return chocoerr.NewParse(0, "%s", err.Error())
	}
	in.stream = stream
	in.pos = 0
	return nil
}

// Run executes the currently loaded stream from its start to EOF.
func (in *Interpreter) Run() error {
	for in.pos < in.stream.Len() && in.cur().Kind != token.EOF {
		_, err := in.execStatement()
		if err != nil {
			return err
		}
	}
	return nil
}

// RunSource is the Load+Run convenience used by the CLI's file-run mode
// and by tests.
func (in *Interpreter) RunSource(src []byte) error {
	if err := in.Load(src); err != nil {
		return err
	}
	return in.Run()
}

// Env exposes the global environment for REPL `vars` introspection.
func (in *Interpreter) Env() *env.Environment { return in.env }

// Functions exposes the function table for REPL `funcs` introspection.
func (in *Interpreter) Functions() map[string][]string {
	out := make(map[string][]string, len(in.functions))
	for name, fn := range in.functions {
		out[name] = fn.Params
	}
	return out
}

// puts writes s followed by a newline to the bound Stdout collaborator.
func (in *Interpreter) puts(s string) {
	fmt.Fprintln(in.bctx.Stdout, s)
}

func (in *Interpreter) cur() token.Token { return in.stream.At(in.pos) }

func (in *Interpreter) peek(offset int) token.Token {
	i := in.pos + offset
	if i >= in.stream.Len() {
		return in.stream.At(in.stream.Len() - 1) // EOF
	}
	return in.stream.At(i)
}

func (in *Interpreter) advance() token.Token {
	t := in.cur()
	if in.pos < in.stream.Len()-1 {
		in.pos++
	}
	return t
}

func (in *Interpreter) expect(k token.Kind) error {
	if in.cur().Kind != k {
		return chocoerr.NewParse(in.cur().Line, "expected %s, got %s", k, in.cur().Kind)
	}
	return nil
}

// braceSpanAt requires the cursor to sit on an openIdx's '{' token and
// returns the body span [openIdx+1, closeIdx) plus closeIdx itself so the
// caller can reposition the cursor past the whole construct.
func (in *Interpreter) braceSpanAt(openIdx int) (value.Span, int, error) {
	closeIdx, ok := in.stream.MatchingBrace(openIdx)
	if !ok {
		return value.Span{}, 0, chocoerr.NewParse(in.stream.At(openIdx).Line, "unmatched '{'")
	}
	return value.Span{Start: openIdx + 1, End: closeIdx}, closeIdx, nil
}

// execSpan runs statements in [span.Start, span.End), stopping early on
// any non-Normal signal or error (spec.md §9's signal-propagation model —
// this replaces the baseline flags model's per-statement flag checks).
func (in *Interpreter) execSpan(span value.Span) (Signal, error) {
	in.pos = span.Start
	for in.pos < span.End {
		sig, err := in.execStatement()
		if err != nil {
			return Signal{}, err
		}
		if sig.Kind != SigNormal {
			return sig, nil
		}
	}
	return Signal{Kind: SigNormal}, nil
}
