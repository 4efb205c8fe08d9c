// Package repl implements ChocoLang's interactive read-eval-print loop
// (spec.md §6): one persistent Interpreter, one accepted source line at a
// time, with a handful of REPL-only commands layered on top of the
// language itself.
package repl

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strings"

	"choco.dev/choco/pkg/interp"
)

const banner = `======================================
  ChocoLang 0.5.0 - Nutty Nougat
  REPL
  Type 'exit' or 'quit' to leave
======================================
`

const helpText = `ChocoLang REPL Commands:
  exit, quit     - Exit the REPL
  help           - Show this help message
  clear          - Clear all variables and functions
  vars           - Show all defined variables
  funcs          - Show all defined functions

Examples:
  let x = 10;
  puts x + 5;
  fn greet(name) { return "Hello, " + name; }
  puts greet("World");
`

// REPL reads lines from in, echoing prompts and results to out, against a
// single long-lived Interpreter.
type REPL struct {
	interp *interp.Interpreter
	in     *bufio.Scanner
	out    io.Writer
	line   int
}

// New wires a REPL around an already-configured Interpreter (so the
// caller can bind FS/GUI/Loader collaborators the same way it would for a
// file run).
func New(in *interp.Interpreter, stdin io.Reader, stdout io.Writer) *REPL {
	return &REPL{
		interp: in,
		in:     bufio.NewScanner(stdin),
		out:    stdout,
		line:   1,
	}
}

// Run drives the loop until the user exits or stdin is exhausted.
func (r *REPL) Run() {
	fmt.Fprint(r.out, banner)
	fmt.Fprintln(r.out)
	for {
		fmt.Fprintf(r.out, "choco:%d> ", r.line)
		if !r.in.Scan() {
			fmt.Fprintln(r.out)
			return
		}
		line := strings.TrimSpace(r.in.Text())

		switch line {
		case "":
			continue
		case "exit", "quit":
			fmt.Fprintln(r.out, "Goodbye!")
			return
		case "help":
			fmt.Fprint(r.out, helpText)
			r.line++
			continue
		case "clear":
			r.interp.Reset()
			fmt.Fprintln(r.out, "Environment cleared.")
			r.line = 1
			continue
		case "vars":
			r.printVars()
			r.line++
			continue
		case "funcs":
			r.printFuncs()
			r.line++
			continue
		}

		if !strings.HasSuffix(line, ";") && !strings.HasSuffix(line, "}") {
			line += ";"
		}
		if err := r.interp.RunSource([]byte(line)); err != nil {
			fmt.Fprintln(r.out, err.Error())
		}
		r.line++
	}
}

func (r *REPL) printVars() {
	fmt.Fprintln(r.out, "Defined variables:")
	globals := r.interp.Env().Globals()
	if len(globals) == 0 {
		fmt.Fprintln(r.out, "  (none)")
		return
	}
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s = %s\n", name, globals[name].String())
	}
}

func (r *REPL) printFuncs() {
	fmt.Fprintln(r.out, "Defined functions:")
	funcs := r.interp.Functions()
	if len(funcs) == 0 {
		fmt.Fprintln(r.out, "  (none)")
		return
	}
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(r.out, "  %s(%s)\n", name, strings.Join(funcs[name], ", "))
	}
}
