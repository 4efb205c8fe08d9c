package main

import (
	"flag"
	"fmt"
	"os"

	"choco.dev/choco/pkg/fsys"
	"choco.dev/choco/pkg/gui"
	"choco.dev/choco/pkg/interp"
	"choco.dev/choco/pkg/module"
	"choco.dev/choco/pkg/repl"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: choco [script.choco]")
	}
	flag.Parse()

	switch flag.NArg() {
	case 0:
		runREPL()
	case 1:
		runFile(flag.Arg(0))
	default:
		flag.Usage()
		os.Exit(1)
	}
}

func newInterpreter() *interp.Interpreter {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}
	return interp.New(interp.Options{
		Stdout: os.Stdout,
		Stdin:  os.Stdin,
		FS:     fsys.New(wd),
		GUI:    gui.NewNullHost(),
		Loader: module.NewFSLoader(wd),
	})
}

func runREPL() {
	repl.New(newInterpreter(), os.Stdin, os.Stdout).Run()
}

func runFile(path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "choco: %v\n", err)
		os.Exit(1)
	}
	if err := newInterpreter().RunSource(src); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
