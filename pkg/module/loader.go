// Package module implements the out-of-scope collaborator behind
// `import NAME;`: resolving a module name to source text. The core
// interpreter only specifies the splice contract (spec.md §1, §4.4); this
// package owns the filesystem lookup.
package module

import (
	"fmt"
	"os"
	"path/filepath"
)

// Loader resolves a module name to its source text.
type Loader interface {
	Load(name string) (string, error)
}

// FSLoader resolves `import NAME;` to a sibling file NAME.choco inside Dir
// (spec.md §6). A missing file is reported as an error; the interpreter
// turns it into a runtime error tagged with the import statement's line.
type FSLoader struct {
	Dir string
}

// NewFSLoader builds a loader rooted at dir (the CLI passes the current
// working directory, for both file runs and the REPL).
func NewFSLoader(dir string) *FSLoader {
	return &FSLoader{Dir: dir}
}

func (l *FSLoader) Load(name string) (string, error) {
	path := filepath.Join(l.Dir, name+".choco")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("module %q not found at %s: %w", name, path, err)
	}
	return string(data), nil
}
