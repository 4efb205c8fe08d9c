package module

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFSLoaderReadsSiblingFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "greet.choco"), []byte(`fn hi(){ puts "hi"; }`), 0o644); err != nil {
		t.Fatalf("seed file: %v", err)
	}
	l := NewFSLoader(dir)
	src, err := l.Load("greet")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if src != `fn hi(){ puts "hi"; }` {
		t.Fatalf("unexpected source: %q", src)
	}
}

func TestFSLoaderMissingFileErrors(t *testing.T) {
	l := NewFSLoader(t.TempDir())
	if _, err := l.Load("nope"); err == nil {
		t.Fatal("expected an error for a missing module file")
	}
}
