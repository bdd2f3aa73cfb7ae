package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ry-lang/ry/compiler"
	"github.com/ry-lang/ry/pkg/buildcache"
)

func TestUniquePathFreshName(t *testing.T) {
	dir := t.TempDir()
	got := uniquePath(dir, "main-ast", ".txt")
	if got != filepath.Join(dir, "main-ast.txt") {
		t.Errorf("uniquePath = %q", got)
	}
}

func TestUniquePathNumbersTakenNames(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"main-ast.txt", "main-ast (2).txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
	got := uniquePath(dir, "main-ast", ".txt")
	if got != filepath.Join(dir, "main-ast (3).txt") {
		t.Errorf("uniquePath = %q, want main-ast (3).txt", got)
	}
}

func TestCollectSourceFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	nested := filepath.Join(src, "util")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{
		filepath.Join(src, "main.ry"),
		filepath.Join(nested, "strings.ry"),
		filepath.Join(src, "notes.txt"),
	} {
		if err := os.WriteFile(f, []byte("fun main() { }"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	// Missing directories are skipped, not an error.
	files, err := collectSourceFiles([]string{src, filepath.Join(dir, "gone")})
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 2 {
		t.Errorf("file count = %d, want 2: %v", len(files), files)
	}
}

func TestCompileFileUsesCache(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "main.ry")
	if err := os.WriteFile(path, []byte("fun main() { let = 1; }"), 0644); err != nil {
		t.Fatal(err)
	}

	cache, err := buildcache.Open(filepath.Join(dir, "cache"))
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	first, err := compileFile(cache, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(first) == 0 {
		t.Fatal("expected diagnostics from a broken file")
	}

	// Second compile must hit the cache and report the same diagnostics.
	second, err := compileFile(cache, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(second) != len(first) {
		t.Fatalf("cached diagnostic count = %d, want %d", len(second), len(first))
	}
	if second[0].Message != first[0].Message || second[0].Span != first[0].Span {
		t.Errorf("cached diagnostic = %+v, want %+v", second[0], first[0])
	}

	// Editing the file invalidates the entry.
	if err := os.WriteFile(path, []byte("fun main() { }"), 0644); err != nil {
		t.Fatal(err)
	}
	third, err := compileFile(cache, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(third) != 0 {
		t.Errorf("diagnostics after fix = %d, want 0", len(third))
	}
}

func TestFormatToken(t *testing.T) {
	interner := compiler.NewInterner()
	lexer := compiler.NewLexer("let counter", 0, interner)

	tok := lexer.NextToken()
	if got := formatToken(tok, interner, false); got != "let" {
		t.Errorf("formatToken = %q, want let", got)
	}

	tok = lexer.NextToken()
	if got := formatToken(tok, interner, false); got != "IDENTIFIER(`counter`)" {
		t.Errorf("formatToken = %q", got)
	}
	if got := formatToken(tok, interner, true); got != "IDENTIFIER(`counter`)@4..11" {
		t.Errorf("formatToken with span = %q", got)
	}
}
