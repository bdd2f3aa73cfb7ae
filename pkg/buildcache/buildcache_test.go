package buildcache

import (
	"path/filepath"
	"testing"

	"github.com/ry-lang/ry/compiler"
)

func TestCacheMissOnUnknownPath(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	_, ok, err := c.Get("src/main.ry", HashSource([]byte("fun main() { }")))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected a miss for a path never stored")
	}
}

func TestCachePutGetRoundTrip(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	src := []byte("fun main() { let x = ; }")
	hash := HashSource(src)

	stored := &Entry{
		Path: "src/main.ry",
		Hash: hash,
		Diagnostics: []compiler.Diagnostic{
			{
				Severity: compiler.SeverityError,
				Span:     compiler.MakeSpan(21, 22, 0),
				Code:     compiler.CodeParseError,
				Message:  "expected expression",
			},
		},
		Tree: "MODULE\n\tFILEPATH: src/main.ry\n\tITEMS: EMPTY",
	}
	if err := c.Put(stored); err != nil {
		t.Fatal(err)
	}

	got, ok, err := c.Get("src/main.ry", hash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a hit for an unchanged file")
	}
	if got.Tree != stored.Tree {
		t.Errorf("tree = %q, want %q", got.Tree, stored.Tree)
	}
	if len(got.Diagnostics) != 1 {
		t.Fatalf("diagnostic count = %d, want 1", len(got.Diagnostics))
	}
	d := got.Diagnostics[0]
	if d.Code != compiler.CodeParseError || d.Message != "expected expression" {
		t.Errorf("diagnostic = %+v", d)
	}
	if d.Span != compiler.MakeSpan(21, 22, 0) {
		t.Errorf("diagnostic span = %v", d.Span)
	}
}

func TestCacheMissOnChangedContent(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	oldSrc := []byte("fun main() { }")
	if err := c.Put(&Entry{Path: "src/main.ry", Hash: HashSource(oldSrc), Tree: "old"}); err != nil {
		t.Fatal(err)
	}

	newSrc := []byte("fun main() { run(); }")
	_, ok, err := c.Get("src/main.ry", HashSource(newSrc))
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Error("expected a miss after the file content changed")
	}
}

func TestCachePutReplacesExisting(t *testing.T) {
	c, err := Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	hash1 := HashSource([]byte("one"))
	hash2 := HashSource([]byte("two"))

	if err := c.Put(&Entry{Path: "src/lib.ry", Hash: hash1, Tree: "first"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Put(&Entry{Path: "src/lib.ry", Hash: hash2, Tree: "second"}); err != nil {
		t.Fatal(err)
	}

	if _, ok, _ := c.Get("src/lib.ry", hash1); ok {
		t.Error("old hash should no longer hit after replacement")
	}

	got, ok, err := c.Get("src/lib.ry", hash2)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a hit for the replacing entry")
	}
	if got.Tree != "second" {
		t.Errorf("tree = %q, want second", got.Tree)
	}
}

func TestCacheSurvivesReopen(t *testing.T) {
	dir := t.TempDir()

	hash := HashSource([]byte("fun main() { }"))

	c, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Put(&Entry{Path: filepath.Join("src", "main.ry"), Hash: hash, Tree: "persisted"}); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}

	c2, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer c2.Close()

	got, ok, err := c2.Get(filepath.Join("src", "main.ry"), hash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected the entry to survive a reopen")
	}
	if got.Tree != "persisted" {
		t.Errorf("tree = %q, want persisted", got.Tree)
	}
}

func TestHashSourceStable(t *testing.T) {
	a := HashSource([]byte("fun main() { }"))
	b := HashSource([]byte("fun main() { }"))
	if string(a) != string(b) {
		t.Error("same content must hash identically")
	}
	c := HashSource([]byte("fun main() {}"))
	if string(a) == string(c) {
		t.Error("different content must hash differently")
	}
}
