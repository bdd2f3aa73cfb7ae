package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ry-lang/ry/compiler"
	"github.com/ry-lang/ry/manifest"
	"github.com/ry-lang/ry/pkg/buildcache"
)

// ---------------------------------------------------------------------------
// Integration test helpers
// ---------------------------------------------------------------------------

// parseFile parses one source file with a fresh interner.
func parseFile(t *testing.T, path string) (*compiler.Module, *compiler.Interner, *compiler.Diagnostics) {
	t.Helper()
	src, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	interner := compiler.NewInterner()
	var diags compiler.Diagnostics
	parser := compiler.NewParser(path, string(src), 0, interner, &diags)
	module := parser.ParseModule()
	return module, interner, &diags
}

// ---------------------------------------------------------------------------
// Example programs
// ---------------------------------------------------------------------------

func TestExamplesParseClean(t *testing.T) {
	paths, err := filepath.Glob("../../examples/*.ry")
	if err != nil {
		t.Fatal(err)
	}
	if len(paths) == 0 {
		t.Fatal("no example programs found")
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			module, _, diags := parseFile(t, path)
			if diags.Len() != 0 {
				for _, d := range diags.All() {
					t.Errorf("unexpected diagnostic: %s", d)
				}
			}
			if len(module.Items) == 0 {
				t.Error("expected at least one item")
			}
		})
	}
}

func TestExamplesSerializeDeterministically(t *testing.T) {
	paths, err := filepath.Glob("../../examples/*.ry")
	if err != nil {
		t.Fatal(err)
	}

	for _, path := range paths {
		t.Run(filepath.Base(path), func(t *testing.T) {
			module, interner, _ := parseFile(t, path)
			first := compiler.SerializeAST(module, interner)
			second := compiler.SerializeAST(module, interner)
			if first != second {
				t.Error("serializer output differs between runs")
			}
			if !strings.HasPrefix(first, "MODULE") {
				t.Errorf("output starts with %q", first[:min(20, len(first))])
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Project pipeline: manifest, parse, cache
// ---------------------------------------------------------------------------

func TestProjectBuildPipeline(t *testing.T) {
	dir := t.TempDir()
	srcDir := filepath.Join(dir, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		t.Fatal(err)
	}

	err := os.WriteFile(filepath.Join(dir, manifest.ManifestFile), []byte(`[project]
name = "pipeline"
version = "0.1.0"
`), 0644)
	if err != nil {
		t.Fatal(err)
	}

	source := "fun main() {\n    let x = 1 + 2;\n}\n"
	mainPath := filepath.Join(srcDir, "main.ry")
	if err := os.WriteFile(mainPath, []byte(source), 0644); err != nil {
		t.Fatal(err)
	}

	m, err := manifest.FindAndLoad(srcDir)
	if err != nil {
		t.Fatal(err)
	}
	if m == nil {
		t.Fatal("manifest not found from source dir")
	}
	if m.Project.Name != "pipeline" {
		t.Errorf("project name = %q", m.Project.Name)
	}

	cache, err := buildcache.Open(m.CacheDirPath())
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	// First pass: parse and populate the cache.
	module, interner, diags := parseFile(t, mainPath)
	if diags.HasErrors() {
		t.Fatalf("unexpected errors: %v", diags.All())
	}
	tree := compiler.SerializeAST(module, interner)

	hash := buildcache.HashSource([]byte(source))
	err = cache.Put(&buildcache.Entry{
		Path: mainPath,
		Hash: hash,
		Tree: tree,
	})
	if err != nil {
		t.Fatal(err)
	}

	// Second pass: unchanged file is a cache hit with the same tree.
	entry, ok, err := cache.Get(mainPath, hash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if entry.Tree != tree {
		t.Error("cached tree does not match serialized tree")
	}
}

func TestDiagnosticsSurviveCacheRoundTrip(t *testing.T) {
	dir := t.TempDir()

	source := "fun main() { let = 1; }"
	interner := compiler.NewInterner()
	var diags compiler.Diagnostics
	parser := compiler.NewParser("main.ry", source, 0, interner, &diags)
	parser.ParseModule()
	if !diags.HasErrors() {
		t.Fatal("expected parse errors")
	}

	cache, err := buildcache.Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer cache.Close()

	hash := buildcache.HashSource([]byte(source))
	err = cache.Put(&buildcache.Entry{
		Path:        "main.ry",
		Hash:        hash,
		Diagnostics: diags.All(),
	})
	if err != nil {
		t.Fatal(err)
	}

	entry, ok, err := cache.Get("main.ry", hash)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if diff := cmp.Diff(diags.All(), entry.Diagnostics); diff != "" {
		t.Errorf("cached diagnostics differ (-want +got):\n%s", diff)
	}
}
