package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolvePathDependency(t *testing.T) {
	root := t.TempDir()

	// A dependency project next to the main one.
	depDir := filepath.Join(root, "helper")
	if err := os.MkdirAll(depDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, depDir, `[project]
name = "helper"
`)

	appDir := filepath.Join(root, "app")
	if err := os.MkdirAll(appDir, 0755); err != nil {
		t.Fatal(err)
	}
	writeManifest(t, appDir, `[project]
name = "app"

[dependencies]
helper = { path = "../helper" }
`)

	m, err := Load(appDir)
	if err != nil {
		t.Fatal(err)
	}

	deps, err := NewResolver(m, false).Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(deps) != 1 {
		t.Fatalf("resolved count = %d, want 1", len(deps))
	}
	if deps[0].Name != "helper" {
		t.Errorf("dep name = %q, want helper", deps[0].Name)
	}
	if deps[0].Manifest == nil || deps[0].Manifest.Project.Name != "helper" {
		t.Error("dependency manifest not loaded")
	}

	// The lock file should now pin the path dependency.
	lock, err := ReadLock(m.LockFilePath())
	if err != nil {
		t.Fatal(err)
	}
	if lock == nil || lock.FindLockedDep("helper") == nil {
		t.Error("lock file missing helper entry")
	}
}

func TestResolveTransitiveDependencies(t *testing.T) {
	root := t.TempDir()

	leafDir := filepath.Join(root, "leaf")
	midDir := filepath.Join(root, "mid")
	appDir := filepath.Join(root, "app")
	for _, d := range []string{leafDir, midDir, appDir} {
		if err := os.MkdirAll(d, 0755); err != nil {
			t.Fatal(err)
		}
	}

	writeManifest(t, leafDir, `[project]
name = "leaf"
`)
	writeManifest(t, midDir, `[project]
name = "mid"

[dependencies]
leaf = { path = "../leaf" }
`)
	writeManifest(t, appDir, `[project]
name = "app"

[dependencies]
mid = { path = "../mid" }
`)

	m, err := Load(appDir)
	if err != nil {
		t.Fatal(err)
	}

	deps, err := NewResolver(m, false).Resolve()
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if len(deps) != 2 {
		t.Fatalf("resolved count = %d, want 2", len(deps))
	}
	// Dependencies come before dependents.
	if deps[0].Name != "leaf" || deps[1].Name != "mid" {
		t.Errorf("load order = [%s, %s], want [leaf, mid]", deps[0].Name, deps[1].Name)
	}
}

func TestResolveMissingPathDependency(t *testing.T) {
	appDir := t.TempDir()
	writeManifest(t, appDir, `[project]
name = "app"

[dependencies]
ghost = { path = "../nope" }
`)

	m, err := Load(appDir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewResolver(m, false).Resolve(); err == nil {
		t.Error("expected an error for a missing path dependency")
	}
}

func TestResolveDependencyWithoutSource(t *testing.T) {
	appDir := t.TempDir()
	writeManifest(t, appDir, `[project]
name = "app"

[dependencies]
broken = { }
`)

	m, err := Load(appDir)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewResolver(m, false).Resolve(); err == nil {
		t.Error("expected an error for a dependency with neither git nor path")
	}
}
