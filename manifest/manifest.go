// Package manifest handles ry.toml project configuration.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ManifestFile is the file name looked up in a project directory.
const ManifestFile = "ry.toml"

// Manifest represents a ry.toml project configuration.
type Manifest struct {
	Project      Project               `toml:"project"`
	Source       Source                `toml:"source"`
	Dependencies map[string]Dependency `toml:"dependencies"`
	Build        BuildConfig           `toml:"build"`

	// Dir is the directory containing the ry.toml file (set at load time).
	Dir string `toml:"-"`
}

// Project contains project metadata.
type Project struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
}

// Source configures source file locations.
type Source struct {
	Dirs  []string `toml:"dirs"`
	Entry string   `toml:"entry"`
}

// Dependency represents a single project dependency.
type Dependency struct {
	Git  string `toml:"git"`
	Tag  string `toml:"tag"`
	Path string `toml:"path"`
}

// BuildConfig configures build output.
type BuildConfig struct {
	CacheDir string `toml:"cache-dir"`
}

// Load parses a ry.toml file from the given directory.
func Load(dir string) (*Manifest, error) {
	path := filepath.Join(dir, ManifestFile)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	m.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	// Defaults
	if len(m.Source.Dirs) == 0 {
		m.Source.Dirs = []string{"src"}
	}

	return &m, nil
}

// FindAndLoad walks up from startDir to find a ry.toml file, then loads and
// returns the manifest. Returns nil if no manifest is found.
func FindAndLoad(startDir string) (*Manifest, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		path := filepath.Join(dir, ManifestFile)
		if _, err := os.Stat(path); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root
			return nil, nil
		}
		dir = parent
	}
}

// SourceDirPaths returns absolute paths for the configured source directories.
func (m *Manifest) SourceDirPaths() []string {
	var paths []string
	for _, d := range m.Source.Dirs {
		paths = append(paths, filepath.Join(m.Dir, d))
	}
	return paths
}

// CacheDirPath returns the build cache directory, defaulting to .ry/cache.
func (m *Manifest) CacheDirPath() string {
	if m.Build.CacheDir != "" {
		if filepath.IsAbs(m.Build.CacheDir) {
			return m.Build.CacheDir
		}
		return filepath.Join(m.Dir, m.Build.CacheDir)
	}
	return filepath.Join(m.Dir, ".ry", "cache")
}

// DepsDir returns the path to the .ry/deps directory.
func (m *Manifest) DepsDir() string {
	return filepath.Join(m.Dir, ".ry", "deps")
}

// LockFilePath returns the path to .ry/lock.toml.
func (m *Manifest) LockFilePath() string {
	return filepath.Join(m.Dir, ".ry", "lock.toml")
}
