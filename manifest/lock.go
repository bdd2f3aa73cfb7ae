package manifest

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// LockFile pins the resolved versions of all dependencies.
type LockFile struct {
	Deps []LockedDep `toml:"deps"`
}

// LockedDep is one pinned dependency.
type LockedDep struct {
	Name   string `toml:"name"`
	Git    string `toml:"git,omitempty"`
	Tag    string `toml:"tag,omitempty"`
	Commit string `toml:"commit,omitempty"`
	Path   string `toml:"path,omitempty"`
}

// ReadLock reads a lock file. A missing file is not an error: it returns
// nil, nil so the caller can treat the project as unlocked.
func ReadLock(path string) (*LockFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var lf LockFile
	if err := toml.Unmarshal(data, &lf); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return &lf, nil
}

// WriteLock writes the lock file to path.
func WriteLock(path string, lf *LockFile) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot write %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(lf); err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	return nil
}

// FindLockedDep returns the locked entry for name, or nil. Safe to call on
// a nil lock file.
func (lf *LockFile) FindLockedDep(name string) *LockedDep {
	if lf == nil {
		return nil
	}
	for i := range lf.Deps {
		if lf.Deps[i].Name == name {
			return &lf.Deps[i]
		}
	}
	return nil
}
