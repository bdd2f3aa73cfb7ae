package manifest

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolvedDep represents a dependency that has been resolved to a local path.
type ResolvedDep struct {
	Name      string    // dependency name
	LocalPath string    // local filesystem path
	Manifest  *Manifest // the dependency's own manifest (may be nil)
}

// Resolver manages dependency resolution.
type Resolver struct {
	manifest *Manifest
	lock     *LockFile
	verbose  bool
}

// NewResolver creates a new dependency resolver.
func NewResolver(m *Manifest, verbose bool) *Resolver {
	return &Resolver{
		manifest: m,
		verbose:  verbose,
	}
}

// Resolve resolves all dependencies and returns them in load order
// (topologically sorted: dependencies before dependents).
func (r *Resolver) Resolve() ([]ResolvedDep, error) {
	lock, err := ReadLock(r.manifest.LockFilePath())
	if err != nil {
		return nil, fmt.Errorf("reading lock file: %w", err)
	}
	r.lock = lock

	depsDir := r.manifest.DepsDir()
	if err := os.MkdirAll(depsDir, 0755); err != nil {
		return nil, fmt.Errorf("creating deps dir: %w", err)
	}

	resolved := make(map[string]*ResolvedDep)
	order, err := r.resolveAll(r.manifest.Dependencies, resolved)
	if err != nil {
		return nil, err
	}

	if err := r.writeLock(resolved); err != nil {
		return nil, fmt.Errorf("writing lock file: %w", err)
	}

	return order, nil
}

// resolveAll resolves a set of dependencies recursively, returning them in
// topological order (deps before dependents).
func (r *Resolver) resolveAll(deps map[string]Dependency, resolved map[string]*ResolvedDep) ([]ResolvedDep, error) {
	var order []ResolvedDep

	for name, dep := range deps {
		if _, ok := resolved[name]; ok {
			continue // already resolved
		}

		rd, err := r.resolveOne(name, dep)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", name, err)
		}

		resolved[name] = rd

		if rd.Manifest != nil && len(rd.Manifest.Dependencies) > 0 {
			transitive, err := r.resolveAll(rd.Manifest.Dependencies, resolved)
			if err != nil {
				return nil, err
			}
			order = append(order, transitive...)
		}

		order = append(order, *rd)
	}

	return order, nil
}

// resolveOne resolves a single dependency.
func (r *Resolver) resolveOne(name string, dep Dependency) (*ResolvedDep, error) {
	if dep.Path != "" {
		// Local path dependency
		localPath := dep.Path
		if !filepath.IsAbs(localPath) {
			localPath = filepath.Join(r.manifest.Dir, localPath)
		}

		localPath, err := filepath.Abs(localPath)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", dep.Path, err)
		}

		if _, err := os.Stat(localPath); err != nil {
			return nil, fmt.Errorf("local dependency %q not found at %s: %w", name, localPath, err)
		}

		depManifest, _ := Load(localPath)

		return &ResolvedDep{
			Name:      name,
			LocalPath: localPath,
			Manifest:  depManifest,
		}, nil
	}

	if dep.Git != "" {
		// Git dependency
		depDir := filepath.Join(r.manifest.DepsDir(), name)

		if _, err := os.Stat(depDir); os.IsNotExist(err) {
			if r.verbose {
				fmt.Printf("  Cloning %s from %s\n", name, dep.Git)
			}
			if err := gitClone(dep.Git, depDir); err != nil {
				return nil, err
			}
		} else {
			locked := r.lock.FindLockedDep(name)
			if locked == nil || locked.Tag != dep.Tag {
				if r.verbose {
					fmt.Printf("  Fetching %s\n", name)
				}
				if err := gitFetch(depDir); err != nil {
					return nil, err
				}
			}
		}

		if dep.Tag != "" {
			if err := gitCheckout(depDir, dep.Tag); err != nil {
				return nil, err
			}
		}

		depManifest, _ := Load(depDir)

		return &ResolvedDep{
			Name:      name,
			LocalPath: depDir,
			Manifest:  depManifest,
		}, nil
	}

	return nil, fmt.Errorf("dependency %q has no git or path specified", name)
}

// writeLock writes the resolved dependencies to the lock file.
func (r *Resolver) writeLock(resolved map[string]*ResolvedDep) error {
	lf := &LockFile{}

	for _, rd := range resolved {
		ld := LockedDep{Name: rd.Name}

		dep := r.manifest.Dependencies[rd.Name]
		if dep.Git != "" {
			ld.Git = dep.Git
			ld.Tag = dep.Tag
			if commit, err := gitCurrentCommit(rd.LocalPath); err == nil {
				ld.Commit = commit
			}
		} else if dep.Path != "" {
			ld.Path = dep.Path
		}

		lf.Deps = append(lf.Deps, ld)
	}

	lockDir := filepath.Dir(r.manifest.LockFilePath())
	if err := os.MkdirAll(lockDir, 0755); err != nil {
		return err
	}

	return WriteLock(r.manifest.LockFilePath(), lf)
}
