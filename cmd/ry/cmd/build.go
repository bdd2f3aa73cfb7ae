package cmd

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ry-lang/ry/compiler"
	"github.com/ry-lang/ry/manifest"
	"github.com/ry-lang/ry/pkg/buildcache"
)

var buildCmd = &cobra.Command{
	Use:   "build [dir]",
	Short: "Parse every source file in a project",
	Long: `Parses every .ry file under the project's source directories,
reporting diagnostics. Unchanged files are served from the build cache.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	startDir := "."
	if len(args) > 0 {
		startDir = args[0]
	}

	m, err := manifest.FindAndLoad(startDir)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no %s found in %s or any parent directory", manifest.ManifestFile, startDir)
	}

	if len(m.Dependencies) > 0 {
		if _, err := manifest.NewResolver(m, verbose).Resolve(); err != nil {
			return fmt.Errorf("resolving dependencies: %w", err)
		}
	}

	cache, err := buildcache.Open(m.CacheDirPath())
	if err != nil {
		return err
	}
	defer cache.Close()

	files, err := collectSourceFiles(m.SourceDirPaths())
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .ry files found in %s", strings.Join(m.SourceDirPaths(), ", "))
	}

	errorCount := 0
	for _, path := range files {
		diags, err := compileFile(cache, path)
		if err != nil {
			return err
		}
		for _, d := range diags {
			fmt.Fprintf(os.Stderr, "%s:%s\n", path, d)
			if d.Severity == compiler.SeverityError {
				errorCount++
			}
		}
	}

	if errorCount > 0 {
		return fmt.Errorf("build failed with %d errors", errorCount)
	}
	if verbose {
		fmt.Printf("Parsed %d files\n", len(files))
	}
	return nil
}

// collectSourceFiles walks the source directories gathering .ry files.
// Missing directories are skipped so a fresh project with only some of its
// configured dirs still builds.
func collectSourceFiles(dirs []string) ([]string, error) {
	var files []string
	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			continue
		}
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == ".ry" {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", dir, err)
		}
	}
	return files, nil
}

// compileFile parses one source file, consulting the build cache first.
func compileFile(cache *buildcache.Cache, path string) ([]compiler.Diagnostic, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	hash := buildcache.HashSource(src)
	if entry, ok, err := cache.Get(path, hash); err != nil {
		return nil, err
	} else if ok {
		return entry.Diagnostics, nil
	}

	interner := compiler.NewInterner()
	var diags compiler.Diagnostics
	parser := compiler.NewParser(path, string(src), 0, interner, &diags)
	module := parser.ParseModule()

	entry := &buildcache.Entry{
		Path:        path,
		Hash:        hash,
		Diagnostics: diags.All(),
		Tree:        compiler.SerializeAST(module, interner),
	}
	if err := cache.Put(entry); err != nil {
		return nil, err
	}

	return entry.Diagnostics, nil
}
