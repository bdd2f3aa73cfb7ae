package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ry-lang/ry/compiler"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a source file and write its syntax tree to a file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	src, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	interner := compiler.NewInterner()
	var diags compiler.Diagnostics
	parser := compiler.NewParser(path, string(src), 0, interner, &diags)
	module := parser.ParseModule()

	for _, d := range diags.All() {
		fmt.Fprintln(os.Stderr, d)
	}

	tree := compiler.SerializeAST(module, interner)

	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	outPath := uniquePath(filepath.Dir(path), stem+"-ast", ".txt")
	if err := os.WriteFile(outPath, []byte(tree+"\n"), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", outPath, err)
	}

	if verbose {
		fmt.Printf("Wrote %s\n", outPath)
	}

	if diags.HasErrors() {
		return fmt.Errorf("%s: parsing produced errors", path)
	}
	return nil
}

// uniquePath returns dir/name+ext, never clobbering an existing file.
// Taken names get a numbered variant: "main-ast (2).txt", "main-ast (3).txt".
func uniquePath(dir, name, ext string) string {
	candidate := filepath.Join(dir, name+ext)
	for n := 2; ; n++ {
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = filepath.Join(dir, fmt.Sprintf("%s (%d)%s", name, n, ext))
	}
}
