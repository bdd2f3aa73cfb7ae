package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ry-lang/ry/manifest"
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new Ry project",
	Args:  cobra.ExactArgs(1),
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

const mainTemplate = `fun main() {
}
`

func runNew(cmd *cobra.Command, args []string) error {
	name := args[0]

	if _, err := os.Stat(name); err == nil {
		return fmt.Errorf("directory %s already exists", name)
	}

	srcDir := filepath.Join(name, "src")
	if err := os.MkdirAll(srcDir, 0755); err != nil {
		return fmt.Errorf("creating project directories: %w", err)
	}

	manifestContent := fmt.Sprintf("[project]\nname = %q\nversion = \"0.1.0\"\n", name)
	if err := os.WriteFile(filepath.Join(name, manifest.ManifestFile), []byte(manifestContent), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", manifest.ManifestFile, err)
	}

	if err := os.WriteFile(filepath.Join(srcDir, "main.ry"), []byte(mainTemplate), 0644); err != nil {
		return fmt.Errorf("writing main.ry: %w", err)
	}

	fmt.Printf("Created project %s\n", name)
	return nil
}
