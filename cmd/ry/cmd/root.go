// Ry CLI - the main entry point for working with Ry projects
package cmd

import (
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "ry",
	Short: "The Ry programming language toolchain",
	Long: `The Ry programming language toolchain.

Commands:
  new    - create a new Ry project
  lex    - tokenize a source file
  parse  - parse a source file and dump its syntax tree
  build  - parse every source file in a project
  lsp    - start the language server on stdio`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}
