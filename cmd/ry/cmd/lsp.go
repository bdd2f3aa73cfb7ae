package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ry-lang/ry/server"
)

var lspCmd = &cobra.Command{
	Use:   "lsp",
	Short: "Start the language server on stdio",
	Args:  cobra.NoArgs,
	RunE:  runLsp,
}

func init() {
	rootCmd.AddCommand(lspCmd)
}

func runLsp(cmd *cobra.Command, args []string) error {
	return server.NewLSP().Run()
}
