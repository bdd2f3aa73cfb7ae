package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ry-lang/ry/compiler"
)

var showSpans bool

var lexCmd = &cobra.Command{
	Use:   "lex <file>",
	Short: "Tokenize a source file and print its tokens",
	Args:  cobra.ExactArgs(1),
	RunE:  runLex,
}

func init() {
	lexCmd.Flags().BoolVar(&showSpans, "show-spans", false, "Print the byte span of each token")
	rootCmd.AddCommand(lexCmd)
}

func runLex(cmd *cobra.Command, args []string) error {
	src, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	interner := compiler.NewInterner()
	lexer := compiler.NewLexer(string(src), 0, interner)

	for {
		tok := lexer.NextToken()
		fmt.Println(formatToken(tok, interner, showSpans))
		if tok.Kind == compiler.TokenEOF {
			return nil
		}
	}
}

// formatToken renders one token for display, resolving identifier symbols
// to their text.
func formatToken(tok compiler.Token, interner *compiler.Interner, withSpan bool) string {
	text := tok.String()
	if tok.Kind == compiler.TokenIdentifier {
		if name, ok := interner.Resolve(tok.Symbol); ok {
			text = fmt.Sprintf("IDENTIFIER(`%s`)", name)
		}
	}
	if withSpan {
		return fmt.Sprintf("%s@%s", text, tok.Span)
	}
	return text
}
