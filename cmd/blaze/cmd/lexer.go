package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VDFOREVER/blaze/internal/tui/shell"
)

var lexerCode string

var lexerCmd = &cobra.Command{
	Use:   "lexer",
	Short: "Print the tokens of one line of Blaze code",
	Long: `Reads one line of Blaze code from stdin (or --code) and prints
the tokens the lexer produces, one per line.

Examples:
  echo 'mut x = 1;' | blaze lexer
  blaze lexer --code 'fin name = "blaze";'`,
	Args: cobra.NoArgs,
	RunE: runLexer,
}

func init() {
	rootCmd.AddCommand(lexerCmd)
	lexerCmd.Flags().StringVarP(&lexerCode, "code", "c", "", "code to analyze instead of stdin")
}

func runLexer(cmd *cobra.Command, args []string) error {
	text, err := inputText(cmd, lexerCode)
	if err != nil {
		return err
	}

	tokens, err := newEngine().Lex(text)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), shell.RenderError(err))
		return errReported
	}

	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		fmt.Fprintln(out, tok.String())
	}
	return nil
}
