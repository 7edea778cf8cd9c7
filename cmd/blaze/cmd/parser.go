package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	bzast "github.com/VDFOREVER/blaze/foundation/scripting/ast"
	"github.com/VDFOREVER/blaze/internal/tui/shell"
)

var (
	parserCode   string
	parserAST    bool
	parserFormat string
)

var parserCmd = &cobra.Command{
	Use:   "parser",
	Short: "Parse one line of Blaze code",
	Long: `Reads one line of Blaze code from stdin (or --code), parses it
and reports the number of top-level statements. A failed parse prints the
diagnostic and exits with a non-zero status.

Examples:
  echo 'mut x = 1 + 2;' | blaze parser
  blaze parser --ast --code 'function f(a: int) {}'
  blaze parser --format yaml --code 'fin y = f(1, two=2);'`,
	Args: cobra.NoArgs,
	RunE: runParser,
}

func init() {
	rootCmd.AddCommand(parserCmd)
	parserCmd.Flags().StringVarP(&parserCode, "code", "c", "", "code to parse instead of stdin")
	parserCmd.Flags().BoolVar(&parserAST, "ast", false, "print the syntax tree")
	parserCmd.Flags().StringVarP(&parserFormat, "format", "f", "", "print the encoded tree: json or yaml")
}

func runParser(cmd *cobra.Command, args []string) error {
	if parserFormat != "" && parserFormat != "json" && parserFormat != "yaml" {
		return fmt.Errorf("unknown format %q (use json or yaml)", parserFormat)
	}

	text, err := inputText(cmd, parserCode)
	if err != nil {
		return err
	}

	result, err := newEngine().Analyze(text)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), shell.RenderError(err))
		return errReported
	}

	out := cmd.OutOrStdout()
	if n := result.Statements(); n > 0 {
		fmt.Fprintf(out, "Parsing successfully completed! Nodes Count: %d\n", n)
	}
	if parserAST {
		fmt.Fprint(out, bzast.Print(result.Body))
	}

	switch parserFormat {
	case "json":
		data, err := json.MarshalIndent(bzast.Encode(result.Body), "", "  ")
		if err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(bzast.Encode(result.Body)); err != nil {
			return fmt.Errorf("encode tree: %w", err)
		}
		return enc.Close()
	}
	return nil
}
