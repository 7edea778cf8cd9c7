package cmd

import (
	"github.com/spf13/cobra"

	"github.com/VDFOREVER/blaze/internal/store"
	"github.com/VDFOREVER/blaze/internal/tui/shell"
)

var (
	shellLexer     bool
	shellAST       bool
	shellDatablaze string
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive Blaze shell",
	Long: `Starts the interactive Blaze shell. Every line is lexed or parsed
and the result or the diagnostic is printed; the shell keeps running after
an error.

Keys:
  Enter       Run the line
  Tab         Switch between lexer and parser
  Up/Down     Line history
  Ctrl+L      Clear
  Ctrl+C      Quit (or type exit)`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
	shellCmd.Flags().BoolVar(&shellLexer, "lexer", false, "start in lexer mode")
	shellCmd.Flags().BoolVar(&shellAST, "ast", false, "print the syntax tree of parsed lines")
	shellCmd.Flags().StringVar(&shellDatablaze, "datablaze", "", "record parses in this datablaze")
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg := shell.Config{
		Engine:  newEngine(),
		ShowAST: shellAST,
	}
	if shellLexer {
		cfg.Mode = shell.ModeLexer
	}

	path := shellDatablaze
	if path == "" && appConfig != nil && appConfig.Storage.RecordHistory {
		path = appConfig.Storage.Path
	}
	if path != "" {
		db, err := store.Open(path)
		if err != nil {
			return err
		}
		defer db.Close()
		cfg.Recorder = db
	}

	return shell.Run(cfg)
}
