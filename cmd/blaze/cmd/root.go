// ============================================================================
// Blaze - scripting language front end
// ============================================================================
//
// Package:     cmd
// Description: Root command, shared flags and the per-invocation setup of
//              configuration, logger and scripting engine
// Author:      VDFOREVER
// Created:     2026-10-18
// License:     MIT
// ============================================================================

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	bzlog "github.com/VDFOREVER/blaze/foundation/core/log"
	"github.com/VDFOREVER/blaze/foundation/scripting"
	"github.com/VDFOREVER/blaze/pkg/core/config"
	"github.com/VDFOREVER/blaze/pkg/core/logging"
	"github.com/VDFOREVER/blaze/pkg/core/version"
)

var (
	cfgFile string
	verbose bool

	appConfig *config.Config
	appLogger *logging.Logger
)

// errReported marks failures whose message was already printed
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "blaze",
	Short: "Blaze Db - scripting language front end",
	Long: `Blaze Db ` + version.Blaze + ` - available commands:
    Database management
        create   - create a new datablaze
        history  - list the parses recorded in a datablaze
    Blaze Language
        lexer    - get to see how the code is subjected to lexical analysis under the hood
        parser   - try the first version of a parser
        shell    - interactive lexer and parser
        run      - start server`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the command tree
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errReported) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file, TOML or YAML (default: $"+config.EnvConfigPath+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
}

// setup loads the configuration and installs the logger
func setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	if verbose {
		cfg.General.LogLevel = bzlog.LevelDebug.String()
	}

	lc := logging.ConfigFor("blaze", cfg)
	lc.Output = cmd.ErrOrStderr()
	appLogger = logging.Wrap(logging.NewLogger(lc))
	appConfig = cfg

	bzlog.SetDefault(appLogger.Foundation())
	return nil
}

// newEngine builds the scripting engine from the loaded configuration
func newEngine() *scripting.Engine {
	cfg := appConfig
	if cfg == nil {
		cfg = config.Default()
	}
	var logger *bzlog.Logger
	if appLogger != nil {
		logger = appLogger.Foundation()
	}
	return scripting.New(scripting.Options{
		Logger:          logger,
		SourceLabel:     cfg.Script.SourceLabel,
		MaxSourceLength: cfg.Script.MaxSourceLength,
	})
}

// readLine returns the first line of r without its line terminator
func readLine(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// inputText returns --code when given, otherwise one line of stdin
func inputText(cmd *cobra.Command, code string) (string, error) {
	if cmd.Flags().Changed("code") {
		return code, nil
	}
	return readLine(cmd.InOrStdin())
}
