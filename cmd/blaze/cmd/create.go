package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/VDFOREVER/blaze/internal/store"
)

var createCmd = &cobra.Command{
	Use:   "create [path]",
	Short: "Create a new datablaze",
	Long: `Creates a new datablaze in the given directory. Without an
argument the path is read from stdin.

Examples:
  blaze create ./data/main
  echo ./data/main | blaze create`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
}

func runCreate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var path string
	if len(args) == 1 {
		path = args[0]
	} else {
		fmt.Fprintln(out, "Specify a path to a datablaze")
		line, err := readLine(cmd.InOrStdin())
		if err != nil {
			return err
		}
		path = line
	}
	if path == "" {
		return fmt.Errorf("no datablaze path given")
	}

	db, err := store.Create(path)
	if err != nil {
		return err
	}
	defer db.Close()

	appLogger.Info("datablaze created", "id", db.ID(), "path", db.Dir())
	fmt.Fprintf(out, "Datablaze created: %s\n", db.Dir())
	fmt.Fprintf(out, "  ID:     %s\n", db.ID())
	fmt.Fprintf(out, "  Format: %d\n", db.FormatVersion())
	return nil
}
