package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/VDFOREVER/blaze/internal/store"
)

var (
	historyLimit  int
	historyFormat string
)

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "List the parses recorded in a datablaze",
	Long: `Lists the recorded parses of a datablaze, newest first. Without
an argument the datablaze configured in storage.path is used.

Examples:
  blaze history ./data/main
  blaze history --limit 5 --format json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "number of records (default: storage.history_limit)")
	historyCmd.Flags().StringVarP(&historyFormat, "format", "f", "text", "output format: text, json or yaml")
}

func runHistory(cmd *cobra.Command, args []string) error {
	path := appConfig.Storage.Path
	if len(args) == 1 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("no datablaze path given")
	}

	limit := historyLimit
	if !cmd.Flags().Changed("limit") {
		limit = appConfig.Storage.HistoryLimit
	}

	db, err := store.Open(path)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.History(cmd.Context(), limit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch historyFormat {
	case "json":
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	case "yaml":
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(records); err != nil {
			return err
		}
		return enc.Close()
	case "text":
	default:
		return fmt.Errorf("unknown format %q (use text, json or yaml)", historyFormat)
	}

	stats, err := db.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Datablaze %s: %d parses (%d ok, %d failed)\n\n",
		db.ID(), stats.Total, stats.Succeeded, stats.Failed)

	if len(records) == 0 {
		fmt.Fprintln(out, "No parses recorded")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tSTATUS\tSOURCE\tRESULT\tCODE")
	for _, rec := range records {
		status, result := "ok", fmt.Sprintf("%d statements", rec.Statements)
		if !rec.Success {
			status, result = "failed", rec.Diagnostic
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			rec.CreatedAt.Local().Format("2006-01-02 15:04:05"),
			status, rec.SourceLabel, result, oneLine(rec.Source))
	}
	return w.Flush()
}

// oneLine shortens source for the table
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) > 40 {
		return s[:37] + "..."
	}
	return s
}
