package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/VDFOREVER/blaze/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Blaze Db %s\n", version.Blaze)
		fmt.Fprintf(out, "  Lexer:      %s\n", version.Lexer)
		fmt.Fprintf(out, "  Parser:     %s\n", version.Parser)
		fmt.Fprintf(out, "  Datablaze:  format %d\n", version.DatablazeFormat)
		fmt.Fprintf(out, "  Git Commit: %s\n", version.Commit)
		fmt.Fprintf(out, "  Build Date: %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version: %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
