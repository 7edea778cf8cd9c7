package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/VDFOREVER/blaze/internal/server"
	"github.com/VDFOREVER/blaze/internal/store"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Aliases: []string{"serve"},
	Short:   "Start the script server",
	Long: `Starts the Blaze script server:

  gRPC  blaze.Script (Lex, Parse), health and reflection
  HTTP  /ws WebSocket endpoint and /health

Addresses come from the server section of the configuration. With
storage.record_history set, parses are recorded in storage.path; the
datablaze is created when it does not exist yet.`,
	Args: cobra.NoArgs,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runServer(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openRecording()
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	srv := server.New(server.Options{
		Config:    appConfig,
		Engine:    newEngine(),
		Datablaze: db,
		Logger:    appLogger,
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Blaze server: gRPC %s, HTTP %s\n",
		appConfig.GRPCAddress(), appConfig.HTTPAddress())

	return srv.Run(ctx)
}

// openRecording opens the configured datablaze, or returns nil when
// recording is off
func openRecording() (*store.Datablaze, error) {
	storage := appConfig.Storage
	if !storage.RecordHistory || storage.Path == "" {
		return nil, nil
	}
	if !store.Exists(storage.Path) {
		return store.Create(storage.Path)
	}
	return store.Open(storage.Path)
}
