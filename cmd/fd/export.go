package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lobbylab/frontdesk/internal/config"
	"github.com/lobbylab/frontdesk/internal/export"
	"github.com/lobbylab/frontdesk/internal/store/postgres"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export",
	Short:   "Export finished runs as JSONL",
	GroupID: "system",
	// Talks to the database directly, not to the HTTP server.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer store.Close()

		w := os.Stdout
		if output != "" {
			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("creating %s: %w", output, err)
			}
			defer f.Close()
			w = f
		}

		if err := export.ExportJSONL(context.Background(), store, w); err != nil {
			return fmt.Errorf("exporting runs: %w", err)
		}
		if output != "" {
			fmt.Fprintf(os.Stderr, "exported to %s\n", output)
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")
}
