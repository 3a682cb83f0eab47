package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/lobbylab/frontdesk/internal/client"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze",
	Short:   "Start an analysis run over guest requests",
	GroupID: "runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetStringSlice("ids")
		wait, _ := cmd.Flags().GetBool("wait")
		interval, _ := cmd.Flags().GetDuration("interval")

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		started, err := fdClient.Analyze(ctx, ids)
		if err != nil {
			return fmt.Errorf("starting analysis: %w", err)
		}

		if !wait {
			if jsonOutput {
				printJSON(started)
			} else {
				fmt.Printf("Run:    %s\n", started.RunID)
				fmt.Printf("Status: %s\n", started.Status)
			}
			return nil
		}

		resp, err := pollRun(ctx, started.RunID, interval)
		if err != nil {
			return err
		}
		if jsonOutput {
			printJSON(resp)
		} else {
			printRunTable(resp)
		}
		return nil
	},
}

// pollRun polls the run until it reaches a terminal status or ctx is done.
func pollRun(ctx context.Context, runID string, interval time.Duration) (*client.RunResponse, error) {
	for {
		r, err := fdClient.GetRun(ctx, runID)
		if err != nil {
			return nil, fmt.Errorf("polling run %s: %w", runID, err)
		}
		if r.Run.Status.IsTerminal() {
			return r, nil
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("interrupted while waiting for run %s (status %s)", runID, r.Run.Status)
		case <-time.After(interval):
		}
	}
}

func init() {
	analyzeCmd.Flags().StringSlice("ids", nil, "restrict analysis to these request IDs (comma-separated)")
	analyzeCmd.Flags().BoolP("wait", "w", false, "block until the run reaches a terminal status")
	analyzeCmd.Flags().Duration("interval", time.Second, "polling interval used with --wait")
}
