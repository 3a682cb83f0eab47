package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:     "run",
	Short:   "Inspect analysis runs",
	GroupID: "runs",
}

var runShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a run and its verdicts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		resp, err := fdClient.GetRun(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting run %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printRunTable(resp)
		}
		return nil
	},
}

var runLatestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Show the most recently created run",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := fdClient.LatestRun(context.Background())
		if err != nil {
			return fmt.Errorf("getting latest run: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printRunTable(resp)
		}
		return nil
	},
}

func init() {
	runCmd.AddCommand(runShowCmd)
	runCmd.AddCommand(runLatestCmd)
}
