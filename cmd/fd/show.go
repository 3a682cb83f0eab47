package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <id>",
	Short:   "Show details of a guest request",
	GroupID: "requests",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req, err := fdClient.GetRequest(context.Background(), id)
		if err != nil {
			return fmt.Errorf("getting request %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(req)
		} else {
			printRequestTable(req)
		}
		return nil
	},
}
