package main

import (
	"context"
	"fmt"

	"github.com/lobbylab/frontdesk/internal/client"
	"github.com/spf13/cobra"
)

var createCmd = &cobra.Command{
	Use:     "create <title>",
	Short:   "Create a new guest request",
	GroupID: "requests",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := args[0]
		description, _ := cmd.Flags().GetString("description")

		created, err := fdClient.CreateRequests(context.Background(), &client.CreateRequestsRequest{
			Requests: []client.CreateRequestItem{{Title: title, Description: description}},
		})
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		if len(created) != 1 {
			return fmt.Errorf("expected 1 created request, got %d", len(created))
		}

		if jsonOutput {
			printJSON(created[0])
		} else {
			printRequestTable(created[0])
		}
		return nil
	},
}

func init() {
	createCmd.Flags().StringP("description", "d", "", "request description")
}
