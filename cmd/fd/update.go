package main

import (
	"context"
	"fmt"

	"github.com/lobbylab/frontdesk/internal/client"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:     "update <id>",
	Short:   "Update a guest request",
	GroupID: "requests",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		req := &client.UpdateRequestRequest{}
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			req.Description = &description
		}
		if req.Title == nil && req.Description == nil {
			return fmt.Errorf("nothing to update: pass --title and/or --description")
		}

		updated, err := fdClient.UpdateRequest(context.Background(), id, req)
		if err != nil {
			return fmt.Errorf("updating request %s: %w", id, err)
		}

		if jsonOutput {
			printJSON(updated)
		} else {
			printRequestTable(updated)
		}
		return nil
	},
}

func init() {
	updateCmd.Flags().StringP("title", "t", "", "new title")
	updateCmd.Flags().StringP("description", "d", "", "new description")
}
