package main

import (
	"context"
	"fmt"

	"github.com/lobbylab/frontdesk/internal/client"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Short:   "List guest requests",
	GroupID: "requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ids, _ := cmd.Flags().GetStringSlice("ids")
		search, _ := cmd.Flags().GetString("search")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		resp, err := fdClient.ListRequests(context.Background(), &client.ListRequestsRequest{
			IDs:    ids,
			Search: search,
			Limit:  limit,
			Offset: offset,
		})
		if err != nil {
			return fmt.Errorf("listing requests: %w", err)
		}

		if jsonOutput {
			printJSON(resp)
		} else {
			printRequestListTable(resp.Requests, resp.Total)
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringSlice("ids", nil, "filter by request IDs (comma-separated)")
	listCmd.Flags().StringP("search", "s", "", "search in title and description")
	listCmd.Flags().Int("limit", 50, "maximum number of results")
	listCmd.Flags().Int("offset", 0, "number of results to skip")
}
