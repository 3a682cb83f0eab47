package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Short:   "Delete a guest request",
	GroupID: "requests",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		if err := fdClient.DeleteRequest(context.Background(), id); err != nil {
			return fmt.Errorf("deleting request %s: %w", id, err)
		}

		fmt.Printf("request %s deleted\n", id)
		return nil
	},
}
