package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lobbylab/frontdesk/internal/client"
	"github.com/lobbylab/frontdesk/internal/model"
)

const timeFormat = "2006-01-02 15:04:05"

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printRequestTable(req *model.Request) {
	fmt.Printf("ID:          %s\n", req.ID)
	fmt.Printf("Title:       %s\n", req.Title)
	if req.Description != "" {
		fmt.Printf("Description: %s\n", req.Description)
	}
	if !req.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", req.CreatedAt.Format(timeFormat))
	}
}

func printRequestListTable(requests []*model.Request, total int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tTITLE")
	for _, r := range requests {
		title := r.Title
		if len(title) > 60 {
			title = title[:57] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", r.ID, r.CreatedAt.Format(timeFormat), title)
	}
	w.Flush()
	fmt.Printf("\n%d requests (%d total)\n", len(requests), total)
}

func printRunTable(resp *client.RunResponse) {
	run := resp.Run
	fmt.Printf("Run:      %s\n", run.ID)
	fmt.Printf("Status:   %s\n", run.Status)
	fmt.Printf("Requests: %d\n", run.RequestCount)
	if !run.CreatedAt.IsZero() {
		fmt.Printf("Created:  %s\n", run.CreatedAt.Format(timeFormat))
	}
	if run.Summary != "" {
		fmt.Printf("Summary:  %s\n", run.Summary)
	}

	if len(resp.Verdicts) == 0 {
		return
	}
	fmt.Println()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRIORITY\tCATEGORY\tREQUEST\tNOTES")
	for _, v := range resp.Verdicts {
		title := v.RequestID
		if v.Request != nil && v.Request.Title != "" {
			title = v.Request.Title
		}
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		notes := v.Notes
		if len(notes) > 50 {
			notes = notes[:47] + "..."
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Priority, v.Category, title, notes)
	}
	w.Flush()
}
