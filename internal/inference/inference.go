// Package inference calls an OpenAI-compatible chat completion API to
// classify guest requests and summarize analysis runs.
package inference

import (
	"context"

	"github.com/lobbylab/frontdesk/internal/model"
)

// Classification is the structured routing decision for one request.
type Classification struct {
	Category model.Category `json:"category"`
	Priority model.Priority `json:"priority"`
	Notes    string         `json:"notes"`
}

// Client produces classifications and run summaries.
type Client interface {
	// Classify routes one request to a department with a priority.
	Classify(ctx context.Context, req *model.Request) (*Classification, error)
	// Summarize produces an executive summary from a digest of
	// classified requests, one "- [PRIORITY] [category] title: notes"
	// line per request.
	Summarize(ctx context.Context, digest string) (string, error)
}
