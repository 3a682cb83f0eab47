// Package client provides a transport-agnostic interface for the frontdesk
// service and an HTTP/JSON implementation that talks to the REST API.
package client

import (
	"context"

	"github.com/lobbylab/frontdesk/internal/model"
)

// FrontdeskClient is the interface that all fd CLI commands use to
// communicate with the server. It is implemented by HTTPClient.
type FrontdeskClient interface {
	// Request CRUD
	CreateRequests(ctx context.Context, req *CreateRequestsRequest) ([]*model.Request, error)
	GetRequest(ctx context.Context, id string) (*model.Request, error)
	ListRequests(ctx context.Context, req *ListRequestsRequest) (*ListRequestsResponse, error)
	UpdateRequest(ctx context.Context, id string, req *UpdateRequestRequest) (*model.Request, error)
	DeleteRequest(ctx context.Context, id string) error

	// Analysis
	Analyze(ctx context.Context, requestIDs []string) (*AnalyzeResponse, error)
	GetRun(ctx context.Context, id string) (*RunResponse, error)
	LatestRun(ctx context.Context) (*RunResponse, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// CreateRequestItem is one request to create.
type CreateRequestItem struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CreateRequestsRequest holds parameters for bulk request creation.
type CreateRequestsRequest struct {
	Requests []CreateRequestItem `json:"requests"`
}

// ListRequestsRequest holds filter parameters for listing requests.
type ListRequestsRequest struct {
	IDs    []string
	Search string
	Limit  int
	Offset int
}

// ListRequestsResponse is the response from ListRequests.
type ListRequestsResponse struct {
	Requests []*model.Request `json:"requests"`
	Total    int              `json:"total"`
}

// UpdateRequestRequest holds fields to change; nil fields are left as-is.
type UpdateRequestRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
}

// AnalyzeResponse is the response from Analyze.
type AnalyzeResponse struct {
	RunID  string          `json:"run_id"`
	Status model.RunStatus `json:"status"`
}

// RunResponse is the poll surface payload: the run plus its verdicts.
type RunResponse struct {
	Run      *model.Run       `json:"run"`
	Verdicts []*model.Verdict `json:"verdicts"`
}
