package store

import (
	"context"

	"github.com/lobbylab/frontdesk/internal/model"
)

// Store defines the persistence interface for frontdesk.
type Store interface {
	// Request CRUD
	CreateRequest(ctx context.Context, req *model.Request) error
	CreateRequests(ctx context.Context, reqs []*model.Request) error
	GetRequest(ctx context.Context, id string) (*model.Request, error)
	ListRequests(ctx context.Context, filter model.RequestFilter) ([]*model.Request, int, error) // returns requests, total count, error
	UpdateRequest(ctx context.Context, req *model.Request) error
	DeleteRequest(ctx context.Context, id string) error // cascades to verdicts

	// Runs
	CreateRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, id string) (*model.Run, error)
	LatestRun(ctx context.Context) (*model.Run, error)
	ListRuns(ctx context.Context) ([]*model.Run, error) // newest first
	// FinishRun is the pipeline's single commit point: it updates the run
	// row and inserts all verdicts in one transaction.
	FinishRun(ctx context.Context, run *model.Run, verdicts []*model.Verdict) error
	// MarkRunError is the launcher's last-resort terminal write for runs
	// whose pipeline faulted before reaching the persist stage.
	MarkRunError(ctx context.Context, runID string) error

	// Verdicts
	GetVerdicts(ctx context.Context, runID string) ([]*model.Verdict, error) // joined to request data

	// Transaction support
	RunInTransaction(ctx context.Context, fn func(tx Store) error) error

	// Lifecycle
	Close() error
}
