package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/lobbylab/frontdesk/internal/events"
	"github.com/lobbylab/frontdesk/internal/idgen"
	"github.com/lobbylab/frontdesk/internal/model"
	"github.com/lobbylab/frontdesk/internal/store"
)

// Launcher starts analysis runs. StartRun records the run as pending and
// returns immediately; the pipeline executes on a detached goroutine that
// callers observe only by polling the run.
type Launcher struct {
	store     store.Store
	pipeline  *Pipeline
	publisher events.Publisher
	logger    *slog.Logger
}

// NewLauncher creates a Launcher. A nil publisher disables events; a nil
// logger falls back to slog.Default().
func NewLauncher(st store.Store, p *Pipeline, pub events.Publisher, logger *slog.Logger) *Launcher {
	if pub == nil {
		pub = &events.NoopPublisher{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{store: st, pipeline: p, publisher: pub, logger: logger}
}

// StartRun creates a pending run, detaches the pipeline, and returns the
// run for the caller to poll. An empty requestIDs slice analyzes every
// stored request.
func (l *Launcher) StartRun(ctx context.Context, requestIDs []string) (*model.Run, error) {
	id, err := idgen.NewRunID()
	if err != nil {
		return nil, err
	}

	run := &model.Run{
		ID:        id,
		CreatedAt: time.Now().UTC(),
		Status:    model.RunPending,
	}
	if err := l.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}

	l.publish(ctx, events.TopicRunStarted, events.RunStarted{Run: run, RequestIDs: requestIDs})

	go l.supervise(run.ID, requestIDs)

	return run, nil
}

// supervise executes the pipeline with a background context, detached from
// the HTTP request that started the run. Any escaped fault or persist
// failure forces the run into the error status so a polling caller is
// never left waiting on a run that silently died.
func (l *Launcher) supervise(runID string, requestIDs []string) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("run panicked", "run", runID, "panic", r)
			l.forceError(ctx, runID)
			l.publish(ctx, events.TopicRunFinished, events.RunFinished{RunID: runID, Status: model.RunError})
		}
	}()

	if err := l.pipeline.Execute(ctx, runID, requestIDs); err != nil {
		l.logger.Error("run failed", "run", runID, "err", err)
		l.forceError(ctx, runID)
		l.publish(ctx, events.TopicRunFinished, events.RunFinished{RunID: runID, Status: model.RunError})
		return
	}

	status := model.RunComplete
	if run, err := l.store.GetRun(ctx, runID); err == nil {
		status = run.Status
	}
	l.publish(ctx, events.TopicRunFinished, events.RunFinished{RunID: runID, Status: status})
}

func (l *Launcher) forceError(ctx context.Context, runID string) {
	if err := l.store.MarkRunError(ctx, runID); err != nil {
		l.logger.Error("mark run error failed", "run", runID, "err", err)
	}
}

// publish emits an event best-effort; failures are logged and ignored.
func (l *Launcher) publish(ctx context.Context, topic string, event any) {
	if err := l.publisher.Publish(ctx, topic, event); err != nil {
		l.logger.Warn("publish event failed", "topic", topic, "err", err)
	}
}
