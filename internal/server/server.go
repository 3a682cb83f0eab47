// Package server exposes the HTTP/JSON API: request management, analysis
// launch, and the run poll surface.
package server

import (
	"context"
	"log/slog"

	"github.com/lobbylab/frontdesk/internal/events"
	"github.com/lobbylab/frontdesk/internal/pipeline"
	"github.com/lobbylab/frontdesk/internal/store"
)

// FrontdeskServer holds the HTTP handler dependencies.
type FrontdeskServer struct {
	store     store.Store
	publisher events.Publisher
	launcher  *pipeline.Launcher
}

// NewFrontdeskServer returns a server backed by the given store, publisher,
// and run launcher. A nil publisher disables events.
func NewFrontdeskServer(s store.Store, p events.Publisher, l *pipeline.Launcher) *FrontdeskServer {
	if p == nil {
		p = &events.NoopPublisher{}
	}
	return &FrontdeskServer{store: s, publisher: p, launcher: l}
}

// publish emits an event best-effort; failures are logged but do not block
// the caller.
func (s *FrontdeskServer) publish(ctx context.Context, topic string, event any) {
	if err := s.publisher.Publish(ctx, topic, event); err != nil {
		slog.Warn("failed to publish event", "topic", topic, "error", err)
	}
}

// inputError indicates invalid user input.
// The transport layer maps this to 400.
type inputError string

func (e inputError) Error() string { return string(e) }
