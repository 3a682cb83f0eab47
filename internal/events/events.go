// Package events defines the event topics and payloads emitted on the bus.
// Publishing is best-effort: a failed publish is logged, never fatal.
package events

import (
	"context"

	"github.com/lobbylab/frontdesk/internal/model"
)

// Event topic constants
const (
	TopicRequestCreated = "frontdesk.request.created"
	TopicRequestDeleted = "frontdesk.request.deleted"
	TopicRunStarted     = "frontdesk.run.started"
	TopicRunFinished    = "frontdesk.run.finished"
)

// Event types

type RequestCreated struct {
	Request *model.Request `json:"request"`
}

type RequestDeleted struct {
	RequestID string `json:"request_id"`
}

type RunStarted struct {
	Run        *model.Run `json:"run"`
	RequestIDs []string   `json:"request_ids,omitempty"`
}

type RunFinished struct {
	RunID  string          `json:"run_id"`
	Status model.RunStatus `json:"status"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
