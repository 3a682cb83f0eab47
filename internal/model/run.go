package model

import "time"

// RunStatus represents the lifecycle state of an analysis run.
// A polling caller only ever observes pending → analyzing → {complete|error}.
type RunStatus string

const (
	RunPending   RunStatus = "pending"
	RunAnalyzing RunStatus = "analyzing"
	RunComplete  RunStatus = "complete"
	RunError     RunStatus = "error"
)

// String returns the string representation of the status.
func (s RunStatus) String() string {
	return string(s)
}

// IsValid checks whether the status is a known value.
func (s RunStatus) IsValid() bool {
	switch s {
	case RunPending, RunAnalyzing, RunComplete, RunError:
		return true
	}
	return false
}

// IsTerminal reports whether the status admits no further transitions.
func (s RunStatus) IsTerminal() bool {
	return s == RunComplete || s == RunError
}

// Run is one execution of the analysis pipeline over a batch of requests.
// Created in pending by the launcher; the run row is mutated only by the
// pipeline's persist stage (and by the launcher's supervisor on an
// unhandled fault).
type Run struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Summary      string    `json:"summary,omitempty"`
	Status       RunStatus `json:"status"`
	RequestCount int       `json:"request_count"`
}
