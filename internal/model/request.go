package model

import "time"

// Request is a single free-text guest service request.
// Requests are immutable once they enter an analysis run; edits happen
// only through the admin HTTP surface, never inside the pipeline.
type Request struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// RequestFilter narrows ListRequests results.
// An empty filter matches every request.
type RequestFilter struct {
	IDs    []string
	Search string
	Limit  int
	Offset int
}
