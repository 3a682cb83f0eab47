package inference

import "fmt"

// ClassifyError marks a failed classification call, carrying the ID of the
// request whose call failed.
type ClassifyError struct {
	RequestID string
	Err       error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify %s: %v", e.RequestID, e.Err)
}

func (e *ClassifyError) Unwrap() error {
	return e.Err
}

// SummarizeError marks a failed summary call.
type SummarizeError struct {
	Err error
}

func (e *SummarizeError) Error() string {
	return fmt.Sprintf("summarize: %v", e.Err)
}

func (e *SummarizeError) Unwrap() error {
	return e.Err
}
