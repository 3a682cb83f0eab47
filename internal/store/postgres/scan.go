package postgres

import (
	"database/sql"

	"github.com/lobbylab/frontdesk/internal/model"
)

// scannable is the interface satisfied by both *sql.Row and *sql.Rows.
type scannable interface {
	Scan(dest ...any) error
}

// scanRequest scans a single row into a model.Request.
// The row must contain columns in the order defined by requestColumns.
func scanRequest(row scannable) (*model.Request, error) {
	var r model.Request
	var description sql.NullString

	err := row.Scan(
		&r.ID,
		&r.Title,
		&description,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	r.Description = description.String
	return &r, nil
}

// scanRequestWithTotal scans a row that has a leading total_count column
// followed by the standard request columns. Used by queryListRequests with
// COUNT(*) OVER().
func scanRequestWithTotal(row scannable) (*model.Request, int, error) {
	var total int
	var r model.Request
	var description sql.NullString

	err := row.Scan(
		&total,
		&r.ID,
		&r.Title,
		&description,
		&r.CreatedAt,
	)
	if err != nil {
		return nil, 0, err
	}

	r.Description = description.String
	return &r, total, nil
}

// scanRun scans a single row into a model.Run.
func scanRun(row scannable) (*model.Run, error) {
	var run model.Run
	var summary sql.NullString

	err := row.Scan(
		&run.ID,
		&run.CreatedAt,
		&summary,
		&run.Status,
		&run.RequestCount,
	)
	if err != nil {
		return nil, err
	}

	run.Summary = summary.String
	return &run, nil
}

// scanVerdict scans a single joined row into a model.Verdict with its
// Request populated. The row must contain columns in the order defined
// by verdictColumns.
func scanVerdict(row scannable) (*model.Verdict, error) {
	var v model.Verdict
	var req model.Request
	var (
		notes          sql.NullString
		reqDescription sql.NullString
	)

	err := row.Scan(
		&v.ID,
		&v.RunID,
		&v.RequestID,
		&v.Category,
		&v.Priority,
		&notes,
		&v.CreatedAt,
		&req.Title,
		&reqDescription,
		&req.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	v.Notes = notes.String
	req.ID = v.RequestID
	req.Description = reqDescription.String
	v.Request = &req
	return &v, nil
}

// nullString converts a string to sql.NullString; empty string is null.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
