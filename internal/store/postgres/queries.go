package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lobbylab/frontdesk/internal/model"
)

// requestColumns is the column list used for SELECT statements on the requests table.
const requestColumns = `id, title, description, created_at`

// runColumns is the column list used for SELECT statements on the runs table.
const runColumns = `id, created_at, summary, status, request_count`

// verdictColumns is the column list used for SELECT statements on the verdicts
// table, joined to the request it classified.
const verdictColumns = `v.id, v.run_id, v.request_id, v.category, v.priority, v.notes, v.created_at,
	r.title, r.description, r.created_at`

// executor is the interface satisfied by both *sql.DB and *sql.Tx.
type executor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func queryCreateRequest(ctx context.Context, db executor, req *model.Request) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO requests (id, title, description, created_at)
		VALUES ($1, $2, $3, $4)`,
		req.ID,
		req.Title,
		req.Description,
		req.CreatedAt,
	)
	return err
}

func queryGetRequest(ctx context.Context, db executor, id string) (*model.Request, error) {
	row := db.QueryRowContext(ctx, `SELECT `+requestColumns+` FROM requests WHERE id = $1`, id)
	return scanRequest(row)
}

func queryListRequests(ctx context.Context, db executor, filter model.RequestFilter) ([]*model.Request, int, error) {
	var (
		whereClauses []string
		args         []any
		argIdx       int
	)

	nextArg := func() string {
		argIdx++
		return fmt.Sprintf("$%d", argIdx)
	}

	if len(filter.IDs) > 0 {
		placeholders := make([]string, len(filter.IDs))
		for i, id := range filter.IDs {
			placeholders[i] = nextArg()
			args = append(args, id)
		}
		whereClauses = append(whereClauses, "id IN ("+strings.Join(placeholders, ", ")+")")
	}

	if filter.Search != "" {
		p := nextArg()
		whereClauses = append(whereClauses,
			fmt.Sprintf("(title ILIKE '%%' || %s || '%%' OR description ILIKE '%%' || %s || '%%')", p, p))
		args = append(args, filter.Search)
	}

	whereSQL := ""
	if len(whereClauses) > 0 {
		whereSQL = " WHERE " + strings.Join(whereClauses, " AND ")
	}

	// Single query with COUNT(*) OVER() to get total and rows atomically.
	dataQuery := "SELECT COUNT(*) OVER() AS total_count, " + requestColumns +
		" FROM requests" + whereSQL + " ORDER BY created_at ASC, id ASC"

	if filter.Limit > 0 {
		dataQuery += " LIMIT " + nextArg()
		args = append(args, filter.Limit)
	}
	if filter.Offset > 0 {
		dataQuery += " OFFSET " + nextArg()
		args = append(args, filter.Offset)
	}

	rows, err := db.QueryContext(ctx, dataQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	var reqs []*model.Request
	var total int
	for rows.Next() {
		r, t, err := scanRequestWithTotal(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan requests: %w", err)
		}
		total = t
		reqs = append(reqs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("scan requests: %w", err)
	}

	return reqs, total, nil
}

func queryUpdateRequest(ctx context.Context, db executor, req *model.Request) error {
	res, err := db.ExecContext(ctx, `
		UPDATE requests SET title = $2, description = $3
		WHERE id = $1`,
		req.ID,
		req.Title,
		req.Description,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryDeleteRequest(ctx context.Context, db executor, id string) error {
	res, err := db.ExecContext(ctx, `DELETE FROM requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryCreateRun(ctx context.Context, db executor, run *model.Run) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, summary, status, request_count)
		VALUES ($1, $2, $3, $4, $5)`,
		run.ID,
		run.CreatedAt,
		nullString(run.Summary),
		string(run.Status),
		run.RequestCount,
	)
	return err
}

func queryGetRun(ctx context.Context, db executor, id string) (*model.Run, error) {
	row := db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = $1`, id)
	return scanRun(row)
}

func queryLatestRun(ctx context.Context, db executor) (*model.Run, error) {
	row := db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	return scanRun(row)
}

func queryListRuns(ctx context.Context, db executor) ([]*model.Run, error) {
	rows, err := db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*model.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan runs: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan runs: %w", err)
	}
	return runs, nil
}

// queryUpdateRunResult writes the terminal state of a run: summary, status,
// and the number of requests the run covered.
func queryUpdateRunResult(ctx context.Context, db executor, run *model.Run) error {
	res, err := db.ExecContext(ctx, `
		UPDATE runs SET summary = $2, status = $3, request_count = $4
		WHERE id = $1`,
		run.ID,
		nullString(run.Summary),
		string(run.Status),
		run.RequestCount,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryInsertVerdicts(ctx context.Context, db executor, runID string, verdicts []*model.Verdict) error {
	for _, v := range verdicts {
		err := db.QueryRowContext(ctx, `
			INSERT INTO verdicts (run_id, request_id, category, priority, notes, created_at)
			VALUES ($1, $2, $3, $4, $5, NOW())
			RETURNING id, created_at`,
			runID,
			v.RequestID,
			string(v.Category),
			string(v.Priority),
			nullString(v.Notes),
		).Scan(&v.ID, &v.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert verdict for %s: %w", v.RequestID, err)
		}
		v.RunID = runID
	}
	return nil
}

// queryMarkRunError forces a run into the error status without touching its
// summary or verdicts. Used when the pipeline faults before persisting.
func queryMarkRunError(ctx context.Context, db executor, runID string) error {
	res, err := db.ExecContext(ctx, `UPDATE runs SET status = 'error' WHERE id = $1`, runID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func queryGetVerdicts(ctx context.Context, db executor, runID string) ([]*model.Verdict, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT `+verdictColumns+`
		FROM verdicts v
		INNER JOIN requests r ON r.id = v.request_id
		WHERE v.run_id = $1
		ORDER BY v.id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("get verdicts: %w", err)
	}
	defer rows.Close()

	var verdicts []*model.Verdict
	for rows.Next() {
		v, err := scanVerdict(rows)
		if err != nil {
			return nil, fmt.Errorf("scan verdicts: %w", err)
		}
		verdicts = append(verdicts, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scan verdicts: %w", err)
	}
	return verdicts, nil
}
