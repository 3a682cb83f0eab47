// Package postgres implements the store.Store interface backed by PostgreSQL.
package postgres

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/lobbylab/frontdesk/internal/model"
	"github.com/lobbylab/frontdesk/internal/store"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// PostgresStore implements store.Store backed by a PostgreSQL database.
type PostgresStore struct {
	db *sql.DB
}

// Compile-time check that PostgresStore implements store.Store.
var _ store.Store = (*PostgresStore)(nil)

// New opens a connection to the PostgreSQL database at the given URL,
// configures the connection pool, and runs any pending migrations.
func New(databaseURL string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func runMigrations(db *sql.DB) error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create migration source: %w", err)
	}

	dbDriver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("create migration db driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", sourceDriver, "postgres", dbDriver)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}

// Close closes the underlying database connection.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) CreateRequest(ctx context.Context, req *model.Request) error {
	return queryCreateRequest(ctx, s.db, req)
}

func (s *PostgresStore) CreateRequests(ctx context.Context, reqs []*model.Request) error {
	return s.RunInTransaction(ctx, func(tx store.Store) error {
		for _, req := range reqs {
			if err := tx.CreateRequest(ctx, req); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *PostgresStore) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	return queryGetRequest(ctx, s.db, id)
}

func (s *PostgresStore) ListRequests(ctx context.Context, filter model.RequestFilter) ([]*model.Request, int, error) {
	return queryListRequests(ctx, s.db, filter)
}

func (s *PostgresStore) UpdateRequest(ctx context.Context, req *model.Request) error {
	return queryUpdateRequest(ctx, s.db, req)
}

func (s *PostgresStore) DeleteRequest(ctx context.Context, id string) error {
	return queryDeleteRequest(ctx, s.db, id)
}

func (s *PostgresStore) CreateRun(ctx context.Context, run *model.Run) error {
	return queryCreateRun(ctx, s.db, run)
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	return queryGetRun(ctx, s.db, id)
}

func (s *PostgresStore) LatestRun(ctx context.Context) (*model.Run, error) {
	return queryLatestRun(ctx, s.db)
}

func (s *PostgresStore) ListRuns(ctx context.Context) ([]*model.Run, error) {
	return queryListRuns(ctx, s.db)
}

// FinishRun updates the run row and inserts all verdicts atomically.
// This is the pipeline's single durable write.
func (s *PostgresStore) FinishRun(ctx context.Context, run *model.Run, verdicts []*model.Verdict) error {
	return s.RunInTransaction(ctx, func(tx store.Store) error {
		return tx.FinishRun(ctx, run, verdicts)
	})
}

func (s *PostgresStore) MarkRunError(ctx context.Context, runID string) error {
	return queryMarkRunError(ctx, s.db, runID)
}

func (s *PostgresStore) GetVerdicts(ctx context.Context, runID string) ([]*model.Verdict, error) {
	return queryGetVerdicts(ctx, s.db, runID)
}

// RunInTransaction begins a database transaction, creates a txStore that
// delegates to it, calls fn, and commits on success or rolls back on error.
func (s *PostgresStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	txS := &txStore{tx: tx}
	if err := fn(txS); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// txStore implements store.Store using a *sql.Tx.
type txStore struct {
	tx *sql.Tx
}

// Compile-time check that txStore implements store.Store.
var _ store.Store = (*txStore)(nil)

func (s *txStore) CreateRequest(ctx context.Context, req *model.Request) error {
	return queryCreateRequest(ctx, s.tx, req)
}

func (s *txStore) CreateRequests(ctx context.Context, reqs []*model.Request) error {
	for _, req := range reqs {
		if err := queryCreateRequest(ctx, s.tx, req); err != nil {
			return err
		}
	}
	return nil
}

func (s *txStore) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	return queryGetRequest(ctx, s.tx, id)
}

func (s *txStore) ListRequests(ctx context.Context, filter model.RequestFilter) ([]*model.Request, int, error) {
	return queryListRequests(ctx, s.tx, filter)
}

func (s *txStore) UpdateRequest(ctx context.Context, req *model.Request) error {
	return queryUpdateRequest(ctx, s.tx, req)
}

func (s *txStore) DeleteRequest(ctx context.Context, id string) error {
	return queryDeleteRequest(ctx, s.tx, id)
}

func (s *txStore) CreateRun(ctx context.Context, run *model.Run) error {
	return queryCreateRun(ctx, s.tx, run)
}

func (s *txStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	return queryGetRun(ctx, s.tx, id)
}

func (s *txStore) LatestRun(ctx context.Context) (*model.Run, error) {
	return queryLatestRun(ctx, s.tx)
}

func (s *txStore) ListRuns(ctx context.Context) ([]*model.Run, error) {
	return queryListRuns(ctx, s.tx)
}

func (s *txStore) FinishRun(ctx context.Context, run *model.Run, verdicts []*model.Verdict) error {
	if err := queryUpdateRunResult(ctx, s.tx, run); err != nil {
		return err
	}
	return queryInsertVerdicts(ctx, s.tx, run.ID, verdicts)
}

func (s *txStore) MarkRunError(ctx context.Context, runID string) error {
	return queryMarkRunError(ctx, s.tx, runID)
}

func (s *txStore) GetVerdicts(ctx context.Context, runID string) ([]*model.Verdict, error) {
	return queryGetVerdicts(ctx, s.tx, runID)
}

// RunInTransaction on a txStore reuses the existing transaction (no nesting).
func (s *txStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(s)
}

// Close is a no-op for a transaction store; the parent store owns the connection.
func (s *txStore) Close() error {
	return nil
}
