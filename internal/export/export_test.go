package export

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lobbylab/frontdesk/internal/model"
	"github.com/lobbylab/frontdesk/internal/store"
)

// mockStore is an in-memory store.Store for export tests.
type mockStore struct {
	runs     []*model.Run
	verdicts map[string][]*model.Verdict
	listErr  error
}

func newMockStore() *mockStore {
	return &mockStore{verdicts: make(map[string][]*model.Verdict)}
}

func (m *mockStore) ListRuns(ctx context.Context) ([]*model.Run, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.runs, nil
}

func (m *mockStore) GetVerdicts(ctx context.Context, runID string) ([]*model.Verdict, error) {
	return m.verdicts[runID], nil
}

func (m *mockStore) CreateRequest(ctx context.Context, req *model.Request) error     { return nil }
func (m *mockStore) CreateRequests(ctx context.Context, reqs []*model.Request) error { return nil }
func (m *mockStore) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	return nil, sql.ErrNoRows
}
func (m *mockStore) ListRequests(ctx context.Context, filter model.RequestFilter) ([]*model.Request, int, error) {
	return nil, 0, nil
}
func (m *mockStore) UpdateRequest(ctx context.Context, req *model.Request) error { return nil }
func (m *mockStore) DeleteRequest(ctx context.Context, id string) error          { return nil }
func (m *mockStore) CreateRun(ctx context.Context, run *model.Run) error         { return nil }
func (m *mockStore) GetRun(ctx context.Context, id string) (*model.Run, error) {
	return nil, sql.ErrNoRows
}
func (m *mockStore) LatestRun(ctx context.Context) (*model.Run, error) { return nil, sql.ErrNoRows }
func (m *mockStore) FinishRun(ctx context.Context, run *model.Run, verdicts []*model.Verdict) error {
	return nil
}
func (m *mockStore) MarkRunError(ctx context.Context, runID string) error { return nil }
func (m *mockStore) RunInTransaction(ctx context.Context, fn func(tx store.Store) error) error {
	return fn(m)
}
func (m *mockStore) Close() error { return nil }

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

func TestExportJSONL(t *testing.T) {
	ms := newMockStore()
	now := time.Now().UTC()
	ms.runs = []*model.Run{
		{ID: "run-done", CreatedAt: now, Status: model.RunComplete, Summary: "quiet", RequestCount: 1},
		{ID: "run-failed", CreatedAt: now.Add(-time.Hour), Status: model.RunError, RequestCount: 2},
		{ID: "run-live", CreatedAt: now.Add(-time.Minute), Status: model.RunAnalyzing},
	}
	ms.verdicts["run-done"] = []*model.Verdict{
		{RunID: "run-done", RequestID: "rq-abc", Category: model.CategoryHousekeeping, Priority: model.PriorityLow},
	}

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := nonEmptyLines(buf.String())
	// 1 header + 2 terminal runs; the analyzing run is skipped.
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), buf.String())
	}

	var h header
	if err := json.Unmarshal([]byte(lines[0]), &h); err != nil {
		t.Fatalf("decoding header: %v", err)
	}
	if h.Type != "header" || h.RunCount != 2 {
		t.Errorf("header = %+v", h)
	}

	var rec struct {
		Type string    `json:"type"`
		Data runRecord `json:"data"`
	}
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("decoding run record: %v", err)
	}
	if rec.Type != "run" || rec.Data.Run.ID != "run-done" {
		t.Errorf("first record = %+v", rec)
	}
	if len(rec.Data.Verdicts) != 1 {
		t.Errorf("verdicts = %d", len(rec.Data.Verdicts))
	}

	// Runs without verdicts still export an empty array, not null.
	if !strings.Contains(lines[2], `"verdicts":[]`) {
		t.Errorf("second record = %s", lines[2])
	}
}

func TestExportJSONLStoreError(t *testing.T) {
	ms := newMockStore()
	ms.listErr = errors.New("db down")

	var buf bytes.Buffer
	if err := ExportJSONL(context.Background(), ms, &buf); err == nil {
		t.Fatal("expected error")
	}
}

// mockDestination records calls to Write.
type mockDestination struct {
	writes atomic.Int64
	last   atomic.Value // []byte
}

func (d *mockDestination) Write(_ context.Context, data []byte) error {
	d.writes.Add(1)
	cp := make([]byte, len(data))
	copy(cp, data)
	d.last.Store(cp)
	return nil
}

func TestSchedulerStartStop(t *testing.T) {
	ms := newMockStore()
	ms.runs = []*model.Run{
		{ID: "run-done", CreatedAt: time.Now().UTC(), Status: model.RunComplete},
	}

	dest := &mockDestination{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sched := NewScheduler(ms, []Destination{dest}, 50*time.Millisecond, logger)
	sched.Start()

	// Wait for at least the initial export + one tick.
	time.Sleep(120 * time.Millisecond)
	sched.Stop()

	if writes := dest.writes.Load(); writes < 2 {
		t.Fatalf("expected at least 2 writes, got %d", writes)
	}

	data, ok := dest.last.Load().([]byte)
	if !ok || len(data) == 0 {
		t.Fatal("expected non-empty data")
	}
	// 1 header + 1 run.
	if lines := nonEmptyLines(string(data)); len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
}

func TestSchedulerStop_NoStart(t *testing.T) {
	sched := NewScheduler(newMockStore(), nil, time.Minute, nil)
	// Stop without Start should not panic.
	sched.Stop()
}

func TestSchedulerMultipleDestinations(t *testing.T) {
	ms := newMockStore()
	dest1 := &mockDestination{}
	dest2 := &mockDestination{}

	sched := NewScheduler(ms, []Destination{dest1, dest2}, time.Second, nil)
	sched.Start()

	// Wait for the initial export.
	time.Sleep(50 * time.Millisecond)
	sched.Stop()

	if dest1.writes.Load() < 1 {
		t.Fatal("dest1 expected at least 1 write")
	}
	if dest2.writes.Load() < 1 {
		t.Fatal("dest2 expected at least 1 write")
	}
}
