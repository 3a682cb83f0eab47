package pipeline

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/lobbylab/frontdesk/internal/inference"
	"github.com/lobbylab/frontdesk/internal/model"
)

// recordingPublisher captures published events for assertions.
type recordingPublisher struct {
	mu     sync.Mutex
	topics []string
}

func (p *recordingPublisher) Publish(ctx context.Context, topic string, event any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.topics...)
}

// waitFor polls cond until it returns true or the deadline passes.
func waitFor(t *testing.T, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal(msg)
}

func TestStartRunReturnsPendingRun(t *testing.T) {
	var created *model.Run
	st := &mockStore{
		listRequestsFn: listReturning(nil),
		createRunFn: func(ctx context.Context, run *model.Run) error {
			created = run
			return nil
		},
	}
	pub := &recordingPublisher{}
	l := NewLauncher(st, New(st, &mockInference{}, 0, nil), pub, nil)

	run, err := l.StartRun(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if run.Status != model.RunPending {
		t.Errorf("status = %q, want pending", run.Status)
	}
	if !strings.HasPrefix(run.ID, "run-") {
		t.Errorf("run ID = %q", run.ID)
	}
	if created == nil || created.ID != run.ID {
		t.Error("run row not created before return")
	}
	if run.RequestCount != 0 {
		t.Errorf("request count = %d, want 0 at start", run.RequestCount)
	}

	waitFor(t, func() bool {
		r, _ := st.persisted()
		return r != nil
	}, "pipeline never persisted the run")
}

func TestStartRunCreateFailure(t *testing.T) {
	boom := errors.New("db down")
	st := &mockStore{
		createRunFn: func(ctx context.Context, run *model.Run) error { return boom },
	}
	l := NewLauncher(st, New(st, &mockInference{}, 0, nil), nil, nil)

	if _, err := l.StartRun(context.Background(), nil); !errors.Is(err, boom) {
		t.Fatalf("expected create error, got %v", err)
	}
}

func TestStartRunPublishesLifecycleEvents(t *testing.T) {
	st := &mockStore{listRequestsFn: listReturning(fixedRequests(2))}
	pub := &recordingPublisher{}
	l := NewLauncher(st, New(st, &mockInference{}, 0, nil), pub, nil)

	if _, err := l.StartRun(context.Background(), nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, func() bool {
		topics := pub.published()
		return len(topics) >= 2
	}, "lifecycle events never published")

	topics := pub.published()
	if topics[0] != "frontdesk.run.started" {
		t.Errorf("first topic = %q", topics[0])
	}
	if topics[len(topics)-1] != "frontdesk.run.finished" {
		t.Errorf("last topic = %q", topics[len(topics)-1])
	}
}

func TestSupervisePersistFailureMarksError(t *testing.T) {
	boom := errors.New("disk full")
	st := &mockStore{
		listRequestsFn: listReturning(fixedRequests(1)),
		finishRunFn: func(ctx context.Context, run *model.Run, verdicts []*model.Verdict) error {
			return boom
		},
	}
	l := NewLauncher(st, New(st, &mockInference{}, 0, nil), nil, nil)

	run, err := l.StartRun(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, func() bool {
		st.mu.Lock()
		defer st.mu.Unlock()
		return len(st.markedError) == 1 && st.markedError[0] == run.ID
	}, "run never marked error after persist failure")
}

func TestSupervisePanicMarksError(t *testing.T) {
	st := &mockStore{listRequestsFn: listReturning(fixedRequests(1))}
	inf := &mockInference{
		classifyFn: func(ctx context.Context, req *model.Request) (*inference.Classification, error) {
			panic("boom")
		},
	}
	l := NewLauncher(st, New(st, inf, 0, nil), nil, nil)

	run, err := l.StartRun(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	waitFor(t, func() bool {
		st.mu.Lock()
		defer st.mu.Unlock()
		return len(st.markedError) == 1 && st.markedError[0] == run.ID
	}, "run never marked error after panic")
}
