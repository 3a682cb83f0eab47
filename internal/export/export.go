// Package export writes analysis results as JSONL for downstream reporting
// and ships them to one or more destinations on a schedule.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/lobbylab/frontdesk/internal/model"
	"github.com/lobbylab/frontdesk/internal/store"
)

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version   string    `json:"version"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RunCount  int       `json:"run_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// runRecord is one exported run with its verdicts embedded.
type runRecord struct {
	Run      *model.Run       `json:"run"`
	Verdicts []*model.Verdict `json:"verdicts"`
}

// ExportJSONL writes every terminal run from the store as JSONL to w, newest
// first. Runs still pending or analyzing are skipped; they have nothing
// durable to report yet.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	runs, err := s.ListRuns(ctx)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	terminal := make([]*model.Run, 0, len(runs))
	for _, run := range runs {
		if run.Status.IsTerminal() {
			terminal = append(terminal, run)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:   "1",
		Type:      "header",
		Timestamp: time.Now().UTC(),
		RunCount:  len(terminal),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, run := range terminal {
		verdicts, err := s.GetVerdicts(ctx, run.ID)
		if err != nil {
			return fmt.Errorf("get verdicts for %s: %w", run.ID, err)
		}
		if verdicts == nil {
			verdicts = []*model.Verdict{}
		}
		if err := enc.Encode(record{Type: "run", Data: runRecord{Run: run, Verdicts: verdicts}}); err != nil {
			return fmt.Errorf("encode run %s: %w", run.ID, err)
		}
	}

	return nil
}
