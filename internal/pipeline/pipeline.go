// Package pipeline runs the analysis over a batch of guest requests:
// fetch the batch, classify each request in parallel, generate an
// aggregate summary, and persist everything against the run in one write.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/lobbylab/frontdesk/internal/inference"
	"github.com/lobbylab/frontdesk/internal/model"
	"github.com/lobbylab/frontdesk/internal/store"
)

// NoRequestsSummary is recorded when an analysis is started over an empty
// batch. The classifier and summarizer are never invoked in that case.
const NoRequestsSummary = "No requests found to analyze."

// SummaryFailedPlaceholder is recorded when summary generation fails after
// classification succeeded. The verdicts are kept.
const SummaryFailedPlaceholder = "Failed to generate summary"

// minSummarizeCount is the smallest batch that gets an aggregate summary.
// A single classified request carries its own notes already.
const minSummarizeCount = 2

// stage identifies a step of the run state machine.
type stage int

const (
	stageStart stage = iota
	stageFetch
	stageNoRequests
	stageClassify
	stageSummarize
	stageSkipSummary
	stagePersist
	stageDone
)

func (s stage) String() string {
	switch s {
	case stageStart:
		return "start"
	case stageFetch:
		return "fetch"
	case stageNoRequests:
		return "no_requests"
	case stageClassify:
		return "classify"
	case stageSummarize:
		return "summarize"
	case stageSkipSummary:
		return "skip_summary"
	case stagePersist:
		return "persist"
	case stageDone:
		return "done"
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Pipeline executes analysis runs against a store and an inference client.
type Pipeline struct {
	store     store.Store
	inference inference.Client

	// concurrency caps the classification fan-out. 0 means one goroutine
	// per request with no cap.
	concurrency int

	logger *slog.Logger
}

// New creates a Pipeline. A nil logger falls back to slog.Default().
func New(st store.Store, inf inference.Client, concurrency int, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{store: st, inference: inf, concurrency: concurrency, logger: logger}
}

// Execute drives one run through the state machine until it persists.
// Stage failures degrade the run (status error) but still reach the persist
// stage; only a persist failure is returned to the caller.
func (p *Pipeline) Execute(ctx context.Context, runID string, requestIDs []string) error {
	st := &runState{
		runID:      runID,
		requestIDs: requestIDs,
		status:     model.RunAnalyzing,
	}

	cur := stageStart
	for cur != stageDone {
		p.logger.Debug("pipeline stage", "run", runID, "stage", cur.String())

		switch cur {
		case stageStart:
			cur = stageFetch

		case stageFetch:
			merge(st, p.fetch(ctx, st))
			switch {
			case st.status == model.RunError:
				cur = stagePersist
			case len(st.requests) == 0:
				cur = stageNoRequests
			default:
				cur = stageClassify
			}

		case stageNoRequests:
			merge(st, stateDelta{
				summary: summaryDelta(NoRequestsSummary),
				status:  statusDelta(model.RunComplete),
			})
			cur = stagePersist

		case stageClassify:
			merge(st, p.classify(ctx, st))
			switch {
			case st.status == model.RunError:
				cur = stagePersist
			case len(st.verdicts) < minSummarizeCount:
				cur = stageSkipSummary
			default:
				cur = stageSummarize
			}

		case stageSkipSummary:
			merge(st, stateDelta{status: statusDelta(model.RunComplete)})
			cur = stagePersist

		case stageSummarize:
			merge(st, p.summarize(ctx, st))
			cur = stagePersist

		case stagePersist:
			if err := p.persist(ctx, st); err != nil {
				return err
			}
			cur = stageDone
		}
	}

	return nil
}

// fetch loads the run's batch: the requests named by requestIDs, or every
// request when no IDs were given.
func (p *Pipeline) fetch(ctx context.Context, st *runState) stateDelta {
	filter := model.RequestFilter{IDs: st.requestIDs}
	reqs, _, err := p.store.ListRequests(ctx, filter)
	if err != nil {
		p.logger.Error("fetch requests failed", "run", st.runID, "err", err)
		return stateDelta{
			requests: requestsDelta(nil),
			status:   statusDelta(model.RunError),
		}
	}
	return stateDelta{requests: requestsDelta(reqs)}
}

// classify fans out one inference call per request and joins the results
// positionally: verdicts[i] belongs to requests[i]. The join is
// all-or-nothing; if any call fails the whole batch is discarded and the
// run degrades to error with zero verdicts.
func (p *Pipeline) classify(ctx context.Context, st *runState) stateDelta {
	verdicts := make([]*model.Verdict, len(st.requests))

	g, gctx := errgroup.WithContext(ctx)
	if p.concurrency > 0 {
		g.SetLimit(p.concurrency)
	}
	for i, req := range st.requests {
		g.Go(func() error {
			cls, err := p.inference.Classify(gctx, req)
			if err != nil {
				return err
			}
			verdicts[i] = &model.Verdict{
				RunID:     st.runID,
				RequestID: req.ID,
				Category:  cls.Category,
				Priority:  cls.Priority,
				Notes:     cls.Notes,
				Request:   req,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		p.logger.Error("classification failed", "run", st.runID, "err", err)
		return stateDelta{
			verdicts: verdictsDelta([]*model.Verdict{}),
			status:   statusDelta(model.RunError),
		}
	}

	return stateDelta{verdicts: verdictsDelta(verdicts)}
}

// summarize renders the digest in input order and makes one summary call.
// On failure the run degrades to error but keeps its verdicts, recording
// the placeholder summary instead.
func (p *Pipeline) summarize(ctx context.Context, st *runState) stateDelta {
	summary, err := p.inference.Summarize(ctx, renderDigest(st.verdicts))
	if err != nil {
		p.logger.Error("summary generation failed", "run", st.runID, "err", err)
		return stateDelta{
			summary: summaryDelta(SummaryFailedPlaceholder),
			status:  statusDelta(model.RunError),
		}
	}
	return stateDelta{
		summary: summaryDelta(summary),
		status:  statusDelta(model.RunComplete),
	}
}

// persist commits the run outcome in a single transactional write.
func (p *Pipeline) persist(ctx context.Context, st *runState) error {
	run := &model.Run{
		ID:           st.runID,
		Summary:      st.summary,
		Status:       st.status,
		RequestCount: len(st.requests),
	}
	if err := p.store.FinishRun(ctx, run, st.verdicts); err != nil {
		return fmt.Errorf("persist run %s: %w", st.runID, err)
	}
	return nil
}

// renderDigest formats classified requests for the summary prompt, one
// "- [PRIORITY] [category] title: notes" line per verdict, in input order.
func renderDigest(verdicts []*model.Verdict) string {
	lines := make([]string, len(verdicts))
	for i, v := range verdicts {
		title := ""
		if v.Request != nil {
			title = v.Request.Title
		}
		lines[i] = fmt.Sprintf("- [%s] [%s] %s: %s",
			strings.ToUpper(v.Priority.String()), v.Category, title, v.Notes)
	}
	return strings.Join(lines, "\n")
}
