package pipeline

import "github.com/lobbylab/frontdesk/internal/model"

// runState is the accumulated state of one pipeline execution. It is owned
// by a single goroutine; stages never mutate it directly, they return a
// stateDelta that the control loop merges.
type runState struct {
	runID      string
	requestIDs []string
	requests   []*model.Request
	verdicts   []*model.Verdict
	summary    string
	status     model.RunStatus
}

// stateDelta is a partial update to runState. Nil fields are left untouched
// by merge, so a stage only ever touches the fields it owns.
type stateDelta struct {
	requests *[]*model.Request
	verdicts *[]*model.Verdict
	summary  *string
	status   *model.RunStatus
}

// merge applies the populated fields of delta onto st.
func merge(st *runState, delta stateDelta) {
	if delta.requests != nil {
		st.requests = *delta.requests
	}
	if delta.verdicts != nil {
		st.verdicts = *delta.verdicts
	}
	if delta.summary != nil {
		st.summary = *delta.summary
	}
	if delta.status != nil {
		st.status = *delta.status
	}
}

func requestsDelta(reqs []*model.Request) *[]*model.Request { return &reqs }

func verdictsDelta(vs []*model.Verdict) *[]*model.Verdict { return &vs }

func summaryDelta(s string) *string { return &s }

func statusDelta(s model.RunStatus) *model.RunStatus { return &s }
