package server

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lobbylab/frontdesk/internal/model"
)

type analyzeInput struct {
	RequestIDs []string `json:"request_ids"`
}

// handleAnalyze handles POST /v1/analyze. The run is recorded as pending
// and executes in the background; the caller polls GET /v1/runs/{id}.
// An empty or absent request_ids analyzes every stored request.
func (s *FrontdeskServer) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var in analyzeInput
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	run, err := s.launcher.StartRun(r.Context(), in.RequestIDs)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to start run")
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"run_id": run.ID,
		"status": run.Status,
	})
}

// handleGetRun handles GET /v1/runs/{id}, the poll surface. The response
// carries the run and its verdicts joined to request data; polling is
// read-only and repeatable.
func (s *FrontdeskServer) handleGetRun(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	run, err := s.store.GetRun(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "run not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get run")
		return
	}

	s.writeRun(w, r, run)
}

// handleLatestRun handles GET /v1/runs/latest.
func (s *FrontdeskServer) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.store.LatestRun(r.Context())
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "no runs yet")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get latest run")
		return
	}

	s.writeRun(w, r, run)
}

func (s *FrontdeskServer) writeRun(w http.ResponseWriter, r *http.Request, run *model.Run) {
	verdicts, err := s.store.GetVerdicts(r.Context(), run.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get verdicts")
		return
	}

	// Ensure verdicts is never null in JSON output.
	if verdicts == nil {
		verdicts = []*model.Verdict{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run":      run,
		"verdicts": verdicts,
	})
}
