package server

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/lobbylab/frontdesk/internal/events"
	"github.com/lobbylab/frontdesk/internal/idgen"
	"github.com/lobbylab/frontdesk/internal/model"
)

type createRequestInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type createRequestsInput struct {
	Requests []createRequestInput `json:"requests"`
}

// handleCreateRequests handles POST /v1/requests (bulk create).
func (s *FrontdeskServer) handleCreateRequests(w http.ResponseWriter, r *http.Request) {
	var in createRequestsInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	reqs, err := s.createRequests(r.Context(), in)
	if err != nil {
		var ie inputError
		if errors.As(err, &ie) {
			writeError(w, http.StatusBadRequest, ie.Error())
		} else {
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{"requests": reqs})
}

func (s *FrontdeskServer) createRequests(ctx context.Context, in createRequestsInput) ([]*model.Request, error) {
	if len(in.Requests) == 0 {
		return nil, inputError("requests is required")
	}

	now := time.Now().UTC()
	reqs := make([]*model.Request, 0, len(in.Requests))
	for i, item := range in.Requests {
		if strings.TrimSpace(item.Title) == "" {
			return nil, inputError(fmt.Sprintf("requests[%d]: title is required", i))
		}
		if strings.TrimSpace(item.Description) == "" {
			return nil, inputError(fmt.Sprintf("requests[%d]: description is required", i))
		}
		id, err := idgen.NewRequestID()
		if err != nil {
			return nil, fmt.Errorf("generate id: %w", err)
		}
		reqs = append(reqs, &model.Request{
			ID:          id,
			Title:       item.Title,
			Description: item.Description,
			CreatedAt:   now,
		})
	}

	if err := s.store.CreateRequests(ctx, reqs); err != nil {
		return nil, fmt.Errorf("create requests: %w", err)
	}

	for _, req := range reqs {
		s.publish(ctx, events.TopicRequestCreated, events.RequestCreated{Request: req})
	}

	return reqs, nil
}

// handleListRequests handles GET /v1/requests.
func (s *FrontdeskServer) handleListRequests(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.RequestFilter{
		Search: q.Get("search"),
	}

	if v := q.Get("ids"); v != "" {
		filter.IDs = strings.Split(v, ",")
	}
	if v := q.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Limit = n
		}
	}
	if v := q.Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filter.Offset = n
		}
	}

	reqs, total, err := s.store.ListRequests(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list requests")
		return
	}

	// Ensure requests is never null in JSON output.
	if reqs == nil {
		reqs = []*model.Request{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"requests": reqs,
		"total":    total,
	})
}

// handleGetRequest handles GET /v1/requests/{id}.
func (s *FrontdeskServer) handleGetRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	req, err := s.store.GetRequest(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get request")
		return
	}

	writeJSON(w, http.StatusOK, req)
}

type updateRequestInput struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// handleUpdateRequest handles PATCH /v1/requests/{id}.
func (s *FrontdeskServer) handleUpdateRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	var in updateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	req, err := s.store.GetRequest(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		writeError(w, http.StatusNotFound, "request not found")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to get request")
		return
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			writeError(w, http.StatusBadRequest, "title cannot be empty")
			return
		}
		req.Title = *in.Title
	}
	if in.Description != nil {
		if strings.TrimSpace(*in.Description) == "" {
			writeError(w, http.StatusBadRequest, "description cannot be empty")
			return
		}
		req.Description = *in.Description
	}

	if err := s.store.UpdateRequest(r.Context(), req); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "request not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to update request")
		return
	}

	writeJSON(w, http.StatusOK, req)
}

// handleDeleteRequest handles DELETE /v1/requests/{id}. Deleting a request
// cascades to its verdicts.
func (s *FrontdeskServer) handleDeleteRequest(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}

	if err := s.store.DeleteRequest(r.Context(), id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			writeError(w, http.StatusNotFound, "request not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to delete request")
		return
	}

	s.publish(r.Context(), events.TopicRequestDeleted, events.RequestDeleted{RequestID: id})

	w.WriteHeader(http.StatusNoContent)
}
