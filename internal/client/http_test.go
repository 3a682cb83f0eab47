package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lobbylab/frontdesk/internal/model"
)

func TestCreateRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/requests" {
			t.Errorf("got %s %s", r.Method, r.URL.Path)
		}
		var in CreateRequestsRequest
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if len(in.Requests) != 1 || in.Requests[0].Title != "Extra towels" {
			t.Errorf("body = %+v", in)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"requests": []*model.Request{{ID: "rq-abc", Title: "Extra towels"}},
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	reqs, err := c.CreateRequests(context.Background(), &CreateRequestsRequest{
		Requests: []CreateRequestItem{{Title: "Extra towels", Description: "Room 204"}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reqs) != 1 || reqs[0].ID != "rq-abc" {
		t.Fatalf("got %+v", reqs)
	}
}

func TestListRequestsQuery(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("ids") != "rq-a,rq-b" || q.Get("search") != "towels" || q.Get("limit") != "5" {
			t.Errorf("query = %v", q)
		}
		json.NewEncoder(w).Encode(ListRequestsResponse{Total: 2})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	resp, err := c.ListRequests(context.Background(), &ListRequestsRequest{
		IDs: []string{"rq-a", "rq-b"}, Search: "towels", Limit: 5,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Total != 2 {
		t.Errorf("total = %d", resp.Total)
	}
}

func TestAnalyzeAndPoll(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/analyze":
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(AnalyzeResponse{RunID: "run-abc", Status: model.RunPending})
		case "/v1/runs/run-abc":
			json.NewEncoder(w).Encode(RunResponse{
				Run:      &model.Run{ID: "run-abc", Status: model.RunComplete, Summary: "done"},
				Verdicts: []*model.Verdict{{RequestID: "rq-a", Category: model.CategoryBilling, Priority: model.PriorityMedium}},
			})
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	started, err := c.Analyze(context.Background(), nil)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if started.RunID != "run-abc" || started.Status != model.RunPending {
		t.Fatalf("got %+v", started)
	}

	polled, err := c.GetRun(context.Background(), started.RunID)
	if err != nil {
		t.Fatalf("poll: %v", err)
	}
	if polled.Run.Status != model.RunComplete || len(polled.Verdicts) != 1 {
		t.Fatalf("got %+v", polled)
	}
}

func TestDeleteRequestNoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Errorf("method = %s", r.Method)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	if err := c.DeleteRequest(context.Background(), "rq-abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "request not found"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	_, err := c.GetRequest(context.Background(), "rq-missing")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound || apiErr.Message != "request not found" {
		t.Errorf("got %+v", apiErr)
	}
}

func TestAuthHeaderSet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sekrit" {
			t.Errorf("authorization = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "sekrit")
	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q", status)
	}
}
