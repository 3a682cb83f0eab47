package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lobbylab/frontdesk/internal/model"
)

// chatHandler returns an OpenAI-style chat completion response whose message
// content is the given JSON payload.
func chatHandler(t *testing.T, content string, capture *chatRequest) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %q", r.Method)
		}
		if capture != nil {
			if err := json.NewDecoder(r.Body).Decode(capture); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{
					"message":       map[string]string{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}
}

func TestClassify(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(chatHandler(t,
		`{"category":"maintenance","priority":"high","notes":"Dispatch engineering to room 317."}`,
		&captured))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-key", "gpt-4o-mini", 5*time.Second)
	cls, err := c.Classify(context.Background(), &model.Request{
		ID: "rq-test1", Title: "Faucet leak in 317", Description: "Water pooling under sink",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cls.Category != model.CategoryMaintenance {
		t.Errorf("Category = %q", cls.Category)
	}
	if cls.Priority != model.PriorityHigh {
		t.Errorf("Priority = %q", cls.Priority)
	}
	if cls.Notes != "Dispatch engineering to room 317." {
		t.Errorf("Notes = %q", cls.Notes)
	}

	// Request shape checks.
	if captured.Model != "gpt-4o-mini" {
		t.Errorf("model = %q", captured.Model)
	}
	if captured.Temperature != 0.3 {
		t.Errorf("temperature = %v", captured.Temperature)
	}
	if captured.ResponseFormat == nil || captured.ResponseFormat.Type != "json_schema" {
		t.Errorf("response_format = %+v", captured.ResponseFormat)
	}
	if len(captured.Messages) != 1 {
		t.Fatalf("messages = %d", len(captured.Messages))
	}
	if !strings.Contains(captured.Messages[0].Content, "Faucet leak in 317") {
		t.Errorf("prompt missing request title: %q", captured.Messages[0].Content)
	}
}

func TestClassifyInvalidCategory(t *testing.T) {
	srv := httptest.NewServer(chatHandler(t,
		`{"category":"spa_services","priority":"low","notes":""}`, nil))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-key", "", 5*time.Second)
	_, err := c.Classify(context.Background(), &model.Request{ID: "rq-test1", Title: "x"})
	if err == nil {
		t.Fatal("expected error for unknown category")
	}
	var ce *ClassifyError
	if !errors.As(err, &ce) {
		t.Fatalf("expected ClassifyError, got %T", err)
	}
	if ce.RequestID != "rq-test1" {
		t.Errorf("RequestID = %q", ce.RequestID)
	}
}

func TestClassifyServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "overloaded", "type": "server_error"},
		})
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-key", "", 5*time.Second)
	_, err := c.Classify(context.Background(), &model.Request{ID: "rq-test1", Title: "x"})
	if err == nil || !strings.Contains(err.Error(), "overloaded") {
		t.Fatalf("expected server error message, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	var captured chatRequest
	srv := httptest.NewServer(chatHandler(t,
		`{"summary":"Maintenance carries the heaviest load tonight."}`, &captured))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-key", "", 5*time.Second)
	digest := "- [HIGH] [maintenance] Faucet leak in 317: Dispatch engineering."
	summary, err := c.Summarize(context.Background(), digest)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "Maintenance carries the heaviest load tonight." {
		t.Errorf("summary = %q", summary)
	}
	if !strings.Contains(captured.Messages[0].Content, digest) {
		t.Errorf("prompt missing digest: %q", captured.Messages[0].Content)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	srv := httptest.NewServer(chatHandler(t, `{"summary":"   "}`, nil))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-key", "", 5*time.Second)
	_, err := c.Summarize(context.Background(), "- [LOW] [other] x: y")
	var se *SummarizeError
	if !errors.As(err, &se) {
		t.Fatalf("expected SummarizeError, got %v", err)
	}
}

func TestChatMissingChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-key", "", 5*time.Second)
	_, err := c.Summarize(context.Background(), "digest")
	if err == nil || !strings.Contains(err.Error(), "missing choices") {
		t.Fatalf("expected missing choices error, got %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	c := NewOpenAIClient(srv.URL, "test-key", "", 5*time.Second)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Classify(ctx, &model.Request{ID: "rq-test1", Title: "x"})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
