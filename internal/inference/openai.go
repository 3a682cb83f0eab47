package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lobbylab/frontdesk/internal/model"
)

const (
	defaultModel       = "gpt-4o-mini"
	defaultTemperature = 0.3
)

const classifyPromptTemplate = `You are a hotel operations AI assistant. Analyze this guest request and route it to the appropriate department.

Request: %s
Details: %s

Consider:
1. Which hotel department should handle this (room_service, maintenance, housekeeping, front_desk, concierge, billing, noise_complaint, amenities, vip_urgent, or other)
2. Priority level based on guest impact and urgency (VIP mentions, safety issues, or time-sensitive requests = high)
3. Brief notes on recommended handling approach`

const summarizePromptTemplate = `You are a hotel operations manager reviewing guest requests. Generate a brief executive summary highlighting:
- Department workload distribution
- High-priority items needing immediate attention
- Any patterns or recurring issues
- Recommended staffing adjustments if needed

Analyzed Requests:
%s

Keep it concise - 2-3 short paragraphs max.`

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string          `json:"model"`
	Messages       []chatMessage   `json:"messages"`
	Temperature    float64         `json:"temperature"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
}

type responseFormat struct {
	Type       string      `json:"type"`
	JSONSchema *jsonSchema `json:"json_schema,omitempty"`
}

type jsonSchema struct {
	Name   string          `json:"name"`
	Strict bool            `json:"strict"`
	Schema json.RawMessage `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message      chatMessage `json:"message"`
		FinishReason string      `json:"finish_reason"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// classificationSchema constrains the model output to valid category and
// priority values so a decoded Classification never needs repair.
var classificationSchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"category": {
			"type": "string",
			"enum": ["room_service", "maintenance", "housekeeping", "front_desk", "concierge", "billing", "noise_complaint", "amenities", "vip_urgent", "other"],
			"description": "The hotel department best suited to handle this request"
		},
		"priority": {
			"type": "string",
			"enum": ["low", "medium", "high"],
			"description": "Priority based on guest impact, safety concerns, and urgency"
		},
		"notes": {
			"type": "string",
			"description": "Brief analysis and recommended action for staff"
		}
	},
	"required": ["category", "priority", "notes"],
	"additionalProperties": false
}`)

var summarySchema = json.RawMessage(`{
	"type": "object",
	"properties": {
		"summary": {
			"type": "string",
			"description": "Executive summary of guest requests with department routing insights"
		}
	},
	"required": ["summary"],
	"additionalProperties": false
}`)

// OpenAIClient implements Client against any OpenAI-compatible
// chat completions endpoint.
type OpenAIClient struct {
	baseURL string
	apiKey  string
	model   string
	http    *http.Client
}

var _ Client = (*OpenAIClient)(nil)

// NewOpenAIClient creates a client for the chat completions API at baseURL
// (e.g. "https://api.openai.com/v1"). An empty model falls back to
// gpt-4o-mini.
func NewOpenAIClient(baseURL, apiKey, chatModel string, timeout time.Duration) *OpenAIClient {
	if chatModel == "" {
		chatModel = defaultModel
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &OpenAIClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   chatModel,
		http:    &http.Client{Timeout: timeout},
	}
}

func (c *OpenAIClient) Classify(ctx context.Context, req *model.Request) (*Classification, error) {
	prompt := fmt.Sprintf(classifyPromptTemplate, req.Title, req.Description)

	content, err := c.chat(ctx, prompt, &responseFormat{
		Type: "json_schema",
		JSONSchema: &jsonSchema{
			Name:   "request_classification",
			Strict: true,
			Schema: classificationSchema,
		},
	})
	if err != nil {
		return nil, &ClassifyError{RequestID: req.ID, Err: err}
	}

	var cls Classification
	if err := json.Unmarshal([]byte(content), &cls); err != nil {
		return nil, &ClassifyError{RequestID: req.ID, Err: fmt.Errorf("decode classification: %w", err)}
	}
	if !cls.Category.IsValid() {
		return nil, &ClassifyError{RequestID: req.ID, Err: fmt.Errorf("unknown category %q", cls.Category)}
	}
	if !cls.Priority.IsValid() {
		return nil, &ClassifyError{RequestID: req.ID, Err: fmt.Errorf("unknown priority %q", cls.Priority)}
	}
	return &cls, nil
}

func (c *OpenAIClient) Summarize(ctx context.Context, digest string) (string, error) {
	prompt := fmt.Sprintf(summarizePromptTemplate, digest)

	content, err := c.chat(ctx, prompt, &responseFormat{
		Type: "json_schema",
		JSONSchema: &jsonSchema{
			Name:   "run_summary",
			Strict: true,
			Schema: summarySchema,
		},
	})
	if err != nil {
		return "", &SummarizeError{Err: err}
	}

	var out struct {
		Summary string `json:"summary"`
	}
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return "", &SummarizeError{Err: fmt.Errorf("decode summary: %w", err)}
	}
	if strings.TrimSpace(out.Summary) == "" {
		return "", &SummarizeError{Err: fmt.Errorf("summary empty")}
	}
	return out.Summary, nil
}

func (c *OpenAIClient) chat(ctx context.Context, prompt string, format *responseFormat) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model:          c.model,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    defaultTemperature,
		ResponseFormat: format,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	var decoded chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decode response (status %s): %w", resp.Status, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded.Error != nil {
			return "", fmt.Errorf("status %s: %s", resp.Status, decoded.Error.Message)
		}
		return "", fmt.Errorf("status %s", resp.Status)
	}
	if len(decoded.Choices) == 0 {
		return "", fmt.Errorf("response missing choices")
	}
	content := decoded.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("response empty")
	}
	return content, nil
}
