package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/lobbylab/frontdesk/internal/model"
)

// HTTPClient implements FrontdeskClient using the HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

var _ FrontdeskClient = (*HTTPClient)(nil)

// --- Request CRUD ---

func (c *HTTPClient) CreateRequests(ctx context.Context, req *CreateRequestsRequest) ([]*model.Request, error) {
	var resp struct {
		Requests []*model.Request `json:"requests"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/v1/requests", req, &resp); err != nil {
		return nil, err
	}
	return resp.Requests, nil
}

func (c *HTTPClient) GetRequest(ctx context.Context, id string) (*model.Request, error) {
	var req model.Request
	if err := c.doJSON(ctx, http.MethodGet, "/v1/requests/"+url.PathEscape(id), nil, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

func (c *HTTPClient) ListRequests(ctx context.Context, req *ListRequestsRequest) (*ListRequestsResponse, error) {
	q := url.Values{}
	if len(req.IDs) > 0 {
		q.Set("ids", strings.Join(req.IDs, ","))
	}
	if req.Search != "" {
		q.Set("search", req.Search)
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/requests"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListRequestsResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) UpdateRequest(ctx context.Context, id string, req *UpdateRequestRequest) (*model.Request, error) {
	var out model.Request
	if err := c.doJSON(ctx, http.MethodPatch, "/v1/requests/"+url.PathEscape(id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DeleteRequest(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "/v1/requests/"+url.PathEscape(id), nil, nil)
}

// --- Analysis ---

func (c *HTTPClient) Analyze(ctx context.Context, requestIDs []string) (*AnalyzeResponse, error) {
	body := map[string]any{}
	if len(requestIDs) > 0 {
		body["request_ids"] = requestIDs
	}
	var resp AnalyzeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/v1/analyze", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) GetRun(ctx context.Context, id string) (*RunResponse, error) {
	var resp RunResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/runs/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) LatestRun(ctx context.Context) (*RunResponse, error) {
	var resp RunResponse
	if err := c.doJSON(ctx, http.MethodGet, "/v1/runs/latest", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// --- internal helpers ---

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for DELETE/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
