// Package client provides the HTTP implementation of the editor's backend
// contract. All requests carry a bearer token supplied by an injected
// auth.TokenSource.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/auth"
	"github.com/hireflow/hireflow/internal/process/model"
)

// Client talks to the process backend over its JSON REST API. Calls on the
// save path carry no client-side timeout; a slow backend simply delays the
// caller. Cancellation flows through the request context.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenSource
}

// New creates a client for the given base URL. When httpClient is nil a
// default client without a timeout is used.
func New(baseURL string, tokens auth.TokenSource, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		tokens:     tokens,
	}
}

func (c *Client) do(ctx context.Context, method, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.AccessToken()
		if err != nil {
			return fmt.Errorf("failed to obtain access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return c.readError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// readError surfaces the backend error payload's message field when
// present, otherwise a generic fallback.
func (c *Client) readError(resp *http.Response) error {
	raw, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(raw) == 0 {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}

	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return fmt.Errorf("%s (status %d)", payload.Message, resp.StatusCode)
		}
		if payload.Error != "" {
			return fmt.Errorf("%s (status %d)", payload.Error, resp.StatusCode)
		}
	}

	text := strings.TrimSpace(string(raw))
	if text == "" {
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return fmt.Errorf("%s (status %d)", text, resp.StatusCode)
}

// GetProcess fetches a process with its nodes by id.
func (c *Client) GetProcess(ctx context.Context, processID uuid.UUID) (*model.Process, error) {
	var process model.Process
	if err := c.do(ctx, http.MethodGet, "/api/processes/"+processID.String(), nil, &process); err != nil {
		return nil, err
	}
	return &process, nil
}

// CreateProcess creates a new process.
func (c *Client) CreateProcess(ctx context.Context, createReq *model.CreateProcessDTO) (*model.Process, error) {
	var process model.Process
	if err := c.do(ctx, http.MethodPost, "/api/processes", createReq, &process); err != nil {
		return nil, err
	}
	return &process, nil
}

// UpdateProcess applies a partial metadata update to a process.
func (c *Client) UpdateProcess(ctx context.Context, processID uuid.UUID, updateReq *model.UpdateProcessDTO) (*model.Process, error) {
	var process model.Process
	if err := c.do(ctx, http.MethodPut, "/api/processes/"+processID.String(), updateReq, &process); err != nil {
		return nil, err
	}
	return &process, nil
}

// CreateNode creates a node, with its linked record when the request embeds
// a create_interview or create_todo payload.
func (c *Client) CreateNode(ctx context.Context, processID uuid.UUID, createReq *model.CreateNodeDTO) (*model.Node, error) {
	var node model.Node
	path := fmt.Sprintf("/api/processes/%s/nodes", processID)
	if err := c.do(ctx, http.MethodPost, path, createReq, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// UpdateNode updates a node by id.
func (c *Client) UpdateNode(ctx context.Context, nodeID uuid.UUID, updateReq *model.UpdateNodeDTO) (*model.Node, error) {
	var node model.Node
	if err := c.do(ctx, http.MethodPut, "/api/nodes/"+nodeID.String(), updateReq, &node); err != nil {
		return nil, err
	}
	return &node, nil
}

// DeleteNode deletes a node by id.
func (c *Client) DeleteNode(ctx context.Context, nodeID uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/nodes/"+nodeID.String(), nil, nil)
}

// GetInterview fetches a single interview by id.
func (c *Client) GetInterview(ctx context.Context, interviewID uuid.UUID) (*model.Interview, error) {
	var interview model.Interview
	if err := c.do(ctx, http.MethodGet, "/api/interviews/"+interviewID.String(), nil, &interview); err != nil {
		return nil, err
	}
	return &interview, nil
}

// GetTodo fetches a single todo by id.
func (c *Client) GetTodo(ctx context.Context, todoID uuid.UUID) (*model.Todo, error) {
	var todo model.Todo
	if err := c.do(ctx, http.MethodGet, "/api/todos/"+todoID.String(), nil, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}
