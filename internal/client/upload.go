package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/hireflow/hireflow/internal/attachments"
	"github.com/hireflow/hireflow/internal/auth"
)

// DefaultUploadTimeout bounds attachment uploads. Unlike the save path,
// uploads use a hard client-side timeout so a stalled transfer fails
// instead of hanging.
const DefaultUploadTimeout = 60 * time.Second

// UploadClient sends candidate attachments to the backend.
type UploadClient struct {
	baseURL    string
	httpClient *http.Client
	tokens     auth.TokenSource
}

func NewUploadClient(baseURL string, tokens auth.TokenSource) *UploadClient {
	return &UploadClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: DefaultUploadTimeout},
		tokens:     tokens,
	}
}

// UploadAttachment uploads a candidate file for a process and returns the
// recorded metadata.
func (c *UploadClient) UploadAttachment(ctx context.Context, processID uuid.UUID, candidateEmail, filename string, content io.Reader) (*attachments.Attachment, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("candidate_email", candidateEmail); err != nil {
		return nil, fmt.Errorf("failed to write form field: %w", err)
	}
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("failed to copy file content: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize form: %w", err)
	}

	url := fmt.Sprintf("%s/api/processes/%s/attachments", c.baseURL, processID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	if c.tokens != nil {
		token, err := c.tokens.AccessToken()
		if err != nil {
			return nil, fmt.Errorf("failed to obtain access token: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return nil, fmt.Errorf("upload failed with status %d", resp.StatusCode)
		}
		return nil, fmt.Errorf("%s (status %d)", text, resp.StatusCode)
	}

	var attachment attachments.Attachment
	if err := json.NewDecoder(resp.Body).Decode(&attachment); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}
	return &attachment, nil
}
