package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// WorkflowService forwards chat messages to the external workflow API. The
// remote contract is opaque: we send {"message": ...} and relay whatever
// text comes back.
type WorkflowService interface {
	SendMessage(ctx context.Context, message string) (string, error)
}

type workflowService struct {
	url    string
	apiKey string
	client *http.Client
}

func NewWorkflowService(url, apiKey string, timeout time.Duration) WorkflowService {
	return &workflowService{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{Timeout: timeout},
	}
}

// SendMessage implements WorkflowService.
func (w *workflowService) SendMessage(ctx context.Context, message string) (string, error) {
	if w.url == "" {
		return "", fmt.Errorf("workflow API URL is not configured")
	}

	body, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if w.apiKey != "" {
		req.Header.Set("x-api-key", w.apiKey)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("workflow API call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("workflow API call failed: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read workflow response: %w", err)
	}

	// Prefer a {"reply": ...} field when present, otherwise relay the raw
	// body.
	var parsed struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil && parsed.Reply != "" {
		return parsed.Reply, nil
	}
	return string(raw), nil
}
