package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"workpanel-api/internal/metrics"
)

// SuggestRequest is the payload sent to the tag suggestion service
type SuggestRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// SuggestResponse is the payload returned by the tag suggestion service
type SuggestResponse struct {
	Tags []string `json:"tags"`
}

// SuggestClient defines the interface for the tag suggestion service
type SuggestClient interface {
	SuggestTags(ctx context.Context, title, description string) ([]string, error)
}

// suggestClient implements SuggestClient over HTTP
type suggestClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *zap.Logger
	metrics    *metrics.Metrics
}

// NewSuggestClient creates a new tag suggestion client
func NewSuggestClient(baseURL, apiKey string, timeout time.Duration, logger *zap.Logger, m *metrics.Metrics) SuggestClient {
	return &suggestClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger:  logger,
		metrics: m,
	}
}

// SuggestTags asks the suggestion service for tags matching a task title and
// description. Unlike activity and notification fan-out this is a read the
// caller is waiting on, so upstream failures are returned, not swallowed.
func (c *suggestClient) SuggestTags(ctx context.Context, title, description string) ([]string, error) {
	url := fmt.Sprintf("%s/api/suggest/tags", c.baseURL)

	jsonBody, err := json.Marshal(SuggestRequest{Title: title, Description: description})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal suggest request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Internal-API-Key", c.apiKey)

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	statusCode := 0
	if resp != nil {
		statusCode = resp.StatusCode
	}
	if c.metrics != nil {
		c.metrics.RecordExternalAPICall(url, "POST", statusCode, duration, err)
	}

	if err != nil {
		c.logger.Warn("tag suggestion request failed",
			zap.Error(err),
			zap.Duration("duration", duration))
		return nil, fmt.Errorf("suggestion service unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("tag suggestion service returned non-success status",
			zap.Int("status_code", resp.StatusCode),
			zap.Duration("duration", duration))
		return nil, fmt.Errorf("suggestion service returned status %d", resp.StatusCode)
	}

	var suggestResp SuggestResponse
	if err := json.NewDecoder(resp.Body).Decode(&suggestResp); err != nil {
		return nil, fmt.Errorf("failed to decode suggest response: %w", err)
	}
	return suggestResp.Tags, nil
}

// NoOpSuggestClient returns no suggestions, for deployments without the
// suggestion service configured
type NoOpSuggestClient struct{}

// NewNoOpSuggestClient creates a no-op suggestion client
func NewNoOpSuggestClient() SuggestClient {
	return &NoOpSuggestClient{}
}

// SuggestTags always returns an empty suggestion list
func (c *NoOpSuggestClient) SuggestTags(ctx context.Context, title, description string) ([]string, error) {
	return []string{}, nil
}
