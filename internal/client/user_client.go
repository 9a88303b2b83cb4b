package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserClient defines the interface for the user directory service
type UserClient interface {
	UserExists(ctx context.Context, userID uuid.UUID) (bool, error)
}

// userClient implements UserClient over HTTP
type userClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewUserClient creates a new user directory client
func NewUserClient(baseURL string, logger *zap.Logger) UserClient {
	return &userClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// UserExists asks the user service whether a user account exists. A 404
// means the user does not exist; any other non-success status is an
// upstream failure the caller should surface.
func (c *userClient) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	url := fmt.Sprintf("%s/api/users/%s", c.baseURL, userID.String())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("user lookup request failed",
			zap.String("user_id", userID.String()),
			zap.Error(err))
		return false, fmt.Errorf("user service unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return true, nil
	default:
		c.logger.Warn("user service returned non-success status",
			zap.String("user_id", userID.String()),
			zap.Int("status_code", resp.StatusCode))
		return false, fmt.Errorf("user service returned status %d", resp.StatusCode)
	}
}

// NoOpUserClient treats every user as existing, for deployments without a
// user directory configured
type NoOpUserClient struct{}

// NewNoOpUserClient creates a no-op user directory client
func NewNoOpUserClient() UserClient {
	return &NoOpUserClient{}
}

// UserExists always reports the user as present
func (c *NoOpUserClient) UserExists(ctx context.Context, userID uuid.UUID) (bool, error) {
	return true, nil
}
