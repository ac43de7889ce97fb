package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client registers subscriber addresses with a hosted mailing-list
// provider. Callers treat it as fire-and-forget; errors are for the log.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

func New(endpoint, apiKey string) *Client {
	return &Client{
		endpoint:   endpoint,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type registerRequest struct {
	Email string `json:"email"`
}

func (c *Client) Register(ctx context.Context, email string) error {
	if c.endpoint == "" {
		return fmt.Errorf("list sync endpoint not configured")
	}

	body, err := json.Marshal(registerRequest{Email: email})
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("call list provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("list provider error (status %d): %s", resp.StatusCode, b)
	}
	return nil
}
