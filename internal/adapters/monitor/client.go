// Package monitor delivers composed events to the monitoring server
// over HTTP.
package monitor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/emiliopalmerini/agent-monitor/internal/domain"
)

// eventsPath is the collector endpoint events are posted to.
const eventsPath = "/api/events"

// Config holds the monitor endpoint settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client posts events to the monitoring server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new monitor client. The timeout bounds the whole
// delivery attempt; a client is never allowed to hang its caller.
func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	return &Client{
		baseURL: cfg.BaseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Send delivers one event. Transport failures and non-2xx responses are
// returned as errors; the caller decides whether they matter.
func (c *Client) Send(ctx context.Context, event *domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+eventsPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	// The collector's response body carries nothing we act on.
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
