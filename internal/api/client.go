package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/Unknowkubbrother/Project-SmartQ/internal/types"
)

// Client issues actions against the remote queue service. All write endpoints
// are fire-and-forget from the UI's perspective: authoritative state comes
// back over the socket, never from these responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates an action client for the given backend base address.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the backend base address the client talks to.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Probe checks that the backend base address is reachable at all. Any HTTP
// response counts as reachable; only transport errors fail.
func (c *Client) Probe(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	resp.Body.Close()
	return nil
}

// Services fetches the service definitions. Read-only reference data,
// fetched once per backend connection.
func (c *Client) Services(ctx context.Context) ([]types.ServiceDefinition, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/queue/services", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status code: %d, body: %s", resp.StatusCode, string(body))
	}

	var defs []types.ServiceDefinition
	if err := json.NewDecoder(resp.Body).Decode(&defs); err != nil {
		return nil, err
	}
	return defs, nil
}

// RegisterOperator announces the operator id/name pair so completions can be
// attributed. Best-effort: callers log failures and continue.
func (c *Client) RegisterOperator(ctx context.Context, operatorID, name string) error {
	return c.post(ctx, "/api/operator/register", map[string]string{
		"operatorId": operatorID,
		"name":       name,
	})
}

// Enqueue adds a new ticket for the given holder at the tail of a service.
func (c *Client) Enqueue(ctx context.Context, fullname, service string) error {
	return c.post(ctx, "/api/queue/enqueue", map[string]string{
		"FULLNAME_TH": fullname,
		"service":     service,
	})
}

// Dequeue asks the service to call its next waiting ticket to a counter.
func (c *Client) Dequeue(ctx context.Context, service, counter string) error {
	return c.post(ctx, "/api/queue/dequeue", map[string]string{
		"service": service,
		"counter": counter,
	})
}

// Complete marks a ticket done, tagged with the completing operator's id.
func (c *Client) Complete(ctx context.Context, item types.QueueItem, completedBy string) error {
	return c.post(ctx, "/api/queue/complete", map[string]any{
		"Q_number":    item.QNumber,
		"FULLNAME_TH": item.Fullname,
		"service":     item.Service,
		"completedBy": completedBy,
	})
}

// Transfer re-enqueues a completed ticket into a different service.
func (c *Client) Transfer(ctx context.Context, qnumber int, service, targetService string) error {
	return c.post(ctx, "/api/queue/transfer", map[string]any{
		"Q_number":       qnumber,
		"service":        service,
		"target_service": targetService,
	})
}

// Reannounce replays the announcement for the current ticket of a service.
func (c *Client) Reannounce(ctx context.Context, service string) error {
	return c.post(ctx, "/api/queue/reannounce", map[string]string{
		"service": service,
	})
}

// SetMute sets or clears audio suppression for a service.
func (c *Client) SetMute(ctx context.Context, service string, muted bool) error {
	return c.post(ctx, "/api/queue/mute", map[string]any{
		"service": service,
		"muted":   muted,
	})
}

func (c *Client) post(ctx context.Context, path string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%s failed: status %d, body: %s", path, resp.StatusCode, string(body))
	}
	return nil
}
