package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sender posts a payload to a webhook.
type Sender interface {
	Send(ctx context.Context, url string, payload Payload) error
}

// Gateway delivers payloads over HTTP. Any non-2xx response is an error.
type Gateway struct {
	client *http.Client
}

// NewGateway returns a gateway whose requests give up after timeout.
func NewGateway(timeout time.Duration) *Gateway {
	return &Gateway{client: &http.Client{Timeout: timeout}}
}

func (g *Gateway) Send(ctx context.Context, url string, payload Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook responded %d", resp.StatusCode)
	}
	return nil
}
