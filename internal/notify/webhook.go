package notify

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Sender delivers a domain event to an external consumer.
type Sender interface {
	Send(ctx context.Context, topic string, payload []byte) error
}

// WebhookSender POSTs events as JSON to a single configured endpoint.
// The topic travels in a header so one endpoint can fan out.
type WebhookSender struct {
	endpoint string
	client   *http.Client
}

func NewWebhookSender(endpoint string) *WebhookSender {
	return &WebhookSender{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *WebhookSender) Send(ctx context.Context, topic string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-PrestaBanco-Topic", topic)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("deliver %s webhook: %w", topic, err)
	}
	defer func() {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("deliver %s webhook: endpoint returned %d", topic, resp.StatusCode)
	}
	return nil
}

// NoopSender drops events. Used when no webhook endpoint is configured.
type NoopSender struct{}

func (NoopSender) Send(context.Context, string, []byte) error { return nil }
