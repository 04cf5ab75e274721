package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/glowdesk/booking-bot/pkg/circuitbreaker"
	"github.com/glowdesk/booking-bot/pkg/errors"
)

// Client talks to the WhatsApp Web bridge service that owns the actual
// device connection. All calls are bounded; a failure is surfaced as an
// upstream error, never a crash.
type Client struct {
	baseURL string
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Timeout: timeout},
		breaker: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "whatsapp",
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		}),
	}
}

// Health checks whether the bridge service is connected and ready.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return errors.Internal(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Upstream("whatsapp service unreachable", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return errors.Upstream(fmt.Sprintf("whatsapp service unhealthy: %d", resp.StatusCode), nil)
	}
	return nil
}

type sendRequest struct {
	To      string `json:"to"`
	Message string `json:"message"`
}

// Send delivers an outbound text through the bridge.
func (c *Client) Send(ctx context.Context, to, message string) error {
	body, err := json.Marshal(sendRequest{To: to, Message: message})
	if err != nil {
		return errors.Internal(err)
	}

	return c.breaker.Execute(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/send-message", bytes.NewReader(body))
		if err != nil {
			return errors.Internal(err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return errors.Upstream("failed to send message", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return errors.Upstream(fmt.Sprintf("send message failed: %d", resp.StatusCode), nil)
		}
		return nil
	})
}
