// Package dispatch implements the outbound platform API operations: reply,
// push, multicast, profile lookup, and the loading animation.
package dispatch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/elct9620/linebridge/id"
	"github.com/elct9620/linebridge/observability"
	"github.com/elct9620/linebridge/ratelimit"
)

const (
	// DefaultBaseURL is the messaging API surface.
	DefaultBaseURL = "https://api.line.me/v2/bot"

	maxErrorBody = 1024 // 1KB cap on stored error response bodies
)

// ClientConfig holds optional client collaborators. The zero value gives a
// plain client against the production API surface.
type ClientConfig struct {
	// BaseURL overrides the API surface, e.g. for tests.
	BaseURL string

	// HTTPClient overrides the transport. Nil gets a 30s-timeout client.
	HTTPClient *http.Client

	// Limiter, when set with a positive RateLimit, gates each call.
	Limiter   *ratelimit.Limiter
	RateLimit int // calls per second per operation; 0 means unlimited

	// RetryKey adds an X-Line-Retry-Key UUID header to send operations so
	// the platform can deduplicate retried calls.
	RetryKey bool

	Metrics *observability.Metrics
	Tracer  *observability.Tracer
}

// Client issues authenticated calls against the messaging API. Every call
// carries the channel access token as a Bearer credential. Calls are
// independent; the client is safe for concurrent use.
type Client struct {
	token  string
	config ClientConfig
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a messaging API client for the given channel access token.
func NewClient(token string, cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		token:  token,
		config: cfg,
		client: httpClient,
		logger: logger,
	}
}

// call issues one API request and decodes a JSON response body into out when
// out is non-nil. Non-2xx responses become an *APIError; there is no
// internal retry.
func (c *Client) call(ctx context.Context, operation, method, path string, body, out any) error {
	if c.token == "" {
		return ErrMissingAccessToken
	}

	if c.config.Limiter != nil {
		if err := c.config.Limiter.Wait(ctx, operation, c.config.RateLimit); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}
	}

	var payload io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		payload = bytes.NewReader(raw)
	}

	url := c.config.BaseURL + path
	req, err := http.NewRequestWithContext(ctx, method, url, payload)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	requestID := id.NewRequestID()
	req.Header.Set("Authorization", "Bearer "+c.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.RetryKey && method == http.MethodPost {
		req.Header.Set("X-Line-Retry-Key", uuid.NewString())
	}

	var span trace.Span
	if c.config.Tracer != nil {
		ctx, span = c.config.Tracer.StartDispatchSpan(ctx, requestID.String(), operation, path)
		req = req.WithContext(ctx)
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	latency := time.Since(start)

	if err != nil {
		c.record(operation, "error", latency)
		if span != nil {
			c.config.Tracer.EndDispatchSpan(span, 0, int(latency.Milliseconds()), err.Error())
		}
		c.logger.ErrorContext(ctx, "dispatch request failed",
			"operation", operation,
			"request_id", requestID,
			"error", err,
		)
		return fmt.Errorf("%s: %w", operation, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		apiErr := &APIError{
			StatusCode: resp.StatusCode,
			Operation:  operation,
			Endpoint:   path,
			Family:     FamilyMessaging,
			Body:       string(bytes.TrimSpace(respBody)),
		}
		c.record(operation, "failure", latency)
		if span != nil {
			c.config.Tracer.EndDispatchSpan(span, resp.StatusCode, int(latency.Milliseconds()), apiErr.Error())
		}
		c.logger.WarnContext(ctx, "dispatch rejected",
			"operation", operation,
			"request_id", requestID,
			"status", resp.StatusCode,
		)
		return apiErr
	}

	c.record(operation, "success", latency)
	if span != nil {
		c.config.Tracer.EndDispatchSpan(span, resp.StatusCode, int(latency.Milliseconds()), "")
	}
	c.logger.DebugContext(ctx, "dispatch succeeded",
		"operation", operation,
		"request_id", requestID,
		"status", resp.StatusCode,
		"latency_ms", latency.Milliseconds(),
	)

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}

func (c *Client) record(operation, status string, latency time.Duration) {
	if c.config.Metrics == nil {
		return
	}
	c.config.Metrics.RecordDispatch(operation, status, latency.Seconds())
}
