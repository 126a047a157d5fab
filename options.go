package linebridge

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/elct9620/linebridge/content"
	"github.com/elct9620/linebridge/observability"
	"github.com/elct9620/linebridge/replay"
)

// Option configures a Bridge instance.
type Option func(*Bridge) error

// WithChannelSecret sets the channel secret used to verify webhook signatures.
// Required for webhook processing.
func WithChannelSecret(secret string) Option {
	return func(b *Bridge) error {
		b.secret = secret
		return nil
	}
}

// WithAccessToken sets the channel access token used for outbound API calls.
// Required for messaging and content operations.
func WithAccessToken(token string) Option {
	return func(b *Bridge) error {
		b.token = token
		return nil
	}
}

// WithLogger sets the structured logger for the Bridge instance.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) error {
		b.logger = logger
		return nil
	}
}

// WithHTTPClient sets the transport used for outbound API calls.
func WithHTTPClient(client *http.Client) Option {
	return func(b *Bridge) error {
		b.httpClient = client
		return nil
	}
}

// WithAPIBaseURL overrides the messaging API surface.
func WithAPIBaseURL(url string) Option {
	return func(b *Bridge) error {
		b.config.APIBaseURL = url
		return nil
	}
}

// WithDataBaseURL overrides the data API surface serving binary content.
func WithDataBaseURL(url string) Option {
	return func(b *Bridge) error {
		b.config.DataBaseURL = url
		return nil
	}
}

// WithSelectors sets the webhook event type tags to retain. webhook.SelectAll
// retains everything; an empty set retains nothing.
func WithSelectors(selectors ...string) Option {
	return func(b *Bridge) error {
		b.config.Selectors = selectors
		return nil
	}
}

// WithReplayGuard enables suppression of redelivered webhook events.
func WithReplayGuard(guard replay.Guard) Option {
	return func(b *Bridge) error {
		b.guard = guard
		return nil
	}
}

// WithRateLimit caps outbound calls per second per operation.
func WithRateLimit(callsPerSecond int) Option {
	return func(b *Bridge) error {
		b.config.RateLimit = callsPerSecond
		return nil
	}
}

// WithRetryKey adds an X-Line-Retry-Key UUID header to send operations so
// the platform can deduplicate retried calls.
func WithRetryKey() Option {
	return func(b *Bridge) error {
		b.config.RetryKey = true
		return nil
	}
}

// WithRequestTimeout sets the HTTP timeout per messaging API call.
func WithRequestTimeout(d time.Duration) Option {
	return func(b *Bridge) error {
		b.config.RequestTimeout = d
		return nil
	}
}

// WithPollConfig bounds content transcoding status polling.
func WithPollConfig(cfg content.PollConfig) Option {
	return func(b *Bridge) error {
		b.config.Poll = cfg
		return nil
	}
}

// WithMetrics enables prometheus instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(b *Bridge) error {
		b.metrics = m
		return nil
	}
}

// WithTracer enables OpenTelemetry spans around webhook processing and
// outbound API calls.
func WithTracer(t *observability.Tracer) Option {
	return func(b *Bridge) error {
		b.tracer = t
		return nil
	}
}
