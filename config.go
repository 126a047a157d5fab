package linebridge

import (
	"time"

	"github.com/elct9620/linebridge/content"
	"github.com/elct9620/linebridge/dispatch"
	"github.com/elct9620/linebridge/webhook"
)

// Config holds the configuration for a Bridge instance.
type Config struct {
	// APIBaseURL is the messaging API surface.
	APIBaseURL string

	// DataBaseURL is the data API surface serving binary content.
	DataBaseURL string

	// RequestTimeout is the HTTP timeout per messaging API call.
	RequestTimeout time.Duration

	// ContentTimeout is the HTTP timeout per content download.
	ContentTimeout time.Duration

	// Selectors is the set of webhook event type tags to retain.
	// Defaults to everything.
	Selectors []string

	// RateLimit caps outbound calls per second per operation.
	// 0 disables client-side rate limiting.
	RateLimit int

	// RetryKey adds an X-Line-Retry-Key header to send operations.
	RetryKey bool

	// Poll bounds content transcoding status polling.
	Poll content.PollConfig
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		APIBaseURL:     dispatch.DefaultBaseURL,
		DataBaseURL:    content.DefaultBaseURL,
		RequestTimeout: 30 * time.Second,
		ContentTimeout: 60 * time.Second,
		Selectors:      []string{webhook.SelectAll},
		Poll:           content.DefaultPollConfig(),
	}
}
