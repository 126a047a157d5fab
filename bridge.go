package linebridge

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/elct9620/linebridge/content"
	"github.com/elct9620/linebridge/dispatch"
	"github.com/elct9620/linebridge/observability"
	"github.com/elct9620/linebridge/ratelimit"
	"github.com/elct9620/linebridge/replay"
	"github.com/elct9620/linebridge/webhook"
)

// Bridge is the root integration: the inbound webhook pipeline on one side,
// the outbound messaging and content clients on the other.
//
// A Bridge can be one-sided. The channel secret is only needed for webhook
// processing and the access token only for outbound calls; each is checked
// where it is used, not at construction.
type Bridge struct {
	config     Config
	secret     string
	token      string
	httpClient *http.Client
	guard      replay.Guard
	metrics    *observability.Metrics
	tracer     *observability.Tracer
	logger     *slog.Logger

	pipeline  *webhook.Pipeline
	messaging *dispatch.Client
	content   *content.Client
}

// New creates a new Bridge with the given options.
func New(opts ...Option) (*Bridge, error) {
	b := &Bridge{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(b); err != nil {
			return nil, err
		}
	}
	b.wireServices()
	return b, nil
}

// wireServices initializes the internal services after options have been applied.
func (b *Bridge) wireServices() {
	b.pipeline = webhook.NewPipeline(b.secret, webhook.PipelineConfig{
		Selectors: b.config.Selectors,
		Guard:     b.guard,
		Metrics:   b.metrics,
		Tracer:    b.tracer,
	}, b.logger)

	var limiter *ratelimit.Limiter
	if b.config.RateLimit > 0 {
		limiter = ratelimit.New()
	}

	b.messaging = dispatch.NewClient(b.token, dispatch.ClientConfig{
		BaseURL:    b.config.APIBaseURL,
		HTTPClient: b.dispatchHTTPClient(),
		Limiter:    limiter,
		RateLimit:  b.config.RateLimit,
		RetryKey:   b.config.RetryKey,
		Metrics:    b.metrics,
		Tracer:     b.tracer,
	}, b.logger)

	b.content = content.NewClient(b.token, content.ClientConfig{
		BaseURL:    b.config.DataBaseURL,
		HTTPClient: b.contentHTTPClient(),
	}, b.logger)
}

func (b *Bridge) dispatchHTTPClient() *http.Client {
	if b.httpClient != nil {
		return b.httpClient
	}
	return &http.Client{Timeout: b.config.RequestTimeout}
}

func (b *Bridge) contentHTTPClient() *http.Client {
	if b.httpClient != nil {
		return b.httpClient
	}
	timeout := b.config.ContentTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}

// Webhook returns the inbound processing pipeline for callers who terminate
// HTTP themselves.
func (b *Bridge) Webhook() *webhook.Pipeline {
	return b.pipeline
}

// Handler returns an http.Handler that verifies, decodes, and filters
// webhook requests, passing the surviving events to consumer.
func (b *Bridge) Handler(consumer webhook.Consumer) http.Handler {
	return webhook.NewHandler(b.pipeline, consumer, b.logger)
}

// Messaging returns the outbound messaging API client.
func (b *Bridge) Messaging() *dispatch.Client {
	return b.messaging
}

// Content returns the attachment download client.
func (b *Bridge) Content() *content.Client {
	return b.content
}

// PollConfig returns the configured transcoding poll bounds, for use with
// Content().WaitReady.
func (b *Bridge) PollConfig() content.PollConfig {
	return b.config.Poll
}

// Close releases resources held by optional collaborators.
func (b *Bridge) Close() error {
	if b.guard != nil {
		return b.guard.Close()
	}
	return nil
}
