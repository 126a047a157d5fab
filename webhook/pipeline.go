package webhook

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/elct9620/linebridge/id"
	"github.com/elct9620/linebridge/observability"
	"github.com/elct9620/linebridge/signature"
)

// Errors returned by Pipeline.Process. Missing secret and missing signature
// are configuration problems; an invalid signature is an authentication
// failure and must never reach parsing.
var (
	ErrMissingSecret    = errors.New("webhook: channel secret is required")
	ErrMissingSignature = errors.New("webhook: signature header is required")
	ErrInvalidSignature = errors.New("webhook: invalid signature")
)

// ReplayGuard tracks webhook event IDs that have already been processed.
// Seen marks the ID and reports whether it had been marked before.
type ReplayGuard interface {
	Seen(ctx context.Context, eventID string) (bool, error)
}

// PipelineConfig holds optional pipeline collaborators.
type PipelineConfig struct {
	// Selectors is the set of event type tags to retain. SelectAll retains
	// everything. An empty set retains nothing.
	Selectors []string

	// Guard suppresses redelivered events whose IDs were already processed.
	// Nil disables redelivery suppression.
	Guard ReplayGuard

	Metrics *observability.Metrics
	Tracer  *observability.Tracer
}

// Pipeline turns a raw webhook request into a filtered, typed event list.
//
// Processing is linear with no retries: verify the signature over the raw
// body, decode the envelope, filter by the configured selectors, and emit.
// Each request is independent; the pipeline holds no per-request state.
type Pipeline struct {
	secret string
	config PipelineConfig
	logger *slog.Logger
}

// NewPipeline creates a webhook pipeline for the given channel secret.
func NewPipeline(secret string, cfg PipelineConfig, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		secret: secret,
		config: cfg,
		logger: logger,
	}
}

// Process verifies, decodes, and filters a raw webhook request.
//
// rawBody must be the request bytes exactly as received; re-serialized JSON
// breaks signature verification. An empty result slice is a valid outcome:
// it means every event was filtered out or suppressed.
func (p *Pipeline) Process(ctx context.Context, receivedSignature string, rawBody []byte) ([]Event, error) {
	receipt := id.NewReceiptID()

	var span trace.Span
	if p.config.Tracer != nil {
		ctx, span = p.config.Tracer.StartWebhookSpan(ctx, receipt.String())
	}

	events, err := p.process(ctx, receipt, receivedSignature, rawBody)

	if span != nil {
		errText := ""
		if err != nil {
			errText = err.Error()
		}
		p.config.Tracer.EndWebhookSpan(span, len(events), errText)
	}

	return events, err
}

func (p *Pipeline) process(ctx context.Context, receipt id.ID, receivedSignature string, rawBody []byte) ([]Event, error) {
	if p.config.Metrics != nil {
		p.config.Metrics.WebhooksReceivedTotal.Inc()
	}

	if p.secret == "" {
		p.reject("secret")
		return nil, ErrMissingSecret
	}
	if receivedSignature == "" {
		p.reject("signature")
		return nil, ErrMissingSignature
	}

	if !signature.Verify(p.secret, receivedSignature, rawBody) {
		p.reject("signature")
		p.logger.WarnContext(ctx, "webhook signature rejected", "receipt_id", receipt)
		return nil, ErrInvalidSignature
	}

	env, err := Decode(rawBody)
	if err != nil {
		p.reject("malformed")
		return nil, err
	}

	filtered := Filter(env.Events, p.config.Selectors)

	emitted := filtered
	if p.config.Guard != nil {
		emitted = p.suppressRedeliveries(ctx, receipt, filtered)
	}

	if p.config.Metrics != nil {
		p.config.Metrics.EventsEmittedTotal.Add(float64(len(emitted)))
	}

	p.logger.DebugContext(ctx, "webhook processed",
		"receipt_id", receipt,
		"destination", env.Destination,
		"received", len(env.Events),
		"emitted", len(emitted),
	)

	return emitted, nil
}

// suppressRedeliveries drops events whose IDs the guard has seen before.
// Guard failures keep the event: duplicate processing downstream beats
// silently losing events over a cache outage.
func (p *Pipeline) suppressRedeliveries(ctx context.Context, receipt id.ID, events []Event) []Event {
	kept := make([]Event, 0, len(events))

	for _, evt := range events {
		if evt.WebhookEventID == "" {
			kept = append(kept, evt)
			continue
		}

		seen, err := p.config.Guard.Seen(ctx, evt.WebhookEventID)
		if err != nil {
			p.logger.ErrorContext(ctx, "replay guard failed",
				"receipt_id", receipt, "webhook_event_id", evt.WebhookEventID, "error", err)
			kept = append(kept, evt)
			continue
		}

		if seen && evt.DeliveryContext.IsRedelivery {
			p.logger.DebugContext(ctx, "redelivered event suppressed",
				"receipt_id", receipt, "webhook_event_id", evt.WebhookEventID)
			continue
		}

		kept = append(kept, evt)
	}

	return kept
}

func (p *Pipeline) reject(reason string) {
	if p.config.Metrics != nil {
		p.config.Metrics.RecordRejection(reason)
	}
}
