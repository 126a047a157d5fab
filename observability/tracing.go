package observability

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/elct9620/linebridge"

// Tracer provides OpenTelemetry tracing for linebridge.
type Tracer struct {
	tracer trace.Tracer
}

// NewTracer creates a new linebridge tracer.
func NewTracer() *Tracer {
	return &Tracer{
		tracer: otel.Tracer(tracerName),
	}
}

// StartWebhookSpan starts a new span for processing an inbound webhook request.
func (t *Tracer) StartWebhookSpan(ctx context.Context, receiptID string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "linebridge.webhook",
		trace.WithAttributes(
			attribute.String("linebridge.receipt_id", receiptID),
		),
	)
}

// EndWebhookSpan ends a webhook span with result attributes.
func (t *Tracer) EndWebhookSpan(span trace.Span, emitted int, err string) {
	span.SetAttributes(
		attribute.Int("linebridge.events_emitted", emitted),
	)
	if err != "" {
		span.SetAttributes(attribute.String("linebridge.error", err))
	}
	span.End()
}

// StartDispatchSpan starts a new span for an outbound API call.
func (t *Tracer) StartDispatchSpan(ctx context.Context, requestID, operation, endpoint string) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, "linebridge.dispatch",
		trace.WithAttributes(
			attribute.String("linebridge.request_id", requestID),
			attribute.String("linebridge.operation", operation),
			attribute.String("linebridge.endpoint", endpoint),
		),
	)
}

// EndDispatchSpan ends a dispatch span with result attributes.
func (t *Tracer) EndDispatchSpan(span trace.Span, statusCode, latencyMs int, err string) {
	span.SetAttributes(
		attribute.Int("http.status_code", statusCode),
		attribute.Int("linebridge.latency_ms", latencyMs),
	)
	if err != "" {
		span.SetAttributes(attribute.String("linebridge.error", err))
	}
	span.End()
}
