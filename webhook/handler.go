package webhook

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// SignatureHeader is the request header carrying the webhook signature.
const SignatureHeader = "x-line-signature"

// maxBodyBytes caps the webhook request body read. LINE batches at most a
// handful of events per request; anything past this is not a real webhook.
const maxBodyBytes = 1 << 20 // 1MB

// Consumer receives the filtered event list of a verified webhook request.
// It runs synchronously inside the request; a non-nil error produces a 500
// response but does not undo event emission.
type Consumer func(r *http.Request, destination string, events []Event) error

// Handler is the inbound webhook HTTP endpoint.
//
// It accepts POST requests, captures the raw body before any JSON parsing,
// runs the pipeline, and hands the filtered events to the consumer. A
// signature failure responds 403 with a minimal JSON error body and never
// reaches the consumer.
type Handler struct {
	pipeline *Pipeline
	consumer Consumer
	logger   *slog.Logger
}

// NewHandler creates a webhook HTTP handler around the given pipeline.
func NewHandler(pipeline *Pipeline, consumer Consumer, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		pipeline: pipeline,
		consumer: consumer,
		logger:   logger,
	}
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.withMiddleware(http.HandlerFunc(h.receive)).ServeHTTP(w, r)
}

func (h *Handler) receive(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	// The raw bytes are the signed content; read them before any decoding.
	rawBody, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	events, err := h.pipeline.Process(r.Context(), r.Header.Get(SignatureHeader), rawBody)
	if err != nil {
		h.respondError(w, err)
		return
	}

	destination := destinationOf(rawBody)

	if h.consumer != nil {
		if consumeErr := h.consumer(r, destination, events); consumeErr != nil {
			h.logger.ErrorContext(r.Context(), "webhook consumer failed", "error", consumeErr)
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{})
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidSignature):
		writeError(w, http.StatusForbidden, "Invalid signature")
	case errors.Is(err, ErrMissingSignature), errors.Is(err, ErrMissingSecret):
		writeError(w, http.StatusForbidden, "Invalid signature")
	case errors.Is(err, ErrMalformedPayload):
		writeError(w, http.StatusBadRequest, "malformed payload")
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

// destinationOf extracts the destination field for the consumer callback.
// The body already decoded once inside the pipeline; this avoids carrying
// the envelope through the pipeline return just for one field.
func destinationOf(rawBody []byte) string {
	var probe struct {
		Destination string `json:"destination"`
	}
	if err := json.Unmarshal(rawBody, &probe); err != nil {
		return ""
	}
	return probe.Destination
}

func (h *Handler) withMiddleware(next http.Handler) http.Handler {
	return h.panicRecovery(h.logging(next))
}

func (h *Handler) logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)
		h.logger.Info("webhook request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (h *Handler) panicRecovery(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				h.logger.Error("panic recovered",
					"error", rec,
					"stack", string(debug.Stack()),
				)
				writeError(w, http.StatusInternalServerError, "internal server error")
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// responseWriter wraps http.ResponseWriter to capture the status code.
type responseWriter struct {
	http.ResponseWriter
	status int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// JSON helpers.

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best effort
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
