package webhook_test

import (
	"context"
	"errors"
	"testing"

	"github.com/elct9620/linebridge/signature"
	"github.com/elct9620/linebridge/webhook"
)

const testSecret = "test-channel-secret"

func signedBody(events string) (string, []byte) {
	body := []byte(`{"destination":"U1","events":[` + events + `]}`)
	return signature.Sign(testSecret, body), body
}

const textEventJSON = `{"type":"message","mode":"active","timestamp":1625665242211,` +
	`"replyToken":"rt-1","webhookEventId":"evt-1","deliveryContext":{"isRedelivery":false},` +
	`"source":{"type":"user","userId":"U4af"},` +
	`"message":{"id":"m1","type":"text","text":"untouched text"}}`

func TestPipelineProcessValidRequest(t *testing.T) {
	p := webhook.NewPipeline(testSecret, webhook.PipelineConfig{
		Selectors: []string{"message"},
	}, nil)

	sig, body := signedBody(textEventJSON)
	events, err := p.Process(context.Background(), sig, body)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}

	if len(events) != 1 {
		t.Fatalf("emitted %d events, want 1", len(events))
	}
	if events[0].Type != webhook.KindMessage {
		t.Errorf("kind = %q, want message", events[0].Type)
	}
	if events[0].Message.Text != "untouched text" {
		t.Errorf("text = %q, want original content untouched", events[0].Message.Text)
	}
}

func TestPipelineRejectsInvalidSignature(t *testing.T) {
	p := webhook.NewPipeline(testSecret, webhook.PipelineConfig{
		Selectors: []string{webhook.SelectAll},
	}, nil)

	_, body := signedBody(textEventJSON)
	events, err := p.Process(context.Background(), "bogus-signature", body)

	if !errors.Is(err, webhook.ErrInvalidSignature) {
		t.Fatalf("error = %v, want ErrInvalidSignature", err)
	}
	if len(events) != 0 {
		t.Errorf("emitted %d events after auth failure", len(events))
	}
}

func TestPipelineMissingSecretIsConfigurationError(t *testing.T) {
	p := webhook.NewPipeline("", webhook.PipelineConfig{}, nil)

	sig, body := signedBody(textEventJSON)
	_, err := p.Process(context.Background(), sig, body)

	if !errors.Is(err, webhook.ErrMissingSecret) {
		t.Fatalf("error = %v, want ErrMissingSecret", err)
	}
}

func TestPipelineMissingSignatureIsConfigurationError(t *testing.T) {
	p := webhook.NewPipeline(testSecret, webhook.PipelineConfig{}, nil)

	_, body := signedBody(textEventJSON)
	_, err := p.Process(context.Background(), "", body)

	if !errors.Is(err, webhook.ErrMissingSignature) {
		t.Fatalf("error = %v, want ErrMissingSignature", err)
	}
}

// A correctly signed but malformed body is an integration bug, not an auth
// failure: the two must stay distinguishable.
func TestPipelineMalformedAfterVerification(t *testing.T) {
	p := webhook.NewPipeline(testSecret, webhook.PipelineConfig{
		Selectors: []string{webhook.SelectAll},
	}, nil)

	body := []byte(`{"events":[]}`) // missing destination
	sig := signature.Sign(testSecret, body)

	_, err := p.Process(context.Background(), sig, body)
	if !errors.Is(err, webhook.ErrMalformedPayload) {
		t.Fatalf("error = %v, want ErrMalformedPayload", err)
	}
	if errors.Is(err, webhook.ErrInvalidSignature) {
		t.Fatal("malformed payload must not map to an auth failure")
	}
}

func TestPipelineFiltersOutEverything(t *testing.T) {
	p := webhook.NewPipeline(testSecret, webhook.PipelineConfig{
		Selectors: []string{"postback"},
	}, nil)

	sig, body := signedBody(textEventJSON)
	events, err := p.Process(context.Background(), sig, body)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("emitted %d events, want 0 (empty result is a valid outcome)", len(events))
	}
}

// stubGuard implements webhook.ReplayGuard for pipeline tests.
type stubGuard struct {
	seen map[string]bool
	err  error
}

func (g *stubGuard) Seen(_ context.Context, eventID string) (bool, error) {
	if g.err != nil {
		return false, g.err
	}
	was := g.seen[eventID]
	g.seen[eventID] = true
	return was, nil
}

func TestPipelineSuppressesRedeliveredSeenEvents(t *testing.T) {
	guard := &stubGuard{seen: map[string]bool{}}
	p := webhook.NewPipeline(testSecret, webhook.PipelineConfig{
		Selectors: []string{webhook.SelectAll},
		Guard:     guard,
	}, nil)

	sig, body := signedBody(textEventJSON)
	first, err := p.Process(context.Background(), sig, body)
	if err != nil || len(first) != 1 {
		t.Fatalf("first delivery: events=%d err=%v", len(first), err)
	}

	redelivered := `{"type":"message","mode":"active","timestamp":1625665242211,` +
		`"replyToken":"rt-1","webhookEventId":"evt-1","deliveryContext":{"isRedelivery":true},` +
		`"message":{"id":"m1","type":"text","text":"untouched text"}}`
	sig2, body2 := signedBody(redelivered)

	second, err := p.Process(context.Background(), sig2, body2)
	if err != nil {
		t.Fatalf("second delivery: %v", err)
	}
	if len(second) != 0 {
		t.Errorf("redelivered seen event was emitted again (%d events)", len(second))
	}
}

func TestPipelineGuardFailureKeepsEvents(t *testing.T) {
	guard := &stubGuard{err: errors.New("cache down")}
	p := webhook.NewPipeline(testSecret, webhook.PipelineConfig{
		Selectors: []string{webhook.SelectAll},
		Guard:     guard,
	}, nil)

	sig, body := signedBody(textEventJSON)
	events, err := p.Process(context.Background(), sig, body)
	if err != nil {
		t.Fatalf("Process: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("guard failure dropped events: got %d, want 1", len(events))
	}
}
