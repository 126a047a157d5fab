package webhook_test

import (
	"errors"
	"testing"

	"github.com/elct9620/linebridge/webhook"
)

func TestDecodeValidEnvelope(t *testing.T) {
	raw := []byte(`{
		"destination": "U0a1b2c3d4e5f",
		"events": [
			{"type": "message", "mode": "active", "timestamp": 1, "replyToken": "rt",
			 "webhookEventId": "e1", "deliveryContext": {"isRedelivery": false},
			 "message": {"id": "m1", "type": "text", "text": "hi"}}
		]
	}`)

	env, err := webhook.Decode(raw)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if env.Destination != "U0a1b2c3d4e5f" {
		t.Errorf("destination = %q", env.Destination)
	}
	if len(env.Events) != 1 {
		t.Fatalf("events = %d, want 1", len(env.Events))
	}
	if env.Events[0].Message.Text != "hi" {
		t.Errorf("text = %q", env.Events[0].Message.Text)
	}
}

func TestDecodeEmptyEventsIsValid(t *testing.T) {
	env, err := webhook.Decode([]byte(`{"destination":"U1","events":[]}`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(env.Events) != 0 {
		t.Errorf("events = %d, want 0", len(env.Events))
	}
}

func TestDecodeMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", `not json at all`},
		{"missing destination", `{"events":[]}`},
		{"missing events", `{"destination":"U1"}`},
		{"wrong shape", `[1,2,3]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := webhook.Decode([]byte(tt.raw))
			if !errors.Is(err, webhook.ErrMalformedPayload) {
				t.Errorf("Decode(%q) error = %v, want ErrMalformedPayload", tt.raw, err)
			}
		})
	}
}
