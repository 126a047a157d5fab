package webhook

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrMalformedPayload is returned when a webhook body is not a valid
// envelope. Signature verification has already passed by the time decoding
// runs, so a malformed body points at an integration bug, not an attack.
var ErrMalformedPayload = errors.New("webhook: malformed payload")

// Envelope is the full decoded webhook request body.
type Envelope struct {
	Destination string  `json:"destination"`
	Events      []Event `json:"events"`
}

// Decode parses a raw webhook body into an Envelope.
//
// The body must be valid JSON and carry both the destination and events
// fields. Events with unrecognized type tags decode without error; their
// kind-specific payloads are simply left nil.
func Decode(raw []byte) (*Envelope, error) {
	var probe struct {
		Destination *string          `json:"destination"`
		Events      *json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error())
	}
	if probe.Destination == nil {
		return nil, fmt.Errorf("%w: missing destination", ErrMalformedPayload)
	}
	if probe.Events == nil {
		return nil, fmt.Errorf("%w: missing events", ErrMalformedPayload)
	}

	var env Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMalformedPayload, err.Error())
	}

	return &env, nil
}
