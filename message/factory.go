package message

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Errors returned by Build.
var (
	// ErrUnsupportedType is returned when params carry an unknown message type.
	ErrUnsupportedType = errors.New("message: unsupported message type")

	// ErrInvalidInput is returned when params fail validation.
	ErrInvalidInput = errors.New("message: invalid input")
)

// Params is the loosely-typed parameter record a workflow hands to Build.
type Params map[string]any

// Build constructs a validated Message from workflow parameters.
//
// Construction is pure: Build never mutates params and has no side effects.
// Content validation is thin: text length and Flex container schema are
// the platform's responsibility, not this factory's.
func Build(params Params) (Message, error) {
	switch t := stringParam(params, "type"); t {
	case TypeTextV2:
		return buildTextV2(params)
	case TypeFlex:
		return buildFlex(params)
	default:
		return nil, fmt.Errorf("%w: %q, only %q and %q are supported",
			ErrUnsupportedType, t, TypeTextV2, TypeFlex)
	}
}

// BuildAll constructs one message per parameter record, failing on the
// first invalid record.
func BuildAll(records []Params) ([]Message, error) {
	msgs := make([]Message, 0, len(records))
	for i, params := range records {
		msg, err := Build(params)
		if err != nil {
			return nil, fmt.Errorf("message %d: %w", i, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs, nil
}

func buildTextV2(params Params) (Message, error) {
	msg := TextV2{
		Text: stringParam(params, "text"),
	}

	// Copied only when truthy so the field is absent, not null, on the wire.
	if token := stringParam(params, "quoteToken"); token != "" {
		msg.QuoteToken = token
	}

	qr, err := buildQuickReply(params)
	if err != nil {
		return nil, err
	}
	msg.QuickReply = qr

	return msg, nil
}

func buildFlex(params Params) (Message, error) {
	altText := stringParam(params, "altText")
	if strings.TrimSpace(altText) == "" {
		return nil, fmt.Errorf("%w: alt text is required for flex messages", ErrInvalidInput)
	}

	flexJSON := stringParam(params, "flexJson")
	var contents json.RawMessage
	if err := json.Unmarshal([]byte(flexJSON), &contents); err != nil {
		return nil, fmt.Errorf("%w: invalid flex message JSON: %s", ErrInvalidInput, err.Error())
	}

	msg := Flex{
		AltText:  altText,
		Contents: contents,
	}

	qr, err := buildQuickReply(params)
	if err != nil {
		return nil, err
	}
	msg.QuickReply = qr

	return msg, nil
}

// buildQuickReply returns nil unless params carry a non-empty item list.
func buildQuickReply(params Params) (*QuickReply, error) {
	container, ok := params["quickReply"].(map[string]any)
	if !ok {
		return nil, nil
	}

	rawItems, ok := container["items"].([]any)
	if !ok || len(rawItems) == 0 {
		return nil, nil
	}

	items := make([]QuickReplyItem, 0, len(rawItems))
	for i, raw := range rawItems {
		item, ok := raw.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: quick reply item %d is not an object", ErrInvalidInput, i)
		}

		action, err := buildAction(item)
		if err != nil {
			return nil, fmt.Errorf("quick reply item %d: %w", i, err)
		}
		items = append(items, QuickReplyItem{Action: action})
	}

	return &QuickReply{Items: items}, nil
}

// buildAction maps an item's actionType to an action shape. An unrecognized
// actionType is a hard error, never a guessed default.
func buildAction(item map[string]any) (Action, error) {
	label := stringParam(item, "label")
	data := stringParam(item, "data")

	switch actionType := stringParam(item, "actionType"); actionType {
	case ActionPostback:
		return PostbackAction{
			Label: label,
			Data:  data,
			// The display text mirrors the label; it is not independently
			// settable through the factory.
			DisplayText: label,
		}, nil
	case ActionMessage:
		return MessageAction{
			Label: label,
			Text:  data,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unrecognized action type %q", ErrInvalidInput, actionType)
	}
}

// stringParam returns the string value for key, or empty for absent or
// non-string values.
func stringParam(params map[string]any, key string) string {
	s, _ := params[key].(string)
	return s
}
