// Package message defines the outbound LINE message model and the factory
// that builds validated messages from loosely-typed workflow parameters.
package message

import "encoding/json"

// Type tags of the supported outbound message variants.
const (
	TypeTextV2 = "textV2"
	TypeFlex   = "flex"
)

// Message is an outbound message in LINE wire shape. Implementations are
// the closed set of variants in this package; each marshals with its own
// type tag and omits absent optional fields entirely, because some API
// endpoints reject unexpected null fields.
type Message interface {
	json.Marshaler

	// MessageType returns the wire discriminant tag.
	MessageType() string
}

// TextV2 is a text message with optional quote and quick replies.
type TextV2 struct {
	Text       string
	QuoteToken string
	QuickReply *QuickReply
}

// MessageType implements Message.
func (TextV2) MessageType() string { return TypeTextV2 }

// MarshalJSON implements json.Marshaler with the textV2 tag injected.
func (m TextV2) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string      `json:"type"`
		Text       string      `json:"text"`
		QuoteToken string      `json:"quoteToken,omitempty"`
		QuickReply *QuickReply `json:"quickReply,omitempty"`
	}{
		Type:       TypeTextV2,
		Text:       m.Text,
		QuoteToken: m.QuoteToken,
		QuickReply: m.QuickReply,
	})
}

// Flex is a rich layout message. Contents is the Flex container JSON,
// passed through opaquely; the platform validates the container schema.
type Flex struct {
	AltText    string
	Contents   json.RawMessage
	QuickReply *QuickReply
}

// MessageType implements Message.
func (Flex) MessageType() string { return TypeFlex }

// MarshalJSON implements json.Marshaler with the flex tag injected.
func (m Flex) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type       string          `json:"type"`
		AltText    string          `json:"altText"`
		Contents   json.RawMessage `json:"contents"`
		QuickReply *QuickReply     `json:"quickReply,omitempty"`
	}{
		Type:       TypeFlex,
		AltText:    m.AltText,
		Contents:   m.Contents,
		QuickReply: m.QuickReply,
	})
}

// QuickReply attaches suggested response actions to a message.
type QuickReply struct {
	Items []QuickReplyItem `json:"items"`
}

// QuickReplyItem wraps a single action. The wire type tag is always
// "action".
type QuickReplyItem struct {
	Action Action
}

// MarshalJSON implements json.Marshaler with the item tag injected.
func (i QuickReplyItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type   string `json:"type"`
		Action Action `json:"action"`
	}{
		Type:   "action",
		Action: i.Action,
	})
}

// Action type tags.
const (
	ActionMessage  = "message"
	ActionPostback = "postback"
)

// Action is a quick-reply action: exactly one of the message or postback
// shapes, each carrying a required label.
type Action interface {
	json.Marshaler

	// ActionType returns the wire discriminant tag.
	ActionType() string
}

// MessageAction sends the given text into the chat when tapped.
type MessageAction struct {
	Label string
	Text  string
}

// ActionType implements Action.
func (MessageAction) ActionType() string { return ActionMessage }

// MarshalJSON implements json.Marshaler with the message tag injected.
func (a MessageAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type  string `json:"type"`
		Label string `json:"label"`
		Text  string `json:"text"`
	}{
		Type:  ActionMessage,
		Label: a.Label,
		Text:  a.Text,
	})
}

// PostbackAction sends a postback event with the given data when tapped.
type PostbackAction struct {
	Label       string
	Data        string
	DisplayText string
}

// ActionType implements Action.
func (PostbackAction) ActionType() string { return ActionPostback }

// MarshalJSON implements json.Marshaler with the postback tag injected.
func (a PostbackAction) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type        string `json:"type"`
		Label       string `json:"label"`
		Data        string `json:"data"`
		DisplayText string `json:"displayText,omitempty"`
	}{
		Type:        ActionPostback,
		Label:       a.Label,
		Data:        a.Data,
		DisplayText: a.DisplayText,
	})
}
