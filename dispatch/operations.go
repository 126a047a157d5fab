package dispatch

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/elct9620/linebridge/message"
)

// MaxMulticastRecipients is the platform bound on one multicast call.
const MaxMulticastRecipients = 500

// Operation keys, used for metrics labels and rate limit buckets.
const (
	OpReply                = "reply"
	OpPush                 = "push"
	OpMulticast            = "multicast"
	OpGetProfile           = "getProfile"
	OpShowLoadingAnimation = "showLoadingAnimation"
)

// Profile is a user profile returned by the platform.
type Profile struct {
	UserID        string `json:"userId"`
	DisplayName   string `json:"displayName"`
	Language      string `json:"language,omitempty"`
	PictureURL    string `json:"pictureUrl,omitempty"`
	StatusMessage string `json:"statusMessage,omitempty"`
}

// Reply sends messages using a single-use reply token from an inbound event.
func (c *Client) Reply(ctx context.Context, replyToken string, msgs []message.Message) error {
	if replyToken == "" {
		return ErrMissingReplyToken
	}
	if len(msgs) == 0 {
		return ErrNoMessages
	}

	body := map[string]any{
		"replyToken": replyToken,
		"messages":   msgs,
	}
	return c.call(ctx, OpReply, http.MethodPost, "/message/reply", body, nil)
}

// Push sends messages to a single user ID.
func (c *Client) Push(ctx context.Context, to string, msgs []message.Message) error {
	if to == "" {
		return ErrMissingRecipient
	}
	if len(msgs) == 0 {
		return ErrNoMessages
	}

	body := map[string]any{
		"to":       to,
		"messages": msgs,
	}
	return c.call(ctx, OpPush, http.MethodPost, "/message/push", body, nil)
}

// Multicast sends messages to a comma-delimited list of user IDs. IDs are
// trimmed and empty entries dropped; duplicates are passed through as given.
func (c *Client) Multicast(ctx context.Context, to string, msgs []message.Message) error {
	recipients := SplitRecipients(to)
	if len(recipients) == 0 {
		return ErrMissingRecipient
	}
	if len(recipients) > MaxMulticastRecipients {
		return fmt.Errorf("%w: %d recipients exceeds the limit of %d",
			ErrTooManyRecipients, len(recipients), MaxMulticastRecipients)
	}
	if len(msgs) == 0 {
		return ErrNoMessages
	}

	body := map[string]any{
		"to":       recipients,
		"messages": msgs,
	}
	return c.call(ctx, OpMulticast, http.MethodPost, "/message/multicast", body, nil)
}

// GetProfile fetches the profile of a user the channel can see.
func (c *Client) GetProfile(ctx context.Context, userID string) (*Profile, error) {
	if userID == "" {
		return nil, ErrMissingRecipient
	}

	var profile Profile
	if err := c.call(ctx, OpGetProfile, http.MethodGet, "/profile/"+userID, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// ShowLoadingAnimation displays a typing indicator in the chat with the
// given user for the given number of seconds. The platform accepts
// multiples of 5 between 5 and 60; 0 requests the platform default.
func (c *Client) ShowLoadingAnimation(ctx context.Context, chatID string, seconds int) error {
	if chatID == "" {
		return ErrMissingRecipient
	}
	if seconds != 0 && (seconds < 5 || seconds > 60 || seconds%5 != 0) {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, seconds)
	}

	body := map[string]any{"chatId": chatID}
	if seconds != 0 {
		body["loadingSeconds"] = seconds
	}
	return c.call(ctx, OpShowLoadingAnimation, http.MethodPost, "/chat/loading/start", body, nil)
}

// SplitRecipients parses a comma-delimited recipient list: entries are
// trimmed, empties dropped, duplicates kept.
func SplitRecipients(to string) []string {
	parts := strings.Split(to, ",")
	recipients := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			recipients = append(recipients, trimmed)
		}
	}
	return recipients
}
