package dispatch

import (
	"errors"
	"fmt"
)

// Family identifies which platform API surface a call went to. The two
// surfaces phrase a 404 differently: messaging resources are looked up by
// ID, while content may also have expired.
type Family string

const (
	FamilyMessaging Family = "messaging"
	FamilyContent   Family = "content"
)

// Sentinel validation errors for dispatch operations.
var (
	// ErrMissingAccessToken is returned when the client has no channel
	// access token configured.
	ErrMissingAccessToken = errors.New("dispatch: missing channel access token")

	// ErrMissingReplyToken is returned by Reply when no reply token is given.
	ErrMissingReplyToken = errors.New("dispatch: missing reply token")

	// ErrMissingRecipient is returned when an operation has no target.
	ErrMissingRecipient = errors.New("dispatch: missing recipient")

	// ErrTooManyRecipients is returned by Multicast above the recipient bound.
	ErrTooManyRecipients = errors.New("dispatch: too many recipients")

	// ErrNoMessages is returned when a send operation has an empty message list.
	ErrNoMessages = errors.New("dispatch: no messages to send")

	// ErrInvalidDuration is returned by ShowLoadingAnimation for a duration
	// the platform rejects.
	ErrInvalidDuration = errors.New("dispatch: loading duration must be a multiple of 5 between 5 and 60 seconds")
)

// APIError is a non-2xx response from the platform. The message text is
// derived from the HTTP status for the common cases so callers see an
// actionable description instead of a bare code.
type APIError struct {
	StatusCode int
	Operation  string
	Endpoint   string
	Family     Family
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("dispatch: %s failed: %s (status %d)", e.Operation, e.reason(), e.StatusCode)
}

func (e *APIError) reason() string {
	switch e.StatusCode {
	case 401:
		return "authentication failed, check the channel access token"
	case 403:
		return "the channel is not permitted to perform this operation"
	case 404:
		if e.Family == FamilyContent {
			return "content not found or no longer available"
		}
		return "resource not found"
	case 429:
		return "rate limit exceeded"
	case 500:
		return "the remote service is unavailable"
	default:
		if e.Body != "" {
			return fmt.Sprintf("request rejected: %s", e.Body)
		}
		return "request rejected by the platform"
	}
}

// Temporary reports whether retrying the same call later could succeed.
func (e *APIError) Temporary() bool {
	return e.StatusCode == 429 || e.StatusCode >= 500
}
