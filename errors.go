package linebridge

import (
	"github.com/elct9620/linebridge/content"
	"github.com/elct9620/linebridge/dispatch"
	"github.com/elct9620/linebridge/message"
	"github.com/elct9620/linebridge/webhook"
)

// Sentinel errors returned by linebridge operations. These alias the
// sentinels raised in the subpackages, so errors.Is works whether callers
// import the root package or the package that produced the error.
var (
	// ErrMissingSecret is returned when webhook processing is attempted without a channel secret.
	ErrMissingSecret = webhook.ErrMissingSecret

	// ErrMissingSignature is returned when a webhook request carries no x-line-signature header.
	ErrMissingSignature = webhook.ErrMissingSignature

	// ErrInvalidSignature is returned when the x-line-signature header does not match the request body.
	ErrInvalidSignature = webhook.ErrInvalidSignature

	// ErrMalformedPayload is returned when a verified webhook body is not a valid envelope.
	ErrMalformedPayload = webhook.ErrMalformedPayload

	// ErrUnsupportedMessageType is returned when message construction is asked for an unknown type.
	ErrUnsupportedMessageType = message.ErrUnsupportedType

	// ErrInvalidInput is returned when message construction fails validation.
	ErrInvalidInput = message.ErrInvalidInput

	// ErrMissingAccessToken is returned when a platform call is attempted without a channel access token.
	ErrMissingAccessToken = dispatch.ErrMissingAccessToken

	// ErrMissingReplyToken is returned when a reply is attempted without a reply token.
	ErrMissingReplyToken = dispatch.ErrMissingReplyToken

	// ErrMissingRecipient is returned when a push, multicast, or profile call has no target.
	ErrMissingRecipient = dispatch.ErrMissingRecipient

	// ErrTooManyRecipients is returned when a multicast exceeds the recipient limit.
	ErrTooManyRecipients = dispatch.ErrTooManyRecipients

	// ErrNoMessages is returned when a send operation is given an empty message list.
	ErrNoMessages = dispatch.ErrNoMessages

	// ErrInvalidDuration is returned for a loading animation duration the platform rejects.
	ErrInvalidDuration = dispatch.ErrInvalidDuration

	// ErrTranscodingFailed is returned when the platform reports content transcoding as failed.
	ErrTranscodingFailed = content.ErrTranscodingFailed

	// ErrTranscodingTimeout is returned when content is still processing after the configured attempts.
	ErrTranscodingTimeout = content.ErrTranscodingTimeout
)
