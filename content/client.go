// Package content retrieves message attachments (images, video, audio,
// files) from the platform's data API surface, including transcoding
// status polling for media that is not immediately available.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/elct9620/linebridge/dispatch"
)

const (
	// DefaultBaseURL is the data API surface; binary content is served
	// from a different host than the messaging operations.
	DefaultBaseURL = "https://api-data.line.me/v2/bot"

	maxErrorBody = 1024
)

// Transcoding statuses reported by the platform.
const (
	StatusProcessing = "processing"
	StatusSucceeded  = "succeeded"
	StatusFailed     = "failed"
)

var (
	// ErrMissingMessageID is returned when no message ID is given.
	ErrMissingMessageID = errors.New("content: missing message ID")

	// ErrTranscodingFailed is returned when the platform reports the
	// media could not be prepared.
	ErrTranscodingFailed = errors.New("content: transcoding failed, the file may be corrupted or unsupported")

	// ErrTranscodingTimeout is returned when media is still processing
	// after the configured number of polling attempts.
	ErrTranscodingTimeout = errors.New("content: still processing after maximum attempts")
)

// fileExtensions maps common attachment MIME types to filename extensions.
// Unknown types get no extension.
var fileExtensions = map[string]string{
	"image/jpeg":               ".jpg",
	"image/png":                ".png",
	"image/gif":                ".gif",
	"video/mp4":                ".mp4",
	"audio/mp4":                ".m4a",
	"audio/aac":                ".aac",
	"application/pdf":          ".pdf",
	"application/octet-stream": ".bin",
}

// FileExtension returns the filename extension for a MIME type, or "" for
// an unrecognized type.
func FileExtension(mimeType string) string {
	return fileExtensions[mimeType]
}

// Content is a downloaded attachment.
type Content struct {
	Data     []byte
	MIMEType string
	FileName string
}

// PollConfig bounds transcoding status polling.
type PollConfig struct {
	// Attempts is the maximum number of status checks before giving up.
	Attempts int

	// Interval is the fixed delay between checks.
	Interval time.Duration
}

// DefaultPollConfig mirrors the platform guidance of a few short checks.
func DefaultPollConfig() PollConfig {
	return PollConfig{Attempts: 3, Interval: 3 * time.Second}
}

// ClientConfig holds optional content client collaborators.
type ClientConfig struct {
	// BaseURL overrides the data API surface, e.g. for tests.
	BaseURL string

	// HTTPClient overrides the transport. Nil gets a 60s-timeout client;
	// media downloads run longer than messaging calls.
	HTTPClient *http.Client
}

// Client downloads attachments from the data API. Every call carries the
// channel access token as a Bearer credential.
type Client struct {
	token  string
	config ClientConfig
	client *http.Client
	logger *slog.Logger
}

// NewClient creates a content client for the given channel access token.
func NewClient(token string, cfg ClientConfig, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		token:  token,
		config: cfg,
		client: httpClient,
		logger: logger,
	}
}

// Get downloads the binary content of a message attachment. The returned
// file name is derived from the message ID and the response MIME type.
func (c *Client) Get(ctx context.Context, messageID string) (*Content, error) {
	if messageID == "" {
		return nil, ErrMissingMessageID
	}

	path := "/message/" + messageID + "/content"
	resp, err := c.do(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, c.apiError(resp, "getContent", path)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("content: read body: %w", err)
	}

	mimeType := resp.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &Content{
		Data:     data,
		MIMEType: mimeType,
		FileName: "line_content_" + messageID + FileExtension(mimeType),
	}, nil
}

// TranscodingStatus reports whether a media attachment is ready for download.
func (c *Client) TranscodingStatus(ctx context.Context, messageID string) (string, error) {
	if messageID == "" {
		return "", ErrMissingMessageID
	}

	path := "/message/" + messageID + "/content/transcoding"
	resp, err := c.do(ctx, path)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", c.apiError(resp, "transcodingStatus", path)
	}

	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("content: decode status: %w", err)
	}
	return status.Status, nil
}

// WaitReady polls the transcoding status until the media is ready.
//
// A "failed" status is terminal and returns ErrTranscodingFailed. Media
// still processing after cfg.Attempts checks returns ErrTranscodingTimeout.
// The inter-attempt sleep honors context cancellation.
func (c *Client) WaitReady(ctx context.Context, messageID string, cfg PollConfig) error {
	if cfg.Attempts <= 0 {
		cfg = DefaultPollConfig()
	}

	for attempt := 0; attempt < cfg.Attempts; attempt++ {
		status, err := c.TranscodingStatus(ctx, messageID)
		if err != nil {
			return err
		}

		switch status {
		case StatusFailed:
			return ErrTranscodingFailed
		case StatusProcessing:
			// Keep polling.
		default:
			// Succeeded, or a status this client predates; let Get decide.
			return nil
		}

		c.logger.DebugContext(ctx, "content still processing",
			"message_id", messageID,
			"attempt", attempt+1,
			"max_attempts", cfg.Attempts,
		)

		if attempt == cfg.Attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(cfg.Interval):
		}
	}

	return fmt.Errorf("%w: %d attempts", ErrTranscodingTimeout, cfg.Attempts)
}

func (c *Client) do(ctx context.Context, path string) (*http.Response, error) {
	if c.token == "" {
		return nil, dispatch.ErrMissingAccessToken
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("content: create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content: %w", err)
	}
	return resp, nil
}

func (c *Client) apiError(resp *http.Response, operation, path string) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return &dispatch.APIError{
		StatusCode: resp.StatusCode,
		Operation:  operation,
		Endpoint:   path,
		Family:     dispatch.FamilyContent,
		Body:       string(body),
	}
}
