// Package signature provides HMAC-SHA256 signing and verification for
// LINE webhook requests.
package signature

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
)

// Signer computes x-line-signature values for webhook bodies.
type Signer struct{}

// NewSigner returns a new Signer.
func NewSigner() *Signer {
	return &Signer{}
}

// Sign generates the HMAC-SHA256 signature for the given raw body.
// The digest is computed over the body bytes exactly as received and
// base64-encoded, matching the x-line-signature header format.
func (s *Signer) Sign(secret string, body []byte) string {
	return Sign(secret, body)
}

// Sign generates the HMAC-SHA256 signature for the given raw body.
// The digest is computed over the body bytes exactly as received and
// base64-encoded, matching the x-line-signature header format.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}
