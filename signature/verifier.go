package signature

import "crypto/hmac"

// Verify checks whether received matches the expected signature for the
// raw body under the given channel secret. The comparison is constant-time.
//
// The body must be the untransformed request bytes. Verifying against a
// re-serialized JSON copy can silently change key order, unicode escaping,
// or whitespace and produce a different digest.
//
// Returns false for an empty secret or an empty received signature.
func (s *Signer) Verify(secret, received string, body []byte) bool {
	return Verify(secret, received, body)
}

// Verify checks whether received matches the expected signature for the
// raw body under the given channel secret. The comparison is constant-time.
func Verify(secret, received string, body []byte) bool {
	if secret == "" || received == "" {
		return false
	}
	expected := Sign(secret, body)
	return hmac.Equal([]byte(expected), []byte(received))
}
