package payments

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
)

// SignatureHeader carries the processor's hex-encoded HMAC-SHA256 of the
// raw request body.
const SignatureHeader = "X-Studioops-Signature"

// ErrBadSignature indicates the webhook signature did not match the shared
// secret. Rejected before any payload parsing or database access.
var ErrBadSignature = errors.New("webhook signature mismatch")

// Sign computes the hex HMAC-SHA256 of body under the shared secret.
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a signature against the exact raw body bytes.
// The body must be the unparsed wire bytes: re-serializing JSON is not
// guaranteed byte-identical to what the processor signed.
func VerifySignature(secret string, body []byte, signature string) error {
	expected := Sign(secret, body)
	if !hmac.Equal([]byte(expected), []byte(signature)) {
		return ErrBadSignature
	}
	return nil
}
