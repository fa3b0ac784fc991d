package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// ChallengeSize is the number of random bytes behind every ceremony challenge.
const ChallengeSize = 32

// RandomBytes returns size bytes read from the system CSPRNG.
func RandomBytes(size int) ([]byte, error) {
	if size <= 0 {
		return nil, fmt.Errorf("random size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to read random bytes: %w", err)
	}
	return buf, nil
}

// EncodeID encodes raw bytes the way WebAuthn clients do: base64url without
// padding. Challenge and credential identifiers are stored in this form.
func EncodeID(raw []byte) string {
	return base64.RawURLEncoding.EncodeToString(raw)
}

// DecodeID reverses EncodeID.
func DecodeID(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}

// FingerprintToken returns the base64url SHA-256 of token. Revocation records
// are keyed by the fingerprint so raw bearer tokens never reach storage.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
