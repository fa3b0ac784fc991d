package domain

import "time"

// CeremonyKind is the ceremony a challenge was issued for.
type CeremonyKind string

const (
	CeremonyRegistration   CeremonyKind = "registration"
	CeremonyAuthentication CeremonyKind = "authentication"
)

// Challenge is a one-time ceremony challenge. ID is the base64url encoding of
// Value, which is how the client echoes it back in clientDataJSON.
type Challenge struct {
	ID        string
	Value     []byte
	Kind      CeremonyKind
	UserID    string // empty for unbound (discoverable) ceremonies
	Session   []byte // verifier ceremony state
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at now.
func (c Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}
