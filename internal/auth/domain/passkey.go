package domain

import (
	"errors"
	"time"
)

// Device types reported for a passkey.
const (
	DeviceTypePlatform      = "platform"
	DeviceTypeCrossPlatform = "cross-platform"
)

// DefaultFriendlyName labels passkeys registered without a name.
const DefaultFriendlyName = "Passkey Device"

// PasskeyCredential is one registered authenticator.
type PasskeyCredential struct {
	CredentialID    string // base64url raw id, unique
	UserID          string
	PublicKey       []byte // COSE encoded
	SignCount       uint32
	AAGUID          []byte
	Transports      []string
	AttestationType string
	BackupEligible  bool
	BackupState     bool
	DeviceType      string
	FriendlyName    string
	CreatedAt       time.Time
	LastUsedAt      *time.Time
}

// AttestedCredential is what a verified registration yields, before it is
// bound to a user and persisted.
type AttestedCredential struct {
	ID              []byte
	PublicKey       []byte
	SignCount       uint32
	AAGUID          []byte
	Transports      []string
	AttestationType string
	BackupEligible  bool
	BackupState     bool
}

// DeviceType classifies the authenticator: credentials that may sync
// between devices are treated as cross-platform.
func (a AttestedCredential) DeviceType() string {
	if a.BackupEligible {
		return DeviceTypeCrossPlatform
	}
	return DeviceTypePlatform
}

// RegistrationResponse is a parsed client attestation response.
type RegistrationResponse struct {
	Challenge string // base64url, as echoed in clientDataJSON
	Raw       []byte
}

// AssertionResponse is a parsed client assertion response.
type AssertionResponse struct {
	Challenge    string
	CredentialID string // base64url raw id
	UserHandle   []byte
	SignCount    uint32
	Raw          []byte
}

// ErrCeremonyResponse marks a client ceremony response that failed parsing or
// verification, as opposed to an internal failure while checking it.
var ErrCeremonyResponse = errors.New("passkey: ceremony response rejected")
