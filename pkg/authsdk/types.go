package authsdk

import (
	"encoding/json"
	"time"

	"github.com/aussiebroadwan/dynaform/pkg/jwtx"
)

// ============================================================================
// Account Types
// ============================================================================

// RegisterRequest is step one of sign-up: an account with no credential yet.
type RegisterRequest struct {
	FullName string `json:"fullName" example:"Ada Lovelace"`
	Email    string `json:"email" example:"ada@example.com"`
	Username string `json:"username" example:"ada"`
}

// RegisterResponse carries the id used for the passkey registration ceremony.
type RegisterResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	UserID  string `json:"userId" example:"01J9Z8X7W6V5T4S3R2Q1P0N9M8"`
}

// User is the public view of an account.
type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	FullName      string     `json:"fullName"`
	Role          string     `json:"role" example:"user"`
	EmailVerified bool       `json:"emailVerified"`
	LastLoginAt   *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// UserResponse wraps a single user.
type UserResponse struct {
	Success bool `json:"success"`
	User    User `json:"user"`
}

// MessageResponse is the body of mutations with nothing else to report.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// ============================================================================
// Passkey Ceremony Types
// ============================================================================

// PasskeyRegisterBeginRequest starts registration for a freshly created user.
type PasskeyRegisterBeginRequest struct {
	UserID string `json:"userId"`
}

// PasskeyRegisterFinishRequest submits the browser's attestation response.
type PasskeyRegisterFinishRequest struct {
	UserID       string          `json:"userId"`
	Credential   json.RawMessage `json:"credential" swaggertype:"object"`
	FriendlyName string          `json:"friendlyName,omitempty" example:"Work laptop"`
}

// PasskeyAuthenticateFinishRequest submits the browser's assertion response.
type PasskeyAuthenticateFinishRequest struct {
	Credential json.RawMessage `json:"credential" swaggertype:"object"`
}

// OptionsResponse carries WebAuthn options to hand to navigator.credentials.
type OptionsResponse struct {
	Success bool            `json:"success"`
	Options json.RawMessage `json:"options" swaggertype:"object"`
}

// ============================================================================
// Session Types
// ============================================================================

// SessionResponse is returned by login and refresh.
type SessionResponse struct {
	Success      bool   `json:"success"`
	User         User   `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest optionally names the refresh token to revoke alongside the
// bearer access token.
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// SessionProbeResponse reports whether the presented token, if any, is a
// live session.
type SessionProbeResponse struct {
	Success       bool  `json:"success"`
	Authenticated bool  `json:"authenticated"`
	User          *User `json:"user,omitempty"`
}

// ============================================================================
// Passkey Management Types
// ============================================================================

// Passkey is a registered credential as shown to its owner.
type Passkey struct {
	CredentialID string     `json:"credentialId"`
	FriendlyName string     `json:"friendlyName"`
	DeviceType   string     `json:"deviceType" example:"platform"`
	CreatedAt    time.Time  `json:"createdAt"`
	LastUsedAt   *time.Time `json:"lastUsedAt"`
}

// PasskeysResponse lists the caller's passkeys.
type PasskeysResponse struct {
	Success  bool      `json:"success"`
	Passkeys []Passkey `json:"passkeys"`
}

// ============================================================================
// Health Types
// ============================================================================

// HealthResponse is returned by /livez and /readyz (readyz adds Checks).
type HealthResponse struct {
	// Status is "ok" or "degraded".
	Status string `json:"status"`

	// Uptime is the service uptime (e.g., "1h23m45s").
	Uptime string `json:"uptime,omitempty"`

	Version string `json:"version,omitempty"`

	Checks *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency.
type HealthChecks struct {
	Database string `json:"database"`
	Signer   string `json:"signer"`
}

// ============================================================================
// JWKS Types
// ============================================================================

// JWKSResponse is the JSON Web Key Set. It is empty unless sessions are
// signed with EdDSA.
type JWKSResponse jwtx.JWKS
