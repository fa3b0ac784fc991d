package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default session lifetimes.
const (
	DefaultAccessTokenTTL  = 15 * time.Minute
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// TokenType distinguishes access tokens from refresh tokens so one can never
// be replayed in place of the other.
type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims carried by every session token. Refresh tokens only populate the
// registered claims and Type.
type Claims struct {
	jwt.RegisteredClaims

	Type     TokenType `json:"typ"`
	Username string    `json:"username,omitempty"`
	Email    string    `json:"email,omitempty"`
	Role     string    `json:"role,omitempty"`
}

// NewAccessClaims builds the claims for a short-lived access token.
func NewAccessClaims(subject, username, email, role, issuer string, ttl time.Duration, now time.Time) Claims {
	c := newRegistered(subject, issuer, ttl, now)
	c.Type = TypeAccess
	c.Username = username
	c.Email = email
	c.Role = role
	return c
}

// NewRefreshClaims builds the claims for a refresh token. Only the subject is
// embedded to keep a leaked refresh token as uninformative as possible.
func NewRefreshClaims(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	c := newRegistered(subject, issuer, ttl, now)
	c.Type = TypeRefresh
	return c
}

func newRegistered(subject, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
	}
}

// NewJTI returns a fresh random token identifier.
func NewJTI() string {
	return uuid.NewString()
}

// Expiry returns the exp claim or the zero time when absent.
func (c Claims) Expiry() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}
