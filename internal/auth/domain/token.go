package domain

import "time"

// TokenPair is a freshly minted session.
type TokenPair struct {
	AccessToken      string
	RefreshToken     string
	AccessExpiresAt  time.Time
	RefreshExpiresAt time.Time
}

// RevokedToken blocks a token until its natural expiry.
type RevokedToken struct {
	TokenHash string // cryptox.FingerprintToken of the raw token
	TokenType string // "access" or "refresh"
	UserID    string
	ExpiresAt time.Time
	RevokedAt time.Time
}
