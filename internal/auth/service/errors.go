package service

import "errors"

// Ceremony failures.
var (
	ErrChallengeNotFound  = errors.New("challenge_not_found")
	ErrChallengeExpired   = errors.New("challenge_expired")
	ErrAttestationInvalid = errors.New("attestation_invalid")
	ErrAssertionInvalid   = errors.New("assertion_invalid")
	ErrCredentialNotFound = errors.New("credential_not_found")
	ErrCounterReplay      = errors.New("counter_replay")
)

// Session failures.
var (
	ErrNoToken                 = errors.New("no_token")
	ErrTokenMalformed          = errors.New("token_malformed")
	ErrTokenExpired            = errors.New("token_expired")
	ErrTokenRevoked            = errors.New("token_revoked")
	ErrInvalidRefresh          = errors.New("invalid_refresh_token")
	ErrInsufficientPermissions = errors.New("insufficient_permissions")
	ErrServerMisconfigured     = errors.New("server_misconfigured")
)

// Account failures.
var (
	ErrInvalidInput             = errors.New("invalid_input")
	ErrUserNotFound             = errors.New("user_not_found")
	ErrUserExists               = errors.New("user_exists")
	ErrUserInactive             = errors.New("user_inactive")
	ErrPasskeyAlreadyRegistered = errors.New("passkey_already_registered")
	ErrPasskeyNotFound          = errors.New("passkey_not_found")
	ErrLastPasskey              = errors.New("last_passkey")
)
