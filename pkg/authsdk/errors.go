package authsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/aussiebroadwan/dynaform/pkg/httpx"
)

// ============================================================================
// Error Kinds
// ============================================================================

// Error kinds carried in the "error" field of the failure envelope.
const (
	KindInvalidRequest           = "InvalidRequest"
	KindChallengeNotFound        = "ChallengeNotFound"
	KindChallengeExpired         = "ChallengeExpired"
	KindAttestationInvalid       = "AttestationInvalid"
	KindAuthenticationFailed     = "AuthenticationFailed"
	KindUserNotFound             = "UserNotFound"
	KindUserExists               = "UserExists"
	KindPasskeyAlreadyRegistered = "PasskeyAlreadyRegistered"
	KindLastPasskey              = "LastPasskey"
	KindCredentialNotFound       = "CredentialNotFound"
	KindNoToken                  = "NoToken"
	KindInvalidToken             = "InvalidToken"
	KindTokenExpired             = "TokenExpired"
	KindTokenRevoked             = "TokenRevoked"
	KindInvalidRefreshToken      = "InvalidRefreshToken"
	KindUserInactive             = "UserInactive"
	KindInsufficientPermissions  = "InsufficientPermissions"
	KindRateLimited              = "RateLimited"
	KindServerMisconfigured      = "ServerMisconfigured"
	KindServerError              = "ServerError"
)

// ============================================================================
// APIError
// ============================================================================

// APIError is the failure envelope returned by every endpoint. The server
// writes it and the SDK client decodes it, so callers can branch on Kind.
type APIError struct {
	// StatusCode is the HTTP status the error was returned with.
	StatusCode int `json:"-"`

	// Kind is the stable machine-readable error name (e.g. "TokenExpired").
	Kind string `json:"error"`

	// Message is a human-readable description.
	Message string `json:"message"`
}

// NewAPIError builds an APIError.
func NewAPIError(statusCode int, kind, message string) *APIError {
	return &APIError{StatusCode: statusCode, Kind: kind, Message: message}
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// WriteError writes the envelope with StatusCode.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteError(w, e.StatusCode, e.Kind, e.Message)
}

// IsKind reports whether err is an APIError of the given kind.
func IsKind(err error, kind string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

// ============================================================================
// Predefined Errors
// ============================================================================

var (
	// ErrInvalidRequest is returned for unparsable bodies and missing fields.
	ErrInvalidRequest = NewAPIError(http.StatusBadRequest, KindInvalidRequest,
		"The request body is malformed or missing required fields.")

	// ErrAuthenticationFailed covers every assertion failure with one message.
	ErrAuthenticationFailed = NewAPIError(http.StatusUnauthorized, KindAuthenticationFailed,
		"Passkey authentication failed.")

	// ErrNoToken is returned when no bearer token was presented.
	ErrNoToken = NewAPIError(http.StatusUnauthorized, KindNoToken,
		"Authentication required.")

	// ErrInsufficientPermissions is returned when the caller's role is not allowed.
	ErrInsufficientPermissions = NewAPIError(http.StatusForbidden, KindInsufficientPermissions,
		"You do not have permission to perform this action.")

	// ErrServerMisconfigured is returned when session signing is not configured.
	ErrServerMisconfigured = NewAPIError(http.StatusInternalServerError, KindServerMisconfigured,
		"Session signing is not configured.")

	// ErrServerError is returned for unexpected failures.
	ErrServerError = NewAPIError(http.StatusInternalServerError, KindServerError,
		"Internal server error.")
)

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// parseErrorResponse turns a non-2xx response into an *APIError. Bodies that
// are not the envelope still yield an APIError keyed on the status code.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var env httpx.ErrorBody
	if err := json.Unmarshal(body, &env); err == nil && env.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Kind:       env.Error,
			Message:    env.Message,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Kind:       KindServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
