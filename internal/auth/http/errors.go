package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

// serviceErrors maps service failures to the wire envelope. Order matters
// only in that the first match wins.
var serviceErrors = []struct {
	err error
	api *authsdk.APIError
}{
	{service.ErrChallengeNotFound, authsdk.NewAPIError(http.StatusBadRequest, authsdk.KindChallengeNotFound, "Challenge not found or already used.")},
	{service.ErrChallengeExpired, authsdk.NewAPIError(http.StatusBadRequest, authsdk.KindChallengeExpired, "Challenge has expired. Please start again.")},
	{service.ErrAttestationInvalid, authsdk.NewAPIError(http.StatusBadRequest, authsdk.KindAttestationInvalid, "Passkey registration could not be verified.")},
	{service.ErrAssertionInvalid, authsdk.ErrAuthenticationFailed},
	{service.ErrCredentialNotFound, authsdk.ErrAuthenticationFailed},
	{service.ErrCounterReplay, authsdk.ErrAuthenticationFailed},
	{service.ErrUserNotFound, authsdk.NewAPIError(http.StatusNotFound, authsdk.KindUserNotFound, "User not found.")},
	{service.ErrUserExists, authsdk.NewAPIError(http.StatusConflict, authsdk.KindUserExists, "A user with that username or email already exists.")},
	{service.ErrPasskeyAlreadyRegistered, authsdk.NewAPIError(http.StatusConflict, authsdk.KindPasskeyAlreadyRegistered, "A passkey is already registered for this user.")},
	{service.ErrLastPasskey, authsdk.NewAPIError(http.StatusConflict, authsdk.KindLastPasskey, "The last passkey on an account cannot be removed.")},
	{service.ErrPasskeyNotFound, authsdk.NewAPIError(http.StatusNotFound, authsdk.KindCredentialNotFound, "Passkey not found.")},
	{service.ErrNoToken, authsdk.ErrNoToken},
	{service.ErrTokenMalformed, authsdk.NewAPIError(http.StatusUnauthorized, authsdk.KindInvalidToken, "Invalid access token.")},
	{service.ErrTokenExpired, authsdk.NewAPIError(http.StatusUnauthorized, authsdk.KindTokenExpired, "Access token has expired.")},
	{service.ErrTokenRevoked, authsdk.NewAPIError(http.StatusUnauthorized, authsdk.KindTokenRevoked, "Access token has been revoked.")},
	{service.ErrInvalidRefresh, authsdk.NewAPIError(http.StatusUnauthorized, authsdk.KindInvalidRefreshToken, "Refresh token is invalid or has already been used.")},
	{service.ErrUserInactive, authsdk.NewAPIError(http.StatusUnauthorized, authsdk.KindUserInactive, "User account is inactive.")},
	{service.ErrInsufficientPermissions, authsdk.ErrInsufficientPermissions},
	{service.ErrServerMisconfigured, authsdk.ErrServerMisconfigured},
}

// writeServiceError writes the envelope for err. Invalid input keeps the
// service's own description; anything unrecognised is logged and hidden.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, service.ErrInvalidInput) {
		msg := strings.TrimPrefix(err.Error(), service.ErrInvalidInput.Error()+": ")
		if msg == err.Error() {
			msg = authsdk.ErrInvalidRequest.Message
		}
		authsdk.NewAPIError(http.StatusBadRequest, authsdk.KindInvalidRequest, msg).WriteError(w)
		return
	}

	for _, e := range serviceErrors {
		if errors.Is(err, e.err) {
			if e.api.StatusCode == http.StatusInternalServerError {
				slogx.FromContext(r.Context()).Error("request failed", "error", err)
			}
			e.api.WriteError(w)
			return
		}
	}

	slogx.FromContext(r.Context()).Error("unhandled error", "error", err)
	authsdk.ErrServerError.WriteError(w)
}

// invalidRequest writes a 400 InvalidRequest with message.
func invalidRequest(w http.ResponseWriter, message string) {
	authsdk.NewAPIError(http.StatusBadRequest, authsdk.KindInvalidRequest, message).WriteError(w)
}
