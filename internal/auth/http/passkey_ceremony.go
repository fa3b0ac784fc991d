package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
)

// CeremonyHandler serves the WebAuthn registration and login ceremonies.
type CeremonyHandler struct {
	Registration   *service.RegistrationService
	Authentication *service.AuthenticationService
}

// HandleRegisterBegin handles POST /auth/passkey/register/begin
//
//	@Summary		Begin passkey registration
//	@Description	Returns PublicKeyCredentialCreationOptions for a user with no passkey yet.
//	@Tags			Passkeys
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PasskeyRegisterBeginRequest	true	"User to register for"
//	@Success		200		{object}	authsdk.OptionsResponse				"success, options"
//	@Failure		400		{object}	httpx.ErrorBody						"InvalidRequest"
//	@Failure		401		{object}	httpx.ErrorBody						"UserInactive"
//	@Failure		404		{object}	httpx.ErrorBody						"UserNotFound"
//	@Failure		409		{object}	httpx.ErrorBody						"PasskeyAlreadyRegistered"
//	@Router			/auth/passkey/register/begin [post].
func (h *CeremonyHandler) HandleRegisterBegin(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PasskeyRegisterBeginRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	if strings.TrimSpace(req.UserID) == "" {
		invalidRequest(w, "userId is required")
		return
	}

	options, err := h.Registration.Begin(r.Context(), req.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.OptionsResponse{Success: true, Options: options})
}

// HandleRegisterFinish handles POST /auth/passkey/register/finish
//
//	@Summary		Finish passkey registration
//	@Description	Verifies the attestation response and stores the credential.
//	@Tags			Passkeys
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PasskeyRegisterFinishRequest	true	"Attestation response"
//	@Success		200		{object}	authsdk.MessageResponse					"success, message"
//	@Failure		400		{object}	httpx.ErrorBody							"InvalidRequest, ChallengeNotFound, ChallengeExpired, AttestationInvalid"
//	@Failure		409		{object}	httpx.ErrorBody							"PasskeyAlreadyRegistered"
//	@Router			/auth/passkey/register/finish [post].
func (h *CeremonyHandler) HandleRegisterFinish(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PasskeyRegisterFinishRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	if strings.TrimSpace(req.UserID) == "" || len(req.Credential) == 0 {
		invalidRequest(w, "userId and credential are required")
		return
	}

	if _, err := h.Registration.Finish(r.Context(), req.UserID, req.Credential, req.FriendlyName); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Success: true, Message: "Passkey registered successfully"})
}

// HandleAuthenticateBegin handles POST /auth/passkey/authenticate/begin
//
//	@Summary		Begin passkey login
//	@Description	Returns PublicKeyCredentialRequestOptions for a discoverable login.
//	@Tags			Passkeys
//	@Produce		json
//	@Success		200	{object}	authsdk.OptionsResponse	"success, options"
//	@Failure		429	{object}	httpx.ErrorBody			"RateLimited"
//	@Router			/auth/passkey/authenticate/begin [post].
func (h *CeremonyHandler) HandleAuthenticateBegin(w http.ResponseWriter, r *http.Request) {
	options, err := h.Authentication.Begin(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.OptionsResponse{Success: true, Options: options})
}

// HandleAuthenticateFinish handles POST /auth/passkey/authenticate/finish
//
//	@Summary		Finish passkey login
//	@Description	Verifies the assertion and starts a session.
//	@Tags			Passkeys
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.PasskeyAuthenticateFinishRequest	true	"Assertion response"
//	@Success		200		{object}	authsdk.SessionResponse						"success, user, accessToken, refreshToken"
//	@Failure		400		{object}	httpx.ErrorBody								"InvalidRequest, ChallengeNotFound, ChallengeExpired"
//	@Failure		401		{object}	httpx.ErrorBody								"AuthenticationFailed, UserInactive"
//	@Failure		500		{object}	httpx.ErrorBody								"ServerMisconfigured"
//	@Router			/auth/passkey/authenticate/finish [post].
func (h *CeremonyHandler) HandleAuthenticateFinish(w http.ResponseWriter, r *http.Request) {
	var req authsdk.PasskeyAuthenticateFinishRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	if len(req.Credential) == 0 {
		invalidRequest(w, "credential is required")
		return
	}

	res, err := h.Authentication.Finish(r.Context(), req.Credential)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSession(res.User, res.Tokens))
}
