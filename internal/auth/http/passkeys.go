package http

import (
	"net/http"

	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
)

// PasskeysHandler lets a user manage their own passkeys.
type PasskeysHandler struct {
	UserService *service.UserService
}

// HandleList handles GET /auth/passkeys
//
//	@Summary		List passkeys
//	@Tags			Passkeys
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.PasskeysResponse	"success, passkeys"
//	@Failure		401	{object}	httpx.ErrorBody				"NoToken, InvalidToken, TokenExpired, TokenRevoked, UserInactive"
//	@Router			/auth/passkeys [get].
func (h *PasskeysHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	creds, err := h.UserService.ListPasskeys(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	out := make([]authsdk.Passkey, 0, len(creds))
	for _, c := range creds {
		out = append(out, toPasskey(c))
	}
	httpx.WriteJSON(w, http.StatusOK, authsdk.PasskeysResponse{Success: true, Passkeys: out})
}

// HandleDelete handles DELETE /auth/passkeys/{credentialId}
//
//	@Summary		Remove a passkey
//	@Description	Removes one of the caller's passkeys. The last passkey cannot be removed.
//	@Tags			Passkeys
//	@Security		BearerAuth
//	@Produce		json
//	@Param			credentialId	path		string					true	"Credential ID (base64url)"
//	@Success		200				{object}	authsdk.MessageResponse	"success, message"
//	@Failure		404				{object}	httpx.ErrorBody			"CredentialNotFound"
//	@Failure		409				{object}	httpx.ErrorBody			"LastPasskey"
//	@Router			/auth/passkeys/{credentialId} [delete].
func (h *PasskeysHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	if err := h.UserService.DeletePasskey(r.Context(), p.UserID, r.PathValue("credentialId")); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Success: true, Message: "Passkey removed"})
}
