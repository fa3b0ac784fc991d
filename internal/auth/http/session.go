package http

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
)

// SessionHandler serves refresh, logout and the session probe.
type SessionHandler struct {
	TokenService *service.TokenService
	UserService  *service.UserService
}

// HandleRefresh handles POST /auth/refresh
//
//	@Summary		Refresh a session
//	@Description	Exchanges a refresh token for a new pair. The presented refresh token is revoked.
//	@Tags			Session
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	authsdk.SessionResponse	"success, user, accessToken, refreshToken"
//	@Failure		400		{object}	httpx.ErrorBody			"InvalidRequest"
//	@Failure		401		{object}	httpx.ErrorBody			"InvalidRefreshToken, UserInactive"
//	@Router			/auth/refresh [post].
func (h *SessionHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RefreshRequest
	if !decodeBody(w, r, &req, false) {
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		invalidRequest(w, "refreshToken is required")
		return
	}

	user, pair, err := h.TokenService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSession(user, pair))
}

// HandleLogout handles POST /auth/logout
//
//	@Summary		Log out
//	@Description	Revokes the bearer access token and, when given, the caller's refresh token.
//	@Tags			Session
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.LogoutRequest	false	"Refresh token to revoke"
//	@Success		200		{object}	authsdk.MessageResponse	"success, message"
//	@Failure		401		{object}	httpx.ErrorBody			"NoToken, InvalidToken, TokenExpired, TokenRevoked"
//	@Router			/auth/logout [post].
func (h *SessionHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	var req authsdk.LogoutRequest
	if !decodeBody(w, r, &req, true) {
		return
	}

	ctx := r.Context()
	p, _ := httpx.PrincipalFromContext(ctx)
	if err := h.TokenService.Logout(ctx, identityOf(p), httpx.TokenFromContext(ctx), req.RefreshToken); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Success: true, Message: "Logged out"})
}

// HandleProbe handles GET /auth/session
//
//	@Summary		Probe the session
//	@Description	Reports whether the presented bearer token, if any, is a live session. Never fails for a bad token.
//	@Tags			Session
//	@Produce		json
//	@Success		200	{object}	authsdk.SessionProbeResponse	"success, authenticated, user"
//	@Router			/auth/session [get].
func (h *SessionHandler) HandleProbe(w http.ResponseWriter, r *http.Request) {
	resp := authsdk.SessionProbeResponse{Success: true}

	if p, ok := httpx.PrincipalFromContext(r.Context()); ok {
		user, err := h.UserService.GetUser(r.Context(), p.UserID)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		u := toUser(user)
		resp.Authenticated = true
		resp.User = &u
	}

	httpx.WriteJSON(w, http.StatusOK, resp)
}
