package http

import (
	"net/http"

	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
)

// AccountHandler serves sign-up, the caller's profile and admin account actions.
type AccountHandler struct {
	UserService *service.UserService
}

// HandleRegister handles POST /auth/register
//
//	@Summary		Register an account
//	@Description	Creates an active account with no credential. The returned userId is used to register the first passkey.
//	@Tags			Account
//	@Accept			json
//	@Produce		json
//	@Param			request	body		authsdk.RegisterRequest		true	"Account details"
//	@Success		201		{object}	authsdk.RegisterResponse	"success, message, userId"
//	@Failure		400		{object}	httpx.ErrorBody				"InvalidRequest"
//	@Failure		409		{object}	httpx.ErrorBody				"UserExists"
//	@Failure		429		{object}	httpx.ErrorBody				"RateLimited"
//	@Router			/auth/register [post].
func (h *AccountHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req authsdk.RegisterRequest
	if !decodeBody(w, r, &req, false) {
		return
	}

	user, err := h.UserService.Register(r.Context(), service.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Username: req.Username,
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, authsdk.RegisterResponse{
		Success: true,
		Message: "Account created. Register a passkey to finish signing up.",
		UserID:  user.ID,
	})
}

// HandleMe handles GET /auth/me
//
//	@Summary		Current user
//	@Description	Returns the authenticated user as currently stored.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	authsdk.UserResponse	"success, user"
//	@Failure		401	{object}	httpx.ErrorBody			"NoToken, InvalidToken, TokenExpired, TokenRevoked, UserInactive"
//	@Router			/auth/me [get].
func (h *AccountHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	p, _ := httpx.PrincipalFromContext(r.Context())

	user, err := h.UserService.GetUser(r.Context(), p.UserID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{Success: true, User: toUser(user)})
}

// HandleDeactivate handles POST /auth/users/{id}/deactivate
//
//	@Summary		Deactivate a user
//	@Description	Disables an account. Its sessions stop working at their next request. Requires the admin role.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		string					true	"User ID"
//	@Success		200	{object}	authsdk.MessageResponse	"success, message"
//	@Failure		401	{object}	httpx.ErrorBody			"NoToken, InvalidToken, TokenExpired, TokenRevoked, UserInactive"
//	@Failure		403	{object}	httpx.ErrorBody			"InsufficientPermissions"
//	@Failure		404	{object}	httpx.ErrorBody			"UserNotFound"
//	@Router			/auth/users/{id}/deactivate [post].
func (h *AccountHandler) HandleDeactivate(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")
	if userID == "" {
		invalidRequest(w, "User ID is required")
		return
	}

	if err := h.UserService.Deactivate(r.Context(), userID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Success: true, Message: "User deactivated"})
}
