package http

import (
	"errors"
	"net/http"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

func principalOf(id domain.Identity) httpx.Principal {
	return httpx.Principal{
		UserID:   id.UserID,
		Username: id.Username,
		Email:    id.Email,
		Role:     string(id.Role),
	}
}

// RequireAuth rejects requests without a live session and attaches the
// caller's identity and bearer token to the context.
func RequireAuth(sessions *service.SessionAuthenticator) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := httpx.BearerToken(r)
			id, err := sessions.Authenticate(r.Context(), token)
			if err != nil {
				writeServiceError(w, r, err)
				return
			}

			ctx := httpx.WithPrincipal(r.Context(), principalOf(id), token)
			ctx = slogx.With(ctx, "user_id", id.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...domain.Role) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p, ok := httpx.PrincipalFromContext(r.Context())
			if !ok {
				authsdk.ErrNoToken.WriteError(w)
				return
			}
			if err := service.Authorize(identityOf(p), roles...); err != nil {
				slogx.FromContext(r.Context()).Info("role check failed",
					"role", p.Role,
					"allowed", roles,
				)
				writeServiceError(w, r, err)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// OptionalAuth attaches the caller's identity when a live session is
// presented and otherwise lets the request through anonymously.
func OptionalAuth(sessions *service.SessionAuthenticator) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, _ := httpx.BearerToken(r)
			res := sessions.Optional(r.Context(), token)
			if !res.Authenticated {
				slogx.FromContext(r.Context()).Debug("continuing anonymously",
					"reason", optionalReason(res.Err),
				)
				next.ServeHTTP(w, r)
				return
			}

			ctx := httpx.WithPrincipal(r.Context(), principalOf(res.Identity), token)
			ctx = slogx.With(ctx, "user_id", res.Identity.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// optionalReason names why an optional authentication fell through. Service
// sentinels already read as snake_case reasons.
func optionalReason(err error) string {
	switch {
	case err == nil, errors.Is(err, service.ErrNoToken):
		return "no_token"
	case errors.Is(err, service.ErrTokenMalformed):
		return service.ErrTokenMalformed.Error()
	case errors.Is(err, service.ErrTokenExpired):
		return service.ErrTokenExpired.Error()
	case errors.Is(err, service.ErrTokenRevoked):
		return service.ErrTokenRevoked.Error()
	case errors.Is(err, service.ErrUserInactive):
		return service.ErrUserInactive.Error()
	case errors.Is(err, service.ErrServerMisconfigured):
		return service.ErrServerMisconfigured.Error()
	default:
		return "error"
	}
}
