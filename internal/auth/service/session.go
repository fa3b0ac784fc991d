package service

import (
	"context"
	"errors"
	"slices"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/pkg/cryptox"
)

// SessionAuthenticator resolves bearer tokens to identities. Unlike
// TokenService.VerifyAccess it consults the revocation list and the current
// user record, so deactivation and logout take effect immediately.
type SessionAuthenticator struct {
	Tokens      *TokenService
	Revocations *RevocationService
	Store       store.Store
}

// Authenticate validates token and returns the identity of its owner as
// currently stored.
func (a *SessionAuthenticator) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	if token == "" {
		return domain.Identity{}, ErrNoToken
	}

	claims, err := a.Tokens.VerifyAccess(token)
	if err != nil {
		return domain.Identity{}, err
	}

	revoked, err := a.Revocations.IsRevoked(ctx, cryptox.FingerprintToken(token))
	if err != nil {
		return domain.Identity{}, err
	}
	if revoked {
		return domain.Identity{}, ErrTokenRevoked
	}

	user, err := a.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Identity{}, ErrUserInactive
		}
		return domain.Identity{}, err
	}
	if !user.Active {
		return domain.Identity{}, ErrUserInactive
	}

	return user.Identity(), nil
}

// OptionalIdentity is the outcome of an optional authentication. Err records
// why the caller is anonymous; it never blocks the request.
type OptionalIdentity struct {
	Identity      domain.Identity
	Authenticated bool
	Err           error
}

// Optional runs the same checks as Authenticate but folds every failure into
// the result instead of returning it.
func (a *SessionAuthenticator) Optional(ctx context.Context, token string) OptionalIdentity {
	id, err := a.Authenticate(ctx, token)
	if err != nil {
		return OptionalIdentity{Err: err}
	}
	return OptionalIdentity{Identity: id, Authenticated: true}
}

// Authorize checks id against the allowed roles.
func Authorize(id domain.Identity, allowed ...domain.Role) error {
	if slices.Contains(allowed, id.Role) {
		return nil
	}
	return ErrInsufficientPermissions
}
