package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/pkg/cryptox"
	"github.com/aussiebroadwan/dynaform/pkg/jwtx"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

// SessionKeys holds the signing material for both token kinds. Access and
// refresh keys are always distinct so neither token verifies as the other.
type SessionKeys struct {
	Access  jwtx.KeyPair
	Refresh jwtx.KeyPair
}

// NewSessionKeys derives access and refresh keys for alg. When
// refreshSecret is empty the refresh key is derived from secret under its
// own purpose label.
func NewSessionKeys(alg string, secret, refreshSecret []byte, issuer string, clock Clock) (*SessionKeys, error) {
	opts := jwtx.VerifyOptions{Issuer: issuer, Now: clock.now}

	access, err := jwtx.NewKeyPair(alg, secret, jwtx.TypeAccess, opts)
	if err != nil {
		return nil, fmt.Errorf("access key: %w", err)
	}

	if len(refreshSecret) == 0 {
		refreshSecret = secret
	}
	refresh, err := jwtx.NewKeyPair(alg, refreshSecret, jwtx.TypeRefresh, opts)
	if err != nil {
		return nil, fmt.Errorf("refresh key: %w", err)
	}

	return &SessionKeys{Access: access, Refresh: refresh}, nil
}

// TokenService mints, verifies, rotates and revokes session tokens.
// A nil Keys means no signing secret was configured: every operation fails
// with ErrServerMisconfigured rather than falling back to a default key.
type TokenService struct {
	Keys        *SessionKeys
	Store       store.Store
	Revocations *RevocationService
	Issuer      string
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	Clock       Clock
}

func (s *TokenService) keys() (*SessionKeys, error) {
	if s == nil || s.Keys == nil {
		return nil, ErrServerMisconfigured
	}
	return s.Keys, nil
}

// Ready reports ErrServerMisconfigured when tokens cannot be issued.
func (s *TokenService) Ready() error {
	_, err := s.keys()
	return err
}

// JWKS publishes the public halves of asymmetric session keys. HS256 keys
// are never published, so the set is empty for them.
func (s *TokenService) JWKS() jwtx.JWKS {
	keys, err := s.keys()
	if err != nil {
		return jwtx.PublicJWKS()
	}
	return jwtx.PublicJWKS(keys.Access.Signer, keys.Refresh.Signer)
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL <= 0 {
		return jwtx.DefaultAccessTokenTTL
	}
	return s.AccessTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL <= 0 {
		return jwtx.DefaultRefreshTokenTTL
	}
	return s.RefreshTTL
}

// Issue mints a fresh access/refresh pair for user.
func (s *TokenService) Issue(ctx context.Context, user domain.User) (domain.TokenPair, error) {
	keys, err := s.keys()
	if err != nil {
		return domain.TokenPair{}, err
	}
	now := s.Clock.now()

	accessClaims := jwtx.NewAccessClaims(user.ID, user.Username, user.Email, string(user.Role), s.Issuer, s.accessTTL(), now)
	access, err := keys.Access.Signer.Sign(accessClaims)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refreshClaims := jwtx.NewRefreshClaims(user.ID, s.Issuer, s.refreshTTL(), now)
	refresh, err := keys.Refresh.Signer.Sign(refreshClaims)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign refresh token: %w", err)
	}

	return domain.TokenPair{
		AccessToken:      access,
		RefreshToken:     refresh,
		AccessExpiresAt:  accessClaims.Expiry(),
		RefreshExpiresAt: refreshClaims.Expiry(),
	}, nil
}

// VerifyAccess checks signature, type, issuer and expiry of an access
// token. Revocation is not consulted here.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	keys, err := s.keys()
	if err != nil {
		return jwtx.Claims{}, err
	}
	claims, err := keys.Access.Verifier.Verify(token)
	if err != nil {
		if errors.Is(err, jwtx.ErrExpired) {
			return jwtx.Claims{}, ErrTokenExpired
		}
		return jwtx.Claims{}, fmt.Errorf("%w: %w", ErrTokenMalformed, err)
	}
	return claims, nil
}

// Refresh rotates a refresh token: the presented token is revoked and a new
// pair is issued. Each refresh token can be used once; of two concurrent
// rotations only the one that records the revocation succeeds.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.User, domain.TokenPair, error) {
	keys, err := s.keys()
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	l := slogx.FromContext(ctx)

	claims, err := keys.Refresh.Verifier.Verify(refreshToken)
	if err != nil {
		l.Debug("refresh token rejected", slog.String("error", err.Error()))
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}

	fingerprint := cryptox.FingerprintToken(refreshToken)
	revoked, err := s.Revocations.IsRevoked(ctx, fingerprint)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	if revoked {
		l.Info("revoked refresh token presented", slog.String("user_id", claims.Subject))
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
		}
		return domain.User{}, domain.TokenPair{}, err
	}
	if !user.Active {
		return domain.User{}, domain.TokenPair{}, ErrUserInactive
	}

	inserted, err := s.Revocations.Add(ctx, fingerprint, jwtx.TypeRefresh, user.ID, claims.Expiry())
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	if !inserted {
		l.Info("refresh token rotated concurrently", slog.String("user_id", user.ID))
		return domain.User{}, domain.TokenPair{}, ErrInvalidRefresh
	}

	pair, err := s.Issue(ctx, user)
	if err != nil {
		return domain.User{}, domain.TokenPair{}, err
	}
	return user, pair, nil
}

// Revoke blocks token until its natural expiry. Tokens that do not verify
// under either key (expired, foreign or garbage) are ignored. Revoking the
// same token twice is harmless.
func (s *TokenService) Revoke(ctx context.Context, token string) error {
	claims, ok, err := s.identify(token)
	if err != nil || !ok {
		return err
	}
	_, err = s.Revocations.Add(ctx, cryptox.FingerprintToken(token), claims.Type, claims.Subject, claims.Expiry())
	return err
}

// Logout revokes the caller's access token and, when it belongs to the same
// user, the refresh token from the request body.
func (s *TokenService) Logout(ctx context.Context, who domain.Identity, accessToken, refreshToken string) error {
	if err := s.Revoke(ctx, accessToken); err != nil {
		return err
	}
	if refreshToken == "" {
		return nil
	}

	claims, ok, err := s.identify(refreshToken)
	if err != nil || !ok {
		return err
	}
	if claims.Type != jwtx.TypeRefresh || claims.Subject != who.UserID {
		slogx.FromContext(ctx).Warn("logout with a refresh token of another session ignored",
			slog.String("user_id", who.UserID),
			slog.String("token_subject", claims.Subject),
		)
		return nil
	}
	_, err = s.Revocations.Add(ctx, cryptox.FingerprintToken(refreshToken), jwtx.TypeRefresh, claims.Subject, claims.Expiry())
	return err
}

// identify verifies token as an access token, then as a refresh token.
func (s *TokenService) identify(token string) (jwtx.Claims, bool, error) {
	keys, err := s.keys()
	if err != nil {
		return jwtx.Claims{}, false, err
	}
	if claims, err := keys.Access.Verifier.Verify(token); err == nil {
		return claims, true, nil
	}
	if claims, err := keys.Refresh.Verifier.Verify(token); err == nil {
		return claims, true, nil
	}
	return jwtx.Claims{}, false, nil
}
