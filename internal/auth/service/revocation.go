package service

import (
	"context"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/pkg/jwtx"
)

// RevocationService tracks tokens invalidated before their natural expiry.
// Records are keyed by token fingerprint and are only meaningful until the
// token's own exp.
type RevocationService struct {
	Store store.Store
	Clock Clock
}

// Add records key as revoked until expiresAt, reporting whether this call
// inserted the record. Concurrent adds of the same key see one winner.
func (s *RevocationService) Add(
	ctx context.Context,
	key string,
	kind jwtx.TokenType,
	userID string,
	expiresAt time.Time,
) (bool, error) {
	return s.Store.RevokedTokens().RevokeToken(ctx, domain.RevokedToken{
		TokenHash: key,
		TokenType: string(kind),
		UserID:    userID,
		ExpiresAt: expiresAt.UTC(),
		RevokedAt: s.Clock.now(),
	})
}

// IsRevoked reports whether an unexpired revocation exists for key.
func (s *RevocationService) IsRevoked(ctx context.Context, key string) (bool, error) {
	return s.Store.RevokedTokens().IsTokenRevoked(ctx, key, s.Clock.now())
}

// Purge removes records whose tokens have expired.
func (s *RevocationService) Purge(ctx context.Context) error {
	return s.Store.RevokedTokens().DeleteExpiredRevokedTokens(ctx, s.Clock.now())
}
