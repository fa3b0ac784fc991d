package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite/gen"
)

type revokedTokensRepo struct {
	q *gen.Queries
}

func (r *revokedTokensRepo) RevokeToken(ctx context.Context, t domain.RevokedToken) (bool, error) {
	n, err := r.q.RevokeToken(ctx, gen.RevokeTokenParams{
		TokenHash: t.TokenHash,
		TokenType: t.TokenType,
		UserID:    t.UserID,
		ExpiresAt: toMillis(t.ExpiresAt),
		RevokedAt: toMillis(t.RevokedAt),
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *revokedTokensRepo) IsTokenRevoked(ctx context.Context, hash string, now time.Time) (bool, error) {
	exists, err := r.q.IsTokenRevoked(ctx, gen.IsTokenRevokedParams{
		TokenHash: hash,
		ExpiresAt: toMillis(now),
	})
	if err != nil {
		return false, err
	}
	return exists == 1, nil
}

func (r *revokedTokensRepo) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) error {
	return r.q.DeleteExpiredRevokedTokens(ctx, toMillis(now))
}
