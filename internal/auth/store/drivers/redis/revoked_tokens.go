package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/go-redis/redis/v8"
)

type RevokedTokens struct {
	client *redis.Client
	prefix string
}

func NewRevokedTokens(client *redis.Client, prefix string) *RevokedTokens {
	return &RevokedTokens{client: client, prefix: prefix + "revoked:"}
}

// RevokeToken stores the token's expiry under its hash. The key lives until
// the token would have expired anyway.
func (r *RevokedTokens) RevokeToken(ctx context.Context, t domain.RevokedToken) (bool, error) {
	value := strconv.FormatInt(t.ExpiresAt.UnixMilli(), 10)
	return r.client.SetNX(ctx, r.prefix+t.TokenHash, value, ttlBetween(t.RevokedAt, t.ExpiresAt)).Result()
}

func (r *RevokedTokens) IsTokenRevoked(ctx context.Context, hash string, now time.Time) (bool, error) {
	value, err := r.client.Get(ctx, r.prefix+hash).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	expiresAt, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return false, err
	}
	return now.UnixMilli() < expiresAt, nil
}

// DeleteExpiredRevokedTokens is a no-op; keys carry their own TTL.
func (r *RevokedTokens) DeleteExpiredRevokedTokens(ctx context.Context, now time.Time) error {
	return nil
}
