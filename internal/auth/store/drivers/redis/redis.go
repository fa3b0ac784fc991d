// Package redis keeps the short-lived auth state (ceremony challenges and the
// token revocation list) in Redis so it is shared between replicas. Users and
// passkeys stay in the primary store.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/go-redis/redis/v8"
)

const defaultPrefix = "dynaform:auth:"

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Overlay wraps base so that Challenges and RevokedTokens are served from
// Redis. Transactions opened on the result are plain base transactions.
type Overlay struct {
	store.Store
	client  *redis.Client
	chal    *Challenges
	revoked *RevokedTokens
}

// NewOverlay wraps base with Redis-backed challenges and revocations. Close
// on the overlay closes both base and client.
func NewOverlay(base store.Store, client *redis.Client) *Overlay {
	return &Overlay{
		Store:   base,
		client:  client,
		chal:    NewChallenges(client, defaultPrefix),
		revoked: NewRevokedTokens(client, defaultPrefix),
	}
}

func (o *Overlay) Challenges() store.Challenges       { return o.chal }
func (o *Overlay) RevokedTokens() store.RevokedTokens { return o.revoked }

// Ping checks both the base store and Redis.
func (o *Overlay) Ping(ctx context.Context) error {
	if err := o.Store.Ping(ctx); err != nil {
		return err
	}
	return o.client.Ping(ctx).Err()
}

func (o *Overlay) Close() error {
	err := o.Store.Close()
	if cerr := o.client.Close(); err == nil {
		err = cerr
	}
	return err
}

// ttlBetween never returns less than a millisecond; a zero TTL means "no
// expiry" to Redis.
func ttlBetween(from, to time.Time) time.Duration {
	ttl := to.Sub(from)
	if ttl < time.Millisecond {
		return time.Millisecond
	}
	return ttl
}
