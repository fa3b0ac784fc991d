package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/go-redis/redis/v8"
)

// ChallengeExpiryGrace keeps a challenge key alive past its expiry so a late
// consume still finds it and reports the ceremony as expired rather than
// unknown.
const ChallengeExpiryGrace = time.Minute

// Challenges stores ceremony challenges as JSON under one key each.
type Challenges struct {
	client *redis.Client
	prefix string
}

// NewChallenges returns a challenge repository whose keys start with prefix.
func NewChallenges(client *redis.Client, prefix string) *Challenges {
	return &Challenges{client: client, prefix: prefix + "challenge:"}
}

type challengeRecord struct {
	Value     []byte `json:"value"`
	Kind      string `json:"kind"`
	UserID    string `json:"user_id,omitempty"`
	Session   []byte `json:"session,omitempty"`
	CreatedAt int64  `json:"created_at"`
	ExpiresAt int64  `json:"expires_at"`
}

func (c *Challenges) CreateChallenge(ctx context.Context, ch domain.Challenge) error {
	data, err := json.Marshal(challengeRecord{
		Value:     ch.Value,
		Kind:      string(ch.Kind),
		UserID:    ch.UserID,
		Session:   ch.Session,
		CreatedAt: ch.CreatedAt.UnixMilli(),
		ExpiresAt: ch.ExpiresAt.UnixMilli(),
	})
	if err != nil {
		return err
	}

	ttl := ttlBetween(ch.CreatedAt, ch.ExpiresAt) + ChallengeExpiryGrace
	ok, err := c.client.SetNX(ctx, c.prefix+ch.ID, data, ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return store.ErrAlreadyExists
	}
	return nil
}

// ConsumeChallenge uses GETDEL so concurrent consumers race on a single
// server-side operation.
func (c *Challenges) ConsumeChallenge(ctx context.Context, id string) (domain.Challenge, error) {
	data, err := c.client.GetDel(ctx, c.prefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.Challenge{}, store.ErrNotFound
		}
		return domain.Challenge{}, err
	}

	var rec challengeRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return domain.Challenge{}, err
	}
	return domain.Challenge{
		ID:        id,
		Value:     rec.Value,
		Kind:      domain.CeremonyKind(rec.Kind),
		UserID:    rec.UserID,
		Session:   rec.Session,
		CreatedAt: time.UnixMilli(rec.CreatedAt).UTC(),
		ExpiresAt: time.UnixMilli(rec.ExpiresAt).UTC(),
	}, nil
}

// DeleteExpiredChallenges is a no-op; keys carry their own TTL, which
// outlives ExpiresAt by ChallengeExpiryGrace.
func (c *Challenges) DeleteExpiredChallenges(ctx context.Context, now time.Time) error {
	return nil
}
