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
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

// DefaultChallengeTTL bounds how long a ceremony may stay open.
const DefaultChallengeTTL = 5 * time.Minute

// ChallengeService issues and consumes one-time ceremony challenges.
type ChallengeService struct {
	Store store.Store
	TTL   time.Duration
	Clock Clock
}

func (s *ChallengeService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultChallengeTTL
	}
	return s.TTL
}

// Issue creates a challenge of kind, optionally bound to userID. prepare is
// handed the raw challenge bytes and returns the verifier session persisted
// alongside; a nil prepare stores no session.
//
// The ceremony id is the base64url form of the raw bytes, which is also what
// the client echoes back in clientDataJSON.
func (s *ChallengeService) Issue(
	ctx context.Context,
	kind domain.CeremonyKind,
	userID string,
	prepare func(raw []byte) ([]byte, error),
) (domain.Challenge, error) {
	raw, err := cryptox.RandomBytes(cryptox.ChallengeSize)
	if err != nil {
		return domain.Challenge{}, err
	}

	var session []byte
	if prepare != nil {
		if session, err = prepare(raw); err != nil {
			return domain.Challenge{}, err
		}
	}

	now := s.Clock.now()
	ch := domain.Challenge{
		ID:        cryptox.EncodeID(raw),
		Value:     raw,
		Kind:      kind,
		UserID:    userID,
		Session:   session,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl()),
	}
	if err := s.Store.Challenges().CreateChallenge(ctx, ch); err != nil {
		return domain.Challenge{}, fmt.Errorf("store challenge: %w", err)
	}
	return ch, nil
}

// Consume removes the challenge and returns it. A second consume, a
// challenge of another kind and an unknown id are all ErrChallengeNotFound.
// A challenge past its expiry is still removed but yields ErrChallengeExpired.
func (s *ChallengeService) Consume(ctx context.Context, id string, kind domain.CeremonyKind) (domain.Challenge, error) {
	l := slogx.FromContext(ctx)

	ch, err := s.Store.Challenges().ConsumeChallenge(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("challenge not found", slog.String("kind", string(kind)))
			return domain.Challenge{}, ErrChallengeNotFound
		}
		return domain.Challenge{}, err
	}

	if ch.Kind != kind {
		l.Info("challenge used for the wrong ceremony",
			slog.String("expected", string(kind)),
			slog.String("actual", string(ch.Kind)),
		)
		return domain.Challenge{}, ErrChallengeNotFound
	}

	if now := s.Clock.now(); ch.Expired(now) {
		l.Info("challenge expired",
			slog.String("kind", string(kind)),
			slog.Time("expired_at", ch.ExpiresAt),
		)
		return domain.Challenge{}, ErrChallengeExpired
	}

	return ch, nil
}

// Purge deletes challenges that expired before now.
func (s *ChallengeService) Purge(ctx context.Context) error {
	return s.Store.Challenges().DeleteExpiredChallenges(ctx, s.Clock.now())
}
