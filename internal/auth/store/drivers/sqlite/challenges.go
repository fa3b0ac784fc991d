package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite/gen"
)

type challengesRepo struct {
	q *gen.Queries
}

func (r *challengesRepo) CreateChallenge(ctx context.Context, c domain.Challenge) error {
	err := r.q.CreateChallenge(ctx, gen.CreateChallengeParams{
		ID:        c.ID,
		Value:     c.Value,
		Kind:      string(c.Kind),
		UserID:    mapStringNull(c.UserID),
		Session:   c.Session,
		CreatedAt: toMillis(c.CreatedAt),
		ExpiresAt: toMillis(c.ExpiresAt),
	})
	return mapConstraint(err)
}

// ConsumeChallenge relies on DELETE ... RETURNING: only the statement that
// removes the row sees it.
func (r *challengesRepo) ConsumeChallenge(ctx context.Context, id string) (domain.Challenge, error) {
	row, err := r.q.ConsumeChallenge(ctx, id)
	if err != nil {
		return domain.Challenge{}, mapNotFound(err)
	}
	return mapChallenge(row), nil
}

func (r *challengesRepo) DeleteExpiredChallenges(ctx context.Context, now time.Time) error {
	return r.q.DeleteExpiredChallenges(ctx, toMillis(now))
}
