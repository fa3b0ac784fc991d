package sqlite

import (
	"context"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite/gen"
)

type usersRepo struct {
	q *gen.Queries
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) GetUserByUsernameOrEmail(ctx context.Context, username, email string) (domain.User, error) {
	row, err := r.q.GetUserByUsernameOrEmail(ctx, gen.GetUserByUsernameOrEmailParams{
		Username: username,
		Email:    email,
	})
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return mapUser(row), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	err := r.q.CreateUser(ctx, gen.CreateUserParams{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Role:        string(u.Role),
		Active:      u.Active,
		CreatedAt:   u.CreatedAt.UTC(),
		UpdatedAt:   u.UpdatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.q.UpdateUserLastLogin(ctx, gen.UpdateUserLastLoginParams{
		LastLoginAt: mapTimeNull(at),
		UpdatedAt:   at.UTC(),
		ID:          userID,
	})
}

func (r *usersRepo) MarkEmailVerified(ctx context.Context, userID string, at time.Time) error {
	return r.q.MarkUserEmailVerified(ctx, gen.MarkUserEmailVerifiedParams{
		EmailVerifiedAt: mapTimeNull(at),
		UpdatedAt:       at.UTC(),
		ID:              userID,
	})
}

func (r *usersRepo) SetActive(ctx context.Context, userID string, active bool, at time.Time) error {
	n, err := r.q.SetUserActive(ctx, gen.SetUserActiveParams{
		Active:    active,
		UpdatedAt: at.UTC(),
		ID:        userID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
