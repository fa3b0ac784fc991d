package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite/gen"
)

type passkeysRepo struct {
	q *gen.Queries
}

func (r *passkeysRepo) CreatePasskey(ctx context.Context, p domain.PasskeyCredential) error {
	err := r.q.CreatePasskey(ctx, gen.CreatePasskeyParams{
		CredentialID:    p.CredentialID,
		UserID:          p.UserID,
		PublicKey:       p.PublicKey,
		SignCount:       int64(p.SignCount),
		Aaguid:          p.AAGUID,
		Transports:      strings.Join(p.Transports, " "),
		AttestationType: p.AttestationType,
		BackupEligible:  p.BackupEligible,
		BackupState:     p.BackupState,
		DeviceType:      p.DeviceType,
		FriendlyName:    p.FriendlyName,
		CreatedAt:       p.CreatedAt.UTC(),
	})
	return mapConstraint(err)
}

func (r *passkeysRepo) GetPasskey(ctx context.Context, credentialID string) (domain.PasskeyCredential, error) {
	row, err := r.q.GetPasskey(ctx, credentialID)
	if err != nil {
		return domain.PasskeyCredential{}, mapNotFound(err)
	}
	return mapPasskey(row), nil
}

func (r *passkeysRepo) ListUserPasskeys(ctx context.Context, userID string) ([]domain.PasskeyCredential, error) {
	rows, err := r.q.ListUserPasskeys(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]domain.PasskeyCredential, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapPasskey(row))
	}
	return out, nil
}

func (r *passkeysRepo) CountUserPasskeys(ctx context.Context, userID string) (int, error) {
	n, err := r.q.CountUserPasskeys(ctx, userID)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (r *passkeysRepo) AdvanceSignCount(ctx context.Context, credentialID string, newCount uint32, usedAt time.Time) (bool, error) {
	n, err := r.q.AdvancePasskeySignCount(ctx, gen.AdvancePasskeySignCountParams{
		NewCount:     int64(newCount),
		UsedAt:       mapTimeNull(usedAt),
		CredentialID: credentialID,
	})
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (r *passkeysRepo) DeleteUserPasskey(ctx context.Context, userID, credentialID string) error {
	n, err := r.q.DeleteUserPasskey(ctx, gen.DeleteUserPasskeyParams{
		UserID:       userID,
		CredentialID: credentialID,
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
