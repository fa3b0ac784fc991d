package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/pkg/idx"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

const maxFullNameLength = 100

var usernamePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9._-]{2,31}$`)

type UserService struct {
	Store store.Store
	Clock Clock

	// AdminEmails are granted the admin role when they register.
	AdminEmails []string
}

// RegisterInput is the first registration step: an account without any
// credential yet.
type RegisterInput struct {
	FullName string
	Email    string
	Username string
}

func (in RegisterInput) normalize() (RegisterInput, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Username = strings.ToLower(strings.TrimSpace(in.Username))

	if in.FullName == "" || utf8.RuneCountInString(in.FullName) > maxFullNameLength {
		return in, fmt.Errorf("%w: full name must be 1-%d characters", ErrInvalidInput, maxFullNameLength)
	}
	if addr, err := mail.ParseAddress(in.Email); err != nil || addr.Address != in.Email {
		return in, fmt.Errorf("%w: email address is not valid", ErrInvalidInput)
	}
	if !usernamePattern.MatchString(in.Username) {
		return in, fmt.Errorf("%w: username must be 3-32 characters of a-z, 0-9, '.', '_' or '-'", ErrInvalidInput)
	}
	return in, nil
}

// Register creates an active user with no passkey. Username and email are
// compared case-insensitively.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (domain.User, error) {
	in, err := in.normalize()
	if err != nil {
		return domain.User{}, err
	}

	if _, err := s.Store.Users().GetUserByUsernameOrEmail(ctx, in.Username, in.Email); err == nil {
		return domain.User{}, ErrUserExists
	} else if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	role := domain.RoleUser
	if s.isAdminEmail(in.Email) {
		role = domain.RoleAdmin
	}

	now := s.Clock.now()
	user := domain.User{
		ID:          idx.NewAt(now).String(),
		Username:    in.Username,
		Email:       in.Email,
		DisplayName: in.FullName,
		Role:        role,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Store.Users().CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, ErrUserExists
		}
		return domain.User{}, err
	}

	slogx.FromContext(ctx).Info("user registered",
		slog.String("user_id", user.ID),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

func (s *UserService) isAdminEmail(email string) bool {
	return slices.ContainsFunc(s.AdminEmails, func(e string) bool {
		return strings.EqualFold(strings.TrimSpace(e), email)
	})
}

// GetUser fetches a user by id.
func (s *UserService) GetUser(ctx context.Context, userID string) (domain.User, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// Deactivate disables a user. Existing tokens stop working at the next
// authenticated request because identities are resolved from the store.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	err := s.Store.Users().SetActive(ctx, userID, false, s.Clock.now())
	if errors.Is(err, store.ErrNotFound) {
		return ErrUserNotFound
	}
	if err == nil {
		slogx.FromContext(ctx).Info("user deactivated", slog.String("user_id", userID))
	}
	return err
}

// ListPasskeys returns the user's passkeys, oldest first.
func (s *UserService) ListPasskeys(ctx context.Context, userID string) ([]domain.PasskeyCredential, error) {
	return s.Store.Passkeys().ListUserPasskeys(ctx, userID)
}

// DeletePasskey removes one of the user's passkeys. Removing the last one
// fails with ErrLastPasskey: passkey registration is unauthenticated and only
// open to accounts without a passkey, so an emptied account could be claimed
// by whoever enrols on it next.
func (s *UserService) DeletePasskey(ctx context.Context, userID, credentialID string) error {
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		cred, err := tx.Passkeys().GetPasskey(ctx, credentialID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrPasskeyNotFound
			}
			return err
		}
		if cred.UserID != userID {
			return ErrPasskeyNotFound
		}

		n, err := tx.Passkeys().CountUserPasskeys(ctx, userID)
		if err != nil {
			return err
		}
		if n <= 1 {
			return ErrLastPasskey
		}

		return tx.Passkeys().DeleteUserPasskey(ctx, userID, credentialID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("passkey removed",
		slog.String("user_id", userID),
		slog.String("credential_id", credentialID),
	)
	return nil
}
