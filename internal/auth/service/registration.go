package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/pkg/cryptox"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

// MaxFriendlyNameLength caps passkey labels, in runes.
const MaxFriendlyNameLength = 64

// RegistrationService enrols the first passkey of a freshly created user.
type RegistrationService struct {
	Store      store.Store
	Challenges *ChallengeService
	Verifier   PasskeyVerifier
	Clock      Clock
}

// Begin issues a registration challenge bound to userID and returns the
// credential creation options for the client.
func (s *RegistrationService) Begin(ctx context.Context, userID string) (json.RawMessage, error) {
	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if !user.Active {
		return nil, ErrUserInactive
	}

	existing, err := s.Store.Passkeys().ListUserPasskeys(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, ErrPasskeyAlreadyRegistered
	}

	var options json.RawMessage
	_, err = s.Challenges.Issue(ctx, domain.CeremonyRegistration, userID, func(raw []byte) ([]byte, error) {
		opts, session, err := s.Verifier.RegistrationOptions(user, existing, raw)
		if err != nil {
			return nil, err
		}
		options = opts
		return session, nil
	})
	if err != nil {
		return nil, fmt.Errorf("issue registration challenge: %w", err)
	}

	slogx.FromContext(ctx).Info("passkey registration started", slog.String("user_id", userID))
	return options, nil
}

// Finish verifies the attestation in credential and stores the passkey.
// The challenge it answers must have been issued to userID.
func (s *RegistrationService) Finish(
	ctx context.Context,
	userID string,
	credential json.RawMessage,
	friendlyName string,
) (domain.PasskeyCredential, error) {
	l := slogx.FromContext(ctx).With(slog.String("user_id", userID))

	resp, err := s.Verifier.ParseRegistration(credential)
	if err != nil {
		return domain.PasskeyCredential{}, ceremonyError(err, ErrAttestationInvalid)
	}

	// The binding is checked after the challenge is burned. A response
	// replayed against the wrong user therefore costs the rightful user their
	// open ceremony, and they have to begin again. Checking first would need
	// a separate read ahead of the atomic consume.
	ch, err := s.Challenges.Consume(ctx, resp.Challenge, domain.CeremonyRegistration)
	if err != nil {
		return domain.PasskeyCredential{}, err
	}
	if ch.UserID != userID {
		l.Info("registration challenge bound to another user")
		return domain.PasskeyCredential{}, ErrChallengeNotFound
	}

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.PasskeyCredential{}, ErrUserNotFound
		}
		return domain.PasskeyCredential{}, err
	}
	if !user.Active {
		return domain.PasskeyCredential{}, ErrUserInactive
	}

	att, err := s.Verifier.VerifyRegistration(user, ch.Session, resp)
	if err != nil {
		l.Info("attestation rejected", slog.String("error", err.Error()))
		return domain.PasskeyCredential{}, ceremonyError(err, ErrAttestationInvalid)
	}

	now := s.Clock.now()
	cred := domain.PasskeyCredential{
		CredentialID:    cryptox.EncodeID(att.ID),
		UserID:          userID,
		PublicKey:       att.PublicKey,
		SignCount:       att.SignCount,
		AAGUID:          att.AAGUID,
		Transports:      att.Transports,
		AttestationType: att.AttestationType,
		BackupEligible:  att.BackupEligible,
		BackupState:     att.BackupState,
		DeviceType:      att.DeviceType(),
		FriendlyName:    normalizeFriendlyName(friendlyName),
		CreatedAt:       now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Passkeys().CountUserPasskeys(ctx, userID)
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrPasskeyAlreadyRegistered
		}
		if err := tx.Passkeys().CreatePasskey(ctx, cred); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return fmt.Errorf("%w: credential id already registered", ErrAttestationInvalid)
			}
			return err
		}
		return tx.Users().MarkEmailVerified(ctx, userID, now)
	})
	if err != nil {
		return domain.PasskeyCredential{}, err
	}

	l.Info("passkey registered",
		slog.String("credential_id", cred.CredentialID),
		slog.String("device_type", cred.DeviceType),
	)
	return cred, nil
}

func normalizeFriendlyName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.DefaultFriendlyName
	}
	if utf8.RuneCountInString(name) > MaxFriendlyNameLength {
		name = string([]rune(name)[:MaxFriendlyNameLength])
	}
	return name
}

// ceremonyError maps a verifier failure to kind when the client is at fault
// and leaves internal failures as they are.
func ceremonyError(err, kind error) error {
	if errors.Is(err, domain.ErrCeremonyResponse) {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}
