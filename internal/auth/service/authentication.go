package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/store"
	"github.com/aussiebroadwan/dynaform/pkg/slogx"
)

// AuthenticationService runs discoverable passkey logins.
type AuthenticationService struct {
	Store      store.Store
	Challenges *ChallengeService
	Verifier   PasskeyVerifier
	Tokens     *TokenService
	Clock      Clock
}

// LoginResult is an established session.
type LoginResult struct {
	User   domain.User
	Tokens domain.TokenPair
}

// Begin issues an unbound authentication challenge. The client picks the
// credential; no allow list is sent.
func (s *AuthenticationService) Begin(ctx context.Context) (json.RawMessage, error) {
	var options json.RawMessage
	_, err := s.Challenges.Issue(ctx, domain.CeremonyAuthentication, "", func(raw []byte) ([]byte, error) {
		opts, session, err := s.Verifier.AuthenticationOptions(raw)
		if err != nil {
			return nil, err
		}
		options = opts
		return session, nil
	})
	if err != nil {
		return nil, fmt.Errorf("issue authentication challenge: %w", err)
	}
	return options, nil
}

// Finish verifies an assertion and establishes a session.
//
// The signature counter must move strictly forward, or stay at zero for
// authenticators that never count. Anything else is treated as a cloned
// authenticator: the ceremony fails with ErrCounterReplay and nothing is
// updated. The store applies the same rule as a compare-and-set so two
// concurrent replays cannot both pass.
func (s *AuthenticationService) Finish(ctx context.Context, credential json.RawMessage) (LoginResult, error) {
	if err := s.Tokens.Ready(); err != nil {
		return LoginResult{}, err
	}
	l := slogx.FromContext(ctx)

	resp, err := s.Verifier.ParseAssertion(credential)
	if err != nil {
		return LoginResult{}, ceremonyError(err, ErrAssertionInvalid)
	}

	ch, err := s.Challenges.Consume(ctx, resp.Challenge, domain.CeremonyAuthentication)
	if err != nil {
		return LoginResult{}, err
	}

	cred, err := s.Store.Passkeys().GetPasskey(ctx, resp.CredentialID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("assertion for unknown credential", slog.String("credential_id", resp.CredentialID))
			return LoginResult{}, ErrCredentialNotFound
		}
		return LoginResult{}, err
	}
	l = l.With(slog.String("credential_id", cred.CredentialID), slog.String("user_id", cred.UserID))

	user, err := s.Store.Users().GetUserByID(ctx, cred.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, ErrCredentialNotFound
		}
		return LoginResult{}, err
	}

	if err := s.Verifier.VerifyAssertion(user, cred, ch.Session, resp); err != nil {
		l.Info("assertion rejected", slog.String("error", err.Error()))
		return LoginResult{}, ceremonyError(err, ErrAssertionInvalid)
	}

	if !counterAdvances(cred.SignCount, resp.SignCount) {
		l.Warn("signature counter did not advance, possible cloned authenticator",
			slog.Uint64("stored_count", uint64(cred.SignCount)),
			slog.Uint64("presented_count", uint64(resp.SignCount)),
		)
		return LoginResult{}, ErrCounterReplay
	}

	now := s.Clock.now()
	advanced, err := s.Store.Passkeys().AdvanceSignCount(ctx, cred.CredentialID, resp.SignCount, now)
	if err != nil {
		return LoginResult{}, err
	}
	if !advanced {
		l.Warn("signature counter raced, possible cloned authenticator",
			slog.Uint64("presented_count", uint64(resp.SignCount)),
		)
		return LoginResult{}, ErrCounterReplay
	}

	if !user.Active {
		return LoginResult{}, ErrUserInactive
	}

	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
		return LoginResult{}, err
	}
	user.LastLoginAt = &now

	pair, err := s.Tokens.Issue(ctx, user)
	if err != nil {
		return LoginResult{}, err
	}

	l.Info("passkey login", slog.Uint64("sign_count", uint64(resp.SignCount)))
	return LoginResult{User: user, Tokens: pair}, nil
}

func counterAdvances(stored, presented uint32) bool {
	return presented > stored || (presented == 0 && stored == 0)
}
