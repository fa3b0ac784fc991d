package service_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/passkey"
	"github.com/aussiebroadwan/dynaform/internal/auth/passkey/passkeytest"
	"github.com/aussiebroadwan/dynaform/internal/auth/service"
	"github.com/aussiebroadwan/dynaform/internal/auth/store/drivers/sqlite"
	"github.com/aussiebroadwan/dynaform/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const (
	testOrigin = "http://localhost:4200"
	testIssuer = "https://auth.dynaform.test"
	testSecret = "0123456789abcdef0123456789abcdef-test-secret"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store        *sqlite.Store
	clock        *testClock
	challenges   *service.ChallengeService
	revocations  *service.RevocationService
	tokens       *service.TokenService
	users        *service.UserService
	registration *service.RegistrationService
	authn        *service.AuthenticationService
	sessions     *service.SessionAuthenticator
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clock := newTestClock()
	c := service.Clock(clock.Now)

	rp, err := passkey.NewRelyingParty(passkey.Config{RPOrigins: []string{testOrigin}})
	require.NoError(t, err)

	keys, err := service.NewSessionKeys(jwtx.AlgHS256, []byte(testSecret), nil, testIssuer, c)
	require.NoError(t, err)

	f := &fixture{store: st, clock: clock}
	f.challenges = &service.ChallengeService{Store: st, Clock: c}
	f.revocations = &service.RevocationService{Store: st, Clock: c}
	f.tokens = &service.TokenService{
		Keys:        keys,
		Store:       st,
		Revocations: f.revocations,
		Issuer:      testIssuer,
		Clock:       c,
	}
	f.users = &service.UserService{Store: st, Clock: c, AdminEmails: []string{"Root@Example.com"}}
	f.registration = &service.RegistrationService{Store: st, Challenges: f.challenges, Verifier: rp, Clock: c}
	f.authn = &service.AuthenticationService{
		Store:      st,
		Challenges: f.challenges,
		Verifier:   rp,
		Tokens:     f.tokens,
		Clock:      c,
	}
	f.sessions = &service.SessionAuthenticator{Tokens: f.tokens, Revocations: f.revocations, Store: st}
	return f
}

func (f *fixture) newUser(t *testing.T, username string) domain.User {
	t.Helper()
	u, err := f.users.Register(context.Background(), service.RegisterInput{
		FullName: "Test " + username,
		Email:    username + "@example.com",
		Username: username,
	})
	require.NoError(t, err)
	return u
}

// enrol registers a new user and their first passkey.
func (f *fixture) enrol(t *testing.T, username string) (domain.User, *passkeytest.Authenticator) {
	t.Helper()
	ctx := context.Background()
	u := f.newUser(t, username)

	auth, err := passkeytest.New(testOrigin)
	require.NoError(t, err)

	options, err := f.registration.Begin(ctx, u.ID)
	require.NoError(t, err)
	resp, err := auth.Register(options)
	require.NoError(t, err)
	_, err = f.registration.Finish(ctx, u.ID, resp, "")
	require.NoError(t, err)
	return u, auth
}

// assertion runs authenticate/begin and signs it with counter.
func (f *fixture) assertion(t *testing.T, auth *passkeytest.Authenticator, counter uint32) []byte {
	t.Helper()
	options, err := f.authn.Begin(context.Background())
	require.NoError(t, err)
	resp, err := auth.AssertWithCounter(options, counter)
	require.NoError(t, err)
	return resp
}

func (f *fixture) login(t *testing.T, auth *passkeytest.Authenticator, counter uint32) service.LoginResult {
	t.Helper()
	res, err := f.authn.Finish(context.Background(), f.assertion(t, auth, counter))
	require.NoError(t, err)
	return res
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
