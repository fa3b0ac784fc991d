package auth_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

// TestRefreshRotation checks that refresh tokens are single use.
func TestRefreshRotation(t *testing.T) {
	baseURL := setupAuthContainer(t)
	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	userID, authenticator := signUp(t, client, "rotator", "rotator@example.com")
	session := logIn(t, client, authenticator)

	first := session.RefreshToken()
	require.NoError(t, session.Refresh(ctx))
	require.NotEqual(t, first, session.RefreshToken())
	require.Equal(t, userID, session.User().ID)

	// The rotated-out token is dead, even for a brand new client.
	_, err := client.AuthenticateWithRefreshToken(ctx, first)
	assertKind(t, err, authsdk.KindInvalidRefreshToken)

	// The current one still works and rotates again.
	resumed, err := client.AuthenticateWithRefreshToken(ctx, session.RefreshToken())
	require.NoError(t, err)

	me, err := resumed.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, userID, me.ID)
}

// TestRefreshRejectsAccessTokens presents an access token as a refresh token.
func TestRefreshRejectsAccessTokens(t *testing.T) {
	baseURL := setupAuthContainer(t)
	client := authsdk.NewSDKClient(baseURL)

	_, authenticator := signUp(t, client, "mixup", "mixup@example.com")
	session := logIn(t, client, authenticator)

	_, err := client.Refresh(t.Context(), session.AccessToken())
	assertKind(t, err, authsdk.KindInvalidRefreshToken)

	_, err = client.Refresh(t.Context(), "not-a-jwt")
	assertKind(t, err, authsdk.KindInvalidRefreshToken)
}

// TestAccessTokenExpiry runs with a very short access lifetime and checks
// that the SDK refreshes transparently.
func TestAccessTokenExpiry(t *testing.T) {
	baseURL := setupAuthContainer(t, withEnv("AUTH_ACCESS_TTL", "2s"))
	client := authsdk.NewSDKClient(baseURL)
	ctx := t.Context()

	_, authenticator := signUp(t, client, "brief", "brief@example.com")
	session := logIn(t, client, authenticator)
	stale := session.AccessToken()

	require.Eventually(t, func() bool {
		probe, err := client.ProbeSession(ctx, stale)
		return err == nil && !probe.Authenticated
	}, 10*time.Second, 250*time.Millisecond)

	_, err := session.Me(ctx)
	require.NoError(t, err)
	require.NotEqual(t, stale, session.AccessToken())
}
