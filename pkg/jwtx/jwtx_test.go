package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/dynaform/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const exampleIssuer = "https://auth.dynaform.test"

var exampleSecret = []byte("0123456789abcdef0123456789abcdef")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestKeyPairRoundTrip(t *testing.T) {
	t.Parallel()

	for _, alg := range []string{jwtx.AlgHS256, jwtx.AlgEdDSA} {
		t.Run(alg, func(t *testing.T) {
			t.Parallel()

			now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
			kp, err := jwtx.NewKeyPair(alg, exampleSecret, jwtx.TypeAccess, jwtx.VerifyOptions{
				Issuer: exampleIssuer,
				Now:    fixedClock(now.Add(time.Minute)),
			})
			require.NoError(t, err)
			require.Equal(t, alg, kp.Signer.Alg())
			require.True(t, strings.HasPrefix(kp.Signer.KID(), "access-"))

			claims := jwtx.NewAccessClaims("user-1", "alice", "alice@example.com", "admin", exampleIssuer, 15*time.Minute, now)
			token, err := kp.Signer.Sign(claims)
			require.NoError(t, err)

			got, err := kp.Verifier.Verify(token)
			require.NoError(t, err)
			require.Equal(t, "user-1", got.Subject)
			require.Equal(t, "alice", got.Username)
			require.Equal(t, "alice@example.com", got.Email)
			require.Equal(t, "admin", got.Role)
			require.Equal(t, jwtx.TypeAccess, got.Type)
			require.Equal(t, now.Add(15*time.Minute), got.Expiry())
			require.NotEmpty(t, got.ID)
		})
	}
}

func TestVerifyExpiryBoundary(t *testing.T) {
	t.Parallel()

	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ttl := 5 * time.Minute

	cases := []struct {
		name    string
		at      time.Time
		wantErr error
	}{
		{"just issued", issued, nil},
		{"one second before expiry", issued.Add(ttl - time.Second), nil},
		{"exactly at expiry", issued.Add(ttl), jwtx.ErrExpired},
		{"after expiry", issued.Add(ttl + time.Hour), jwtx.ErrExpired},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			kp, err := jwtx.NewKeyPair(jwtx.AlgHS256, exampleSecret, jwtx.TypeAccess, jwtx.VerifyOptions{Now: fixedClock(tc.at)})
			require.NoError(t, err)

			token, err := kp.Signer.Sign(jwtx.NewAccessClaims("u", "n", "e@x", "user", "", ttl, issued))
			require.NoError(t, err)

			_, err = kp.Verifier.Verify(token)
			if tc.wantErr == nil {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestVerifyRejections(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	opts := jwtx.VerifyOptions{Issuer: exampleIssuer, Now: fixedClock(now)}

	access, err := jwtx.NewKeyPair(jwtx.AlgHS256, exampleSecret, jwtx.TypeAccess, opts)
	require.NoError(t, err)
	refresh, err := jwtx.NewKeyPair(jwtx.AlgHS256, exampleSecret, jwtx.TypeRefresh, opts)
	require.NoError(t, err)

	refreshToken, err := refresh.Signer.Sign(jwtx.NewRefreshClaims("user-1", exampleIssuer, time.Hour, now))
	require.NoError(t, err)

	t.Run("refresh token presented as access", func(t *testing.T) {
		_, err := access.Verifier.Verify(refreshToken)
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})

	t.Run("access-keyed token with refresh type", func(t *testing.T) {
		wrong, err := access.Signer.Sign(jwtx.NewRefreshClaims("user-1", exampleIssuer, time.Hour, now))
		require.NoError(t, err)
		_, err = access.Verifier.Verify(wrong)
		require.ErrorIs(t, err, jwtx.ErrWrongType)
	})

	t.Run("tampered payload", func(t *testing.T) {
		token, err := access.Signer.Sign(jwtx.NewAccessClaims("user-1", "a", "a@x", "user", exampleIssuer, time.Hour, now))
		require.NoError(t, err)
		parts := strings.Split(token, ".")
		forged, err := access.Signer.Sign(jwtx.NewAccessClaims("user-1", "a", "a@x", "admin", exampleIssuer, time.Hour, now))
		require.NoError(t, err)
		parts[1] = strings.Split(forged, ".")[1]
		_, err = access.Verifier.Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		token, err := access.Signer.Sign(jwtx.NewAccessClaims("user-1", "a", "a@x", "user", "someone-else", time.Hour, now))
		require.NoError(t, err)
		_, err = access.Verifier.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := access.Verifier.Verify("not.a.jwt")
		require.ErrorIs(t, err, jwtx.ErrMalformed)
	})
}

func TestDeriveKey(t *testing.T) {
	t.Parallel()

	a, err := jwtx.DeriveKey(exampleSecret, jwtx.TypeAccess, 32)
	require.NoError(t, err)
	again, err := jwtx.DeriveKey(exampleSecret, jwtx.TypeAccess, 32)
	require.NoError(t, err)
	r, err := jwtx.DeriveKey(exampleSecret, jwtx.TypeRefresh, 32)
	require.NoError(t, err)

	require.Equal(t, a, again)
	require.NotEqual(t, a, r)

	_, err = jwtx.DeriveKey([]byte("short"), jwtx.TypeAccess, 32)
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestPublicJWKS(t *testing.T) {
	t.Parallel()

	hs, err := jwtx.NewKeyPair(jwtx.AlgHS256, exampleSecret, jwtx.TypeAccess, jwtx.VerifyOptions{})
	require.NoError(t, err)
	ed, err := jwtx.NewKeyPair(jwtx.AlgEdDSA, exampleSecret, jwtx.TypeAccess, jwtx.VerifyOptions{})
	require.NoError(t, err)

	require.Empty(t, jwtx.PublicJWKS(hs.Signer).Keys)

	set := jwtx.PublicJWKS(hs.Signer, ed.Signer, nil)
	require.Len(t, set.Keys, 1)
	require.Equal(t, "OKP", set.Keys[0].Kty)
	require.Equal(t, "Ed25519", set.Keys[0].Crv)
	require.Equal(t, ed.Signer.KID(), set.Keys[0].Kid)
}

func TestUnsupportedAlgorithm(t *testing.T) {
	t.Parallel()

	_, err := jwtx.NewKeyPair("RS256", exampleSecret, jwtx.TypeAccess, jwtx.VerifyOptions{})
	require.Error(t, err)
}
