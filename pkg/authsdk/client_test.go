package authsdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/aussiebroadwan/dynaform/pkg/authsdk"
	"github.com/aussiebroadwan/dynaform/pkg/httpx"
	"github.com/aussiebroadwan/dynaform/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, exp time.Duration) string {
	t.Helper()
	signer, err := jwtx.NewSignerHS256("test", []byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	tok, err := signer.Sign(jwtx.NewAccessClaims("u1", "ada", "ada@example.com", "user", "test", exp, time.Now()))
	require.NoError(t, err)
	return tok
}

func TestAPIErrorDecoding(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			httpx.WriteError(w, http.StatusUnauthorized, authsdk.KindInvalidRefreshToken, "Refresh token is invalid.")
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	t.Cleanup(srv.Close)
	client := authsdk.NewSDKClient(srv.URL + "/")

	_, err := client.Refresh(context.Background(), "bogus")
	require.Error(t, err)
	require.True(t, authsdk.IsKind(err, authsdk.KindInvalidRefreshToken))

	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, "Refresh token is invalid.", apiErr.Message)

	_, err = client.GetLiveness(context.Background())
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	require.Equal(t, authsdk.KindServerError, apiErr.Kind)
}

func TestSessionRefreshesExpiredToken(t *testing.T) {
	t.Parallel()

	fresh := signedToken(t, time.Hour)
	var refreshes atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/refresh":
			var req authsdk.RefreshRequest
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			if req.RefreshToken != "refresh-1" {
				httpx.WriteError(w, http.StatusUnauthorized, authsdk.KindInvalidRefreshToken, "nope")
				return
			}
			refreshes.Add(1)
			httpx.WriteJSON(w, http.StatusOK, authsdk.SessionResponse{
				Success:      true,
				User:         authsdk.User{ID: "u1", Username: "ada"},
				AccessToken:  fresh,
				RefreshToken: "refresh-2",
			})
		case "/auth/me":
			if r.Header.Get("Authorization") != "Bearer "+fresh {
				httpx.WriteError(w, http.StatusUnauthorized, authsdk.KindTokenExpired, "expired")
				return
			}
			httpx.WriteJSON(w, http.StatusOK, authsdk.UserResponse{
				Success: true,
				User:    authsdk.User{ID: "u1", Username: "ada"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)

	client := authsdk.NewSDKClient(srv.URL)
	session := client.NewSessionFromTokens(signedToken(t, time.Second), "refresh-1")

	me, err := session.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, "ada", me.Username)
	require.Equal(t, int32(1), refreshes.Load())
	require.Equal(t, "refresh-2", session.RefreshToken())
	require.Equal(t, fresh, session.AccessToken())

	// The fresh token is good for an hour: no further refresh.
	_, err = session.Me(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), refreshes.Load())
}

func TestSessionLogoutClearsTokens(t *testing.T) {
	t.Parallel()

	access := signedToken(t, time.Hour)
	var got authsdk.LogoutRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/logout", r.URL.Path)
		require.Equal(t, "Bearer "+access, r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		httpx.WriteJSON(w, http.StatusOK, authsdk.MessageResponse{Success: true, Message: "Logged out"})
	}))
	t.Cleanup(srv.Close)

	session := authsdk.NewSDKClient(srv.URL).NewSessionFromTokens(access, "refresh-1")
	require.NoError(t, session.Logout(context.Background()))
	require.Equal(t, "refresh-1", got.RefreshToken)
	require.Empty(t, session.AccessToken())
	require.Empty(t, session.RefreshToken())
}
