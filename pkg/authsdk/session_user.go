package authsdk

import (
	"context"
	"net/http"
	"net/url"
)

// Me returns the authenticated user.
func (s *Session) Me(ctx context.Context) (*User, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var out UserResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out.User, nil
}

// ListPasskeys returns the caller's registered passkeys.
func (s *Session) ListPasskeys(ctx context.Context) ([]Passkey, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/auth/passkeys", nil)
	if err != nil {
		return nil, err
	}

	var out PasskeysResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Passkeys, nil
}

// DeletePasskey removes one of the caller's passkeys. The last passkey
// cannot be removed.
func (s *Session) DeletePasskey(ctx context.Context, credentialID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/auth/passkeys/"+url.PathEscape(credentialID), nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}

// Probe reports whether the session's access token is still live.
func (s *Session) Probe(ctx context.Context) (*SessionProbeResponse, error) {
	token, err := s.getValidToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.client.ProbeSession(ctx, token)
}

// Logout revokes the session's access and refresh tokens. The session is
// unusable afterwards.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/auth/logout", LogoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken, s.refreshToken = "", ""
	s.mu.Unlock()
	return nil
}

// DeactivateUser disables another account. Requires the admin role.
func (s *Session) DeactivateUser(ctx context.Context, userID string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/auth/users/"+url.PathEscape(userID)+"/deactivate", nil)
	if err != nil {
		return err
	}

	var out MessageResponse
	return decodeJSON(resp, &out, http.StatusOK)
}
