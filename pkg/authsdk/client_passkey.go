package authsdk

import (
	"context"
	"encoding/json"
	"net/http"
)

// Register creates an account. The returned UserID starts the passkey
// registration ceremony.
func (c *SDKClient) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/register", "", req)
	if err != nil {
		return nil, err
	}

	var out RegisterResponse
	if err := decodeJSON(resp, &out, http.StatusCreated); err != nil {
		return nil, err
	}
	return &out, nil
}

// BeginPasskeyRegistration returns PublicKeyCredentialCreationOptions for userID.
func (c *SDKClient) BeginPasskeyRegistration(ctx context.Context, userID string) (json.RawMessage, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/passkey/register/begin", "",
		PasskeyRegisterBeginRequest{UserID: userID})
	if err != nil {
		return nil, err
	}

	var out OptionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Options, nil
}

// FinishPasskeyRegistration submits the attestation produced for the options
// returned by BeginPasskeyRegistration.
func (c *SDKClient) FinishPasskeyRegistration(
	ctx context.Context,
	userID string,
	credential []byte,
	friendlyName string,
) (*MessageResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/passkey/register/finish", "",
		PasskeyRegisterFinishRequest{
			UserID:       userID,
			Credential:   credential,
			FriendlyName: friendlyName,
		})
	if err != nil {
		return nil, err
	}

	var out MessageResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// BeginPasskeyAuthentication returns PublicKeyCredentialRequestOptions for a
// discoverable login.
func (c *SDKClient) BeginPasskeyAuthentication(ctx context.Context) (json.RawMessage, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/passkey/authenticate/begin", "", struct{}{})
	if err != nil {
		return nil, err
	}

	var out OptionsResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return out.Options, nil
}

// FinishPasskeyAuthentication submits a signed assertion and returns the new session tokens.
func (c *SDKClient) FinishPasskeyAuthentication(ctx context.Context, assertion []byte) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/passkey/authenticate/finish", "",
		PasskeyAuthenticateFinishRequest{Credential: assertion})
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// revoked by the server.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*SessionResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/auth/refresh", "",
		RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, err
	}

	var out SessionResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}

// ProbeSession asks whether accessToken is a live session. An empty token
// probes anonymously.
func (c *SDKClient) ProbeSession(ctx context.Context, accessToken string) (*SessionProbeResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodGet, "/auth/session", accessToken, nil)
	if err != nil {
		return nil, err
	}

	var out SessionProbeResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
