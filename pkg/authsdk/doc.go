/*
Package authsdk provides a client SDK for the DynaForm authentication service.

# Overview

The service authenticates users with passkeys (WebAuthn) only and issues a
short-lived JWT access token plus a rotating refresh token. The SDK wraps the
HTTP API in two types:

  - SDKClient: unauthenticated operations (sign-up, ceremonies, refresh, health)
  - Session: authenticated operations with automatic token refresh

# Sign-up

Registration is two steps: create the account, then bind its first passkey.
The options returned by BeginPasskeyRegistration go to
navigator.credentials.create in the browser; the resulting credential JSON is
handed back unchanged.

	client := authsdk.NewSDKClient("https://auth.example.com")

	acct, err := client.Register(ctx, authsdk.RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Username: "ada",
	})
	options, err := client.BeginPasskeyRegistration(ctx, acct.UserID)
	// ... browser ceremony produces credential ...
	_, err = client.FinishPasskeyRegistration(ctx, acct.UserID, credential, "Laptop")

# Login

Logins are discoverable: no username is needed, the authenticator picks the
credential.

	options, err := client.BeginPasskeyAuthentication(ctx)
	// ... navigator.credentials.get produces assertion ...
	session, err := client.AuthenticateWithPasskey(ctx, assertion)

	me, err := session.Me(ctx)

# Automatic Token Refresh

Session methods check the access token's exp claim (with a 30 second buffer)
and rotate the pair through /auth/refresh when needed. Refresh tokens are
single use: after a rotation the previous refresh token is revoked.

# Error Handling

Every failure from the service decodes to *APIError, whose Kind is one of the
Kind constants:

	if authsdk.IsKind(err, authsdk.KindTokenRevoked) {
		// log in again
	}

# Thread Safety

Sessions are safe for concurrent use. Concurrent callers that observe an
expired token share a single refresh.
*/
package authsdk
