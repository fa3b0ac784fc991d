package passkey_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/internal/auth/passkey"
	"github.com/aussiebroadwan/dynaform/internal/auth/passkey/passkeytest"
	"github.com/aussiebroadwan/dynaform/pkg/cryptox"
	"github.com/aussiebroadwan/dynaform/pkg/idx"
	"github.com/stretchr/testify/require"
)

const origin = "http://localhost:4200"

func newRP(t *testing.T) *passkey.RelyingParty {
	t.Helper()
	rp, err := passkey.NewRelyingParty(passkey.Config{})
	require.NoError(t, err)
	return rp
}

func testUser() domain.User {
	return domain.User{
		ID:          idx.New().String(),
		Username:    "alice",
		Email:       "alice@example.com",
		DisplayName: "Alice Liddell",
		Role:        domain.RoleUser,
		Active:      true,
	}
}

func challenge(t *testing.T) []byte {
	t.Helper()
	raw, err := cryptox.RandomBytes(cryptox.ChallengeSize)
	require.NoError(t, err)
	return raw
}

// register runs a full registration and returns the stored form of the credential.
func register(t *testing.T, rp *passkey.RelyingParty, user domain.User, auth *passkeytest.Authenticator) domain.PasskeyCredential {
	t.Helper()
	raw := challenge(t)

	options, session, err := rp.RegistrationOptions(user, nil, raw)
	require.NoError(t, err)

	resp, err := auth.Register(options)
	require.NoError(t, err)

	parsed, err := rp.ParseRegistration(resp)
	require.NoError(t, err)
	require.Equal(t, cryptox.EncodeID(raw), parsed.Challenge)

	att, err := rp.VerifyRegistration(user, session, parsed)
	require.NoError(t, err)

	return domain.PasskeyCredential{
		CredentialID:    cryptox.EncodeID(att.ID),
		UserID:          user.ID,
		PublicKey:       att.PublicKey,
		SignCount:       att.SignCount,
		AAGUID:          att.AAGUID,
		Transports:      att.Transports,
		AttestationType: att.AttestationType,
		BackupEligible:  att.BackupEligible,
		BackupState:     att.BackupState,
		DeviceType:      att.DeviceType(),
		FriendlyName:    domain.DefaultFriendlyName,
		CreatedAt:       time.Now(),
	}
}

func TestRegistrationOptions(t *testing.T) {
	t.Parallel()
	rp := newRP(t)
	user := testUser()
	raw := challenge(t)

	existing := domain.PasskeyCredential{CredentialID: cryptox.EncodeID([]byte("old-credential"))}
	options, session, err := rp.RegistrationOptions(user, []domain.PasskeyCredential{existing}, raw)
	require.NoError(t, err)
	require.NotEmpty(t, session)

	var opts struct {
		Challenge string `json:"challenge"`
		RP        struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"rp"`
		User struct {
			Name        string `json:"name"`
			DisplayName string `json:"displayName"`
		} `json:"user"`
		Timeout            int    `json:"timeout"`
		Attestation        string `json:"attestation"`
		ExcludeCredentials []struct {
			ID string `json:"id"`
		} `json:"excludeCredentials"`
		AuthenticatorSelection struct {
			ResidentKey string `json:"residentKey"`
		} `json:"authenticatorSelection"`
		PubKeyCredParams []struct {
			Alg int `json:"alg"`
		} `json:"pubKeyCredParams"`
	}
	require.NoError(t, json.Unmarshal(options, &opts))

	require.Equal(t, cryptox.EncodeID(raw), opts.Challenge)
	require.Equal(t, "localhost", opts.RP.ID)
	require.Equal(t, "DynaForm", opts.RP.Name)
	require.Equal(t, "alice", opts.User.Name)
	require.Equal(t, "Alice Liddell", opts.User.DisplayName)
	require.Equal(t, 60000, opts.Timeout)
	require.Equal(t, "none", opts.Attestation)
	require.Equal(t, "required", opts.AuthenticatorSelection.ResidentKey)
	require.Len(t, opts.ExcludeCredentials, 1)
	require.Equal(t, existing.CredentialID, opts.ExcludeCredentials[0].ID)

	algs := make([]int, 0, len(opts.PubKeyCredParams))
	for _, p := range opts.PubKeyCredParams {
		algs = append(algs, p.Alg)
	}
	require.Contains(t, algs, -7)
	require.Contains(t, algs, -257)
}

func TestRegisterThenAuthenticate(t *testing.T) {
	t.Parallel()
	rp := newRP(t)
	user := testUser()

	auth, err := passkeytest.New(origin)
	require.NoError(t, err)

	cred := register(t, rp, user, auth)
	require.Equal(t, auth.CredentialID(), cred.CredentialID)
	require.Equal(t, uint32(0), cred.SignCount)
	require.Equal(t, domain.DeviceTypePlatform, cred.DeviceType)
	require.Equal(t, "none", cred.AttestationType)

	raw := challenge(t)
	options, session, err := rp.AuthenticationOptions(raw)
	require.NoError(t, err)

	var opts struct {
		Challenge        string `json:"challenge"`
		RPID             string `json:"rpId"`
		UserVerification string `json:"userVerification"`
		AllowCredentials []any  `json:"allowCredentials"`
	}
	require.NoError(t, json.Unmarshal(options, &opts))
	require.Equal(t, cryptox.EncodeID(raw), opts.Challenge)
	require.Equal(t, "localhost", opts.RPID)
	require.Equal(t, "preferred", opts.UserVerification)
	require.Empty(t, opts.AllowCredentials)

	resp, err := auth.Assert(options)
	require.NoError(t, err)

	parsed, err := rp.ParseAssertion(resp)
	require.NoError(t, err)
	require.Equal(t, cred.CredentialID, parsed.CredentialID)
	require.Equal(t, []byte(user.ID), parsed.UserHandle)
	require.Equal(t, uint32(1), parsed.SignCount)

	require.NoError(t, rp.VerifyAssertion(user, cred, session, parsed))
}

func TestBackupEligibleCredential(t *testing.T) {
	t.Parallel()
	rp := newRP(t)
	user := testUser()

	auth, err := passkeytest.New(origin)
	require.NoError(t, err)
	auth.BackupEligible = true

	cred := register(t, rp, user, auth)
	require.True(t, cred.BackupEligible)
	require.Equal(t, domain.DeviceTypeCrossPlatform, cred.DeviceType)

	options, session, err := rp.AuthenticationOptions(challenge(t))
	require.NoError(t, err)
	resp, err := auth.Assert(options)
	require.NoError(t, err)
	parsed, err := rp.ParseAssertion(resp)
	require.NoError(t, err)
	require.NoError(t, rp.VerifyAssertion(user, cred, session, parsed))
}

func TestVerificationFailures(t *testing.T) {
	t.Parallel()

	t.Run("foreign origin at registration", func(t *testing.T) {
		t.Parallel()
		rp := newRP(t)
		user := testUser()
		auth, err := passkeytest.New("https://evil.example")
		require.NoError(t, err)

		options, session, err := rp.RegistrationOptions(user, nil, challenge(t))
		require.NoError(t, err)
		resp, err := auth.Register(options)
		require.NoError(t, err)
		parsed, err := rp.ParseRegistration(resp)
		require.NoError(t, err)

		_, err = rp.VerifyRegistration(user, session, parsed)
		require.ErrorIs(t, err, domain.ErrCeremonyResponse)
	})

	t.Run("response to another challenge", func(t *testing.T) {
		t.Parallel()
		rp := newRP(t)
		user := testUser()
		auth, err := passkeytest.New(origin)
		require.NoError(t, err)
		cred := register(t, rp, user, auth)

		options, _, err := rp.AuthenticationOptions(challenge(t))
		require.NoError(t, err)
		_, otherSession, err := rp.AuthenticationOptions(challenge(t))
		require.NoError(t, err)

		resp, err := auth.Assert(options)
		require.NoError(t, err)
		parsed, err := rp.ParseAssertion(resp)
		require.NoError(t, err)

		require.ErrorIs(t, rp.VerifyAssertion(user, cred, otherSession, parsed), domain.ErrCeremonyResponse)
	})

	t.Run("signature from a different key", func(t *testing.T) {
		t.Parallel()
		rp := newRP(t)
		user := testUser()
		auth, err := passkeytest.New(origin)
		require.NoError(t, err)
		cred := register(t, rp, user, auth)

		impostor, err := passkeytest.New(origin)
		require.NoError(t, err)
		_ = register(t, rp, user, impostor)

		options, session, err := rp.AuthenticationOptions(challenge(t))
		require.NoError(t, err)
		resp, err := impostor.Assert(options)
		require.NoError(t, err)
		parsed, err := rp.ParseAssertion(resp)
		require.NoError(t, err)
		parsed.CredentialID = cred.CredentialID

		// The credential id inside the signed response still names the
		// impostor's key, which the owner's record does not list.
		require.ErrorIs(t, rp.VerifyAssertion(user, cred, session, parsed), domain.ErrCeremonyResponse)
	})

	t.Run("user handle of someone else", func(t *testing.T) {
		t.Parallel()
		rp := newRP(t)
		user := testUser()
		auth, err := passkeytest.New(origin)
		require.NoError(t, err)
		cred := register(t, rp, user, auth)

		options, session, err := rp.AuthenticationOptions(challenge(t))
		require.NoError(t, err)
		resp, err := auth.Assert(options)
		require.NoError(t, err)
		parsed, err := rp.ParseAssertion(resp)
		require.NoError(t, err)

		other := testUser()
		cred.UserID = other.ID
		require.ErrorIs(t, rp.VerifyAssertion(other, cred, session, parsed), domain.ErrCeremonyResponse)
	})

	t.Run("garbage responses", func(t *testing.T) {
		t.Parallel()
		rp := newRP(t)

		_, err := rp.ParseRegistration([]byte(`{"id":"x"}`))
		require.ErrorIs(t, err, domain.ErrCeremonyResponse)

		_, err = rp.ParseAssertion([]byte(`not json`))
		require.ErrorIs(t, err, domain.ErrCeremonyResponse)
	})
}
