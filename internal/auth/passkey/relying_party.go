// Package passkey adapts go-webauthn to the ceremony services. It builds
// creation and request options bound to challenges issued elsewhere and
// verifies the client responses against them.
package passkey

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/pkg/cryptox"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

// RelyingParty performs WebAuthn verification for one RP id.
type RelyingParty struct {
	wa  *webauthn.WebAuthn
	cfg Config
}

// NewRelyingParty applies defaults to cfg and configures go-webauthn with it.
func NewRelyingParty(cfg Config) (*RelyingParty, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	timeout := webauthn.TimeoutConfig{
		Timeout:    cfg.Timeout,
		TimeoutUVD: cfg.Timeout,
	}
	wa, err := webauthn.New(&webauthn.Config{
		RPID:                  cfg.RPID,
		RPDisplayName:         cfg.RPDisplayName,
		RPOrigins:             cfg.RPOrigins,
		AttestationPreference: protocol.PreferNoAttestation,
		AuthenticatorSelection: protocol.AuthenticatorSelection{
			ResidentKey:        protocol.ResidentKeyRequirementRequired,
			RequireResidentKey: protocol.ResidentKeyRequired(),
			UserVerification:   protocol.VerificationPreferred,
		},
		Timeouts: webauthn.TimeoutsConfig{
			Login:        timeout,
			Registration: timeout,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("passkey: configure relying party: %w", err)
	}
	return &RelyingParty{wa: wa, cfg: cfg}, nil
}

// Config returns the effective relying party configuration.
func (rp *RelyingParty) Config() Config { return rp.cfg }

// RegistrationOptions builds credential creation options for user around
// challenge. The returned session must be handed back to VerifyRegistration.
func (rp *RelyingParty) RegistrationOptions(
	user domain.User,
	exclude []domain.PasskeyCredential,
	challenge []byte,
) (json.RawMessage, []byte, error) {
	pu, err := newPasskeyUser(user, exclude)
	if err != nil {
		return nil, nil, err
	}

	opts := []webauthn.RegistrationOption{
		webauthn.WithResidentKeyRequirement(protocol.ResidentKeyRequirementRequired),
		webauthn.WithConveyancePreference(protocol.PreferNoAttestation),
	}
	if len(pu.credentials) > 0 {
		opts = append(opts, webauthn.WithExclusions(webauthn.Credentials(pu.credentials).CredentialDescriptors()))
	}

	creation, session, err := rp.wa.BeginRegistration(pu, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("passkey: begin registration: %w", err)
	}
	creation.Response.Challenge = protocol.URLEncodedBase64(challenge)
	session.Challenge = base64.RawURLEncoding.EncodeToString(challenge)

	return marshalCeremony(creation.Response, session)
}

// ParseRegistration decodes an attestation response far enough to find the
// challenge it answers.
func (rp *RelyingParty) ParseRegistration(raw []byte) (domain.RegistrationResponse, error) {
	parsed, err := protocol.ParseCredentialCreationResponseBytes(raw)
	if err != nil {
		return domain.RegistrationResponse{}, rejected(err)
	}
	return domain.RegistrationResponse{
		Challenge: parsed.Response.CollectedClientData.Challenge,
		Raw:       raw,
	}, nil
}

// VerifyRegistration checks the attestation against the session produced by
// RegistrationOptions: challenge, origin, RP id hash and attestation statement.
func (rp *RelyingParty) VerifyRegistration(
	user domain.User,
	session []byte,
	resp domain.RegistrationResponse,
) (domain.AttestedCredential, error) {
	sd, err := unmarshalSession(session)
	if err != nil {
		return domain.AttestedCredential{}, err
	}
	parsed, err := protocol.ParseCredentialCreationResponseBytes(resp.Raw)
	if err != nil {
		return domain.AttestedCredential{}, rejected(err)
	}
	pu, err := newPasskeyUser(user, nil)
	if err != nil {
		return domain.AttestedCredential{}, err
	}

	cred, err := rp.wa.CreateCredential(pu, sd, parsed)
	if err != nil {
		return domain.AttestedCredential{}, rejected(err)
	}

	transports := make([]string, 0, len(cred.Transport))
	for _, t := range cred.Transport {
		transports = append(transports, string(t))
	}
	return domain.AttestedCredential{
		ID:              cred.ID,
		PublicKey:       cred.PublicKey,
		SignCount:       cred.Authenticator.SignCount,
		AAGUID:          cred.Authenticator.AAGUID,
		Transports:      transports,
		AttestationType: cred.AttestationType,
		BackupEligible:  cred.Flags.BackupEligible,
		BackupState:     cred.Flags.BackupState,
	}, nil
}

// AuthenticationOptions builds request options for a discoverable login:
// no allowCredentials, user verification preferred.
func (rp *RelyingParty) AuthenticationOptions(challenge []byte) (json.RawMessage, []byte, error) {
	assertion, session, err := rp.wa.BeginDiscoverableLogin(
		webauthn.WithUserVerification(protocol.VerificationPreferred),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("passkey: begin login: %w", err)
	}
	assertion.Response.Challenge = protocol.URLEncodedBase64(challenge)
	session.Challenge = base64.RawURLEncoding.EncodeToString(challenge)

	return marshalCeremony(assertion.Response, session)
}

// ParseAssertion decodes an assertion response without verifying it.
func (rp *RelyingParty) ParseAssertion(raw []byte) (domain.AssertionResponse, error) {
	parsed, err := protocol.ParseCredentialRequestResponseBytes(raw)
	if err != nil {
		return domain.AssertionResponse{}, rejected(err)
	}
	return domain.AssertionResponse{
		Challenge:    parsed.Response.CollectedClientData.Challenge,
		CredentialID: cryptox.EncodeID(parsed.RawID),
		UserHandle:   parsed.Response.UserHandle,
		SignCount:    parsed.Response.AuthenticatorData.Counter,
		Raw:          raw,
	}, nil
}

// VerifyAssertion checks the signature, challenge, origin and user handle of
// resp against cred. The signature counter is left to the caller.
func (rp *RelyingParty) VerifyAssertion(
	user domain.User,
	cred domain.PasskeyCredential,
	session []byte,
	resp domain.AssertionResponse,
) error {
	sd, err := unmarshalSession(session)
	if err != nil {
		return err
	}
	parsed, err := protocol.ParseCredentialRequestResponseBytes(resp.Raw)
	if err != nil {
		return rejected(err)
	}
	pu, err := newPasskeyUser(user, []domain.PasskeyCredential{cred})
	if err != nil {
		return err
	}

	handler := func(_, userHandle []byte) (webauthn.User, error) {
		if !bytes.Equal(userHandle, pu.WebAuthnID()) {
			return nil, errors.New("user handle does not match credential owner")
		}
		return pu, nil
	}
	if _, _, err := rp.wa.ValidatePasskeyLogin(handler, sd, parsed); err != nil {
		return rejected(err)
	}
	return nil
}

func marshalCeremony(options any, session *webauthn.SessionData) (json.RawMessage, []byte, error) {
	optionsJSON, err := json.Marshal(options)
	if err != nil {
		return nil, nil, fmt.Errorf("passkey: encode options: %w", err)
	}
	sessionJSON, err := json.Marshal(session)
	if err != nil {
		return nil, nil, fmt.Errorf("passkey: encode session: %w", err)
	}
	return optionsJSON, sessionJSON, nil
}

func unmarshalSession(raw []byte) (webauthn.SessionData, error) {
	var sd webauthn.SessionData
	if err := json.Unmarshal(raw, &sd); err != nil {
		return webauthn.SessionData{}, fmt.Errorf("passkey: decode session: %w", err)
	}
	return sd, nil
}

// rejected wraps a library error so callers can tell client faults from
// internal ones. protocol.Error carries the useful detail in DevInfo.
func rejected(err error) error {
	var perr *protocol.Error
	if errors.As(err, &perr) && perr.DevInfo != "" {
		return fmt.Errorf("%w: %s: %s", domain.ErrCeremonyResponse, perr.Details, perr.DevInfo)
	}
	return fmt.Errorf("%w: %w", domain.ErrCeremonyResponse, err)
}
