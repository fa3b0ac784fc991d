package passkey

import (
	"fmt"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
	"github.com/aussiebroadwan/dynaform/pkg/cryptox"
	"github.com/go-webauthn/webauthn/protocol"
	"github.com/go-webauthn/webauthn/webauthn"
)

// passkeyUser presents a domain user to go-webauthn. The user handle is the
// user id, so a discoverable assertion names its owner directly.
type passkeyUser struct {
	user        domain.User
	credentials []webauthn.Credential
}

func newPasskeyUser(u domain.User, creds []domain.PasskeyCredential) (*passkeyUser, error) {
	pu := &passkeyUser{user: u}
	for _, c := range creds {
		wc, err := toCredential(c)
		if err != nil {
			return nil, err
		}
		pu.credentials = append(pu.credentials, wc)
	}
	return pu, nil
}

func (u *passkeyUser) WebAuthnID() []byte          { return []byte(u.user.ID) }
func (u *passkeyUser) WebAuthnName() string        { return u.user.Username }
func (u *passkeyUser) WebAuthnDisplayName() string { return u.user.DisplayName }

func (u *passkeyUser) WebAuthnCredentials() []webauthn.Credential {
	return u.credentials
}

// toCredential rebuilds the library view of a stored passkey. Backup flags
// must match what the authenticator reported at registration or login
// validation rejects the assertion.
func toCredential(c domain.PasskeyCredential) (webauthn.Credential, error) {
	id, err := cryptox.DecodeID(c.CredentialID)
	if err != nil {
		return webauthn.Credential{}, fmt.Errorf("passkey: stored credential id %q: %w", c.CredentialID, err)
	}

	transports := make([]protocol.AuthenticatorTransport, 0, len(c.Transports))
	for _, t := range c.Transports {
		transports = append(transports, protocol.AuthenticatorTransport(t))
	}

	return webauthn.Credential{
		ID:              id,
		PublicKey:       c.PublicKey,
		AttestationType: c.AttestationType,
		Transport:       transports,
		Flags: webauthn.CredentialFlags{
			UserPresent:    true,
			BackupEligible: c.BackupEligible,
			BackupState:    c.BackupState,
		},
		Authenticator: webauthn.Authenticator{
			AAGUID:    c.AAGUID,
			SignCount: c.SignCount,
		},
	}, nil
}
