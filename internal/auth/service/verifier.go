package service

import (
	"encoding/json"

	"github.com/aussiebroadwan/dynaform/internal/auth/domain"
)

// PasskeyVerifier builds WebAuthn ceremony options and verifies the client
// responses. Options are built around a challenge issued by ChallengeService;
// the returned session blob is persisted with it and handed back on verify.
//
// Parse and Verify errors wrapping domain.ErrCeremonyResponse are client
// faults; anything else is treated as internal.
type PasskeyVerifier interface {
	RegistrationOptions(user domain.User, exclude []domain.PasskeyCredential, challenge []byte) (json.RawMessage, []byte, error)
	ParseRegistration(raw []byte) (domain.RegistrationResponse, error)
	VerifyRegistration(user domain.User, session []byte, resp domain.RegistrationResponse) (domain.AttestedCredential, error)

	AuthenticationOptions(challenge []byte) (json.RawMessage, []byte, error)
	ParseAssertion(raw []byte) (domain.AssertionResponse, error)

	// VerifyAssertion checks signature, challenge, origin and user handle.
	// The signature counter is the caller's concern.
	VerifyAssertion(user domain.User, cred domain.PasskeyCredential, session []byte, resp domain.AssertionResponse) error
}
