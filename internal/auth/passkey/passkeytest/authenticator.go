// Package passkeytest provides a software WebAuthn authenticator that
// produces real attestation and assertion responses for tests. Credentials
// are ES256 keys registered with "none" attestation.
package passkeytest

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/fxamacker/cbor/v2"
)

// Authenticator data flags.
const (
	flagUP = 0x01
	flagUV = 0x04
	flagBE = 0x08
	flagBS = 0x10
	flagAT = 0x40
)

var b64 = base64.RawURLEncoding

// Authenticator holds a single resident credential.
type Authenticator struct {
	// Origin is written into clientDataJSON.
	Origin string

	// BackupEligible marks the credential as syncable (multi-device).
	BackupEligible bool

	mu           sync.Mutex
	key          *ecdsa.PrivateKey
	credentialID []byte
	userHandle   []byte
	rpID         string
	counter      uint32
	aaguid       [16]byte
	enc          cbor.EncMode
}

// New returns an authenticator with a fresh P-256 key and credential id.
func New(origin string) (*Authenticator, error) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, err
	}
	credID := make([]byte, 16)
	if _, err := rand.Read(credID); err != nil {
		return nil, err
	}
	enc, err := cbor.CTAP2EncOptions().EncMode()
	if err != nil {
		return nil, err
	}
	return &Authenticator{
		Origin:       origin,
		key:          key,
		credentialID: credID,
		enc:          enc,
	}, nil
}

// CredentialID returns the credential id as base64url.
func (a *Authenticator) CredentialID() string {
	return b64.EncodeToString(a.credentialID)
}

// Counter reports the signature counter of the last response.
func (a *Authenticator) Counter() uint32 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.counter
}

type creationOptions struct {
	Challenge string `json:"challenge"`
	RP        struct {
		ID string `json:"id"`
	} `json:"rp"`
	User struct {
		ID string `json:"id"`
	} `json:"user"`
}

type requestOptions struct {
	Challenge string `json:"challenge"`
	RPID      string `json:"rpId"`
}

// Register answers credential creation options with a "none" attestation.
// The initial signature counter is zero.
func (a *Authenticator) Register(options []byte) ([]byte, error) {
	var opts creationOptions
	if err := json.Unmarshal(options, &opts); err != nil {
		return nil, fmt.Errorf("passkeytest: decode creation options: %w", err)
	}
	userHandle, err := b64.DecodeString(opts.User.ID)
	if err != nil {
		return nil, fmt.Errorf("passkeytest: user id: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.rpID = opts.RP.ID
	a.userHandle = userHandle
	a.counter = 0

	cose, err := a.coseKey()
	if err != nil {
		return nil, err
	}

	authData := a.authDataHeader(flagUP|flagUV|flagAT, 0)
	authData = append(authData, a.aaguid[:]...)
	authData = binary.BigEndian.AppendUint16(authData, uint16(len(a.credentialID)))
	authData = append(authData, a.credentialID...)
	authData = append(authData, cose...)

	attObj, err := a.enc.Marshal(map[string]any{
		"fmt":      "none",
		"attStmt":  map[string]any{},
		"authData": authData,
	})
	if err != nil {
		return nil, err
	}

	clientData, err := clientDataJSON("webauthn.create", opts.Challenge, a.Origin)
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]any{
		"id":                      b64.EncodeToString(a.credentialID),
		"rawId":                   b64.EncodeToString(a.credentialID),
		"type":                    "public-key",
		"authenticatorAttachment": "platform",
		"clientExtensionResults":  map[string]any{},
		"response": map[string]any{
			"clientDataJSON":    b64.EncodeToString(clientData),
			"attestationObject": b64.EncodeToString(attObj),
			"transports":        []string{"internal", "hybrid"},
		},
	})
}

// Assert signs request options, advancing the counter by one.
func (a *Authenticator) Assert(options []byte) ([]byte, error) {
	a.mu.Lock()
	next := a.counter + 1
	a.mu.Unlock()
	return a.AssertWithCounter(options, next)
}

// AssertWithCounter signs request options reporting counter as the
// signature count. Replays and counter-less authenticators are simulated by
// passing a stale value or zero.
func (a *Authenticator) AssertWithCounter(options []byte, counter uint32) ([]byte, error) {
	var opts requestOptions
	if err := json.Unmarshal(options, &opts); err != nil {
		return nil, fmt.Errorf("passkeytest: decode request options: %w", err)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.userHandle == nil {
		return nil, errors.New("passkeytest: authenticator holds no credential")
	}
	if opts.RPID != "" && opts.RPID != a.rpID {
		return nil, fmt.Errorf("passkeytest: credential is scoped to %q, not %q", a.rpID, opts.RPID)
	}
	a.counter = counter

	authData := a.authDataHeader(flagUP|flagUV, counter)
	clientData, err := clientDataJSON("webauthn.get", opts.Challenge, a.Origin)
	if err != nil {
		return nil, err
	}

	clientHash := sha256.Sum256(clientData)
	digest := sha256.Sum256(append(append([]byte{}, authData...), clientHash[:]...))
	sig, err := ecdsa.SignASN1(rand.Reader, a.key, digest[:])
	if err != nil {
		return nil, err
	}

	return json.Marshal(map[string]any{
		"id":                      b64.EncodeToString(a.credentialID),
		"rawId":                   b64.EncodeToString(a.credentialID),
		"type":                    "public-key",
		"authenticatorAttachment": "platform",
		"clientExtensionResults":  map[string]any{},
		"response": map[string]any{
			"clientDataJSON":    b64.EncodeToString(clientData),
			"authenticatorData": b64.EncodeToString(authData),
			"signature":         b64.EncodeToString(sig),
			"userHandle":        b64.EncodeToString(a.userHandle),
		},
	})
}

// authDataHeader is rpIdHash | flags | signCount.
func (a *Authenticator) authDataHeader(flags byte, counter uint32) []byte {
	if a.BackupEligible {
		flags |= flagBE | flagBS
	}
	rpHash := sha256.Sum256([]byte(a.rpID))
	out := make([]byte, 0, 37)
	out = append(out, rpHash[:]...)
	out = append(out, flags)
	return binary.BigEndian.AppendUint32(out, counter)
}

// coseKey encodes the public key as a COSE_Key EC2 map for ES256.
func (a *Authenticator) coseKey() ([]byte, error) {
	pub, err := a.key.PublicKey.ECDH()
	if err != nil {
		return nil, err
	}
	point := pub.Bytes() // 0x04 | X | Y
	return a.enc.Marshal(map[int]any{
		1:  2,  // kty: EC2
		3:  -7, // alg: ES256
		-1: 1,  // crv: P-256
		-2: point[1:33],
		-3: point[33:65],
	})
}

func clientDataJSON(typ, challenge, origin string) ([]byte, error) {
	return json.Marshal(map[string]any{
		"type":        typ,
		"challenge":   challenge,
		"origin":      origin,
		"crossOrigin": false,
	})
}
