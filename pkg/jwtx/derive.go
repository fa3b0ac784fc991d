package jwtx

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// MinSecretLength is the shortest signing secret accepted, in bytes.
const MinSecretLength = 32

// ErrWeakSecret reports a signing secret shorter than MinSecretLength.
var ErrWeakSecret = errors.New("jwtx: signing secret too short")

// DeriveKey expands secret into size bytes of key material bound to
// purpose. Distinct purposes never share key material.
func DeriveKey(secret []byte, purpose TokenType, size int) ([]byte, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	r := hkdf.New(sha256.New, secret, nil, []byte("dynaform/jwt/"+string(purpose)))
	out := make([]byte, size)
	if _, err := io.ReadFull(r, out); err != nil {
		return nil, fmt.Errorf("jwtx: derive %s key: %w", purpose, err)
	}
	return out, nil
}

// KeyPair is a signer and its matching verifier.
type KeyPair struct {
	Signer   Signer
	Verifier Verifier
}

// NewKeyPair derives a purpose-bound key from secret and builds the signer
// and verifier for alg. The verifier enforces the purpose as token type.
func NewKeyPair(alg string, secret []byte, purpose TokenType, opts VerifyOptions) (KeyPair, error) {
	opts.Type = purpose

	switch alg {
	case AlgHS256:
		key, err := DeriveKey(secret, purpose, 32)
		if err != nil {
			return KeyPair{}, err
		}
		kid := keyID(purpose, key)
		signer, err := NewSignerHS256(kid, key)
		if err != nil {
			return KeyPair{}, err
		}
		verifier, err := NewVerifierHS256(kid, key, opts)
		if err != nil {
			return KeyPair{}, err
		}
		return KeyPair{Signer: signer, Verifier: verifier}, nil

	case AlgEdDSA:
		seed, err := DeriveKey(secret, purpose, ed25519.SeedSize)
		if err != nil {
			return KeyPair{}, err
		}
		priv := ed25519.NewKeyFromSeed(seed)
		pub := priv.Public().(ed25519.PublicKey)
		kid := keyID(purpose, pub)
		signer, err := NewSignerEdDSA(kid, priv)
		if err != nil {
			return KeyPair{}, err
		}
		verifier, err := NewVerifierEdDSA(kid, pub, opts)
		if err != nil {
			return KeyPair{}, err
		}
		return KeyPair{Signer: signer, Verifier: verifier}, nil

	default:
		return KeyPair{}, fmt.Errorf("jwtx: unsupported algorithm %q", alg)
	}
}

// keyID fingerprints material so rotated secrets produce new kids.
func keyID(purpose TokenType, material []byte) string {
	sum := sha256.Sum256(material)
	return string(purpose) + "-" + base64.RawURLEncoding.EncodeToString(sum[:8])
}
