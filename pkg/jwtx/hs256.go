package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// HS256Signer signs tokens with HMAC-SHA256.
type HS256Signer struct {
	kid string
	key []byte
}

// NewSignerHS256 returns an HMAC signer. The key should come from DeriveKey.
func NewSignerHS256(kid string, key []byte) (*HS256Signer, error) {
	if len(key) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	return &HS256Signer{kid: kid, key: key}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }
func (s *HS256Signer) KID() string { return s.kid }

func (s *HS256Signer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	t.Header["kid"] = s.kid
	return t.SignedString(s.key)
}

func (s *HS256Signer) PublicJWK() (JWK, bool) { return JWK{}, false }

// NewVerifierHS256 returns a verifier for tokens produced by NewSignerHS256
// with the same kid and key.
func NewVerifierHS256(kid string, key []byte, opts VerifyOptions) (Verifier, error) {
	if len(key) == 0 {
		return nil, errors.New("jwtx: empty HMAC key")
	}
	return &keyedVerifier{method: jwt.SigningMethodHS256, kid: kid, key: key, opts: opts}, nil
}
