package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Supported signing algorithms.
const (
	AlgHS256 = "HS256"
	AlgEdDSA = "EdDSA"
)

// Signer is anything that can sign session tokens.
type Signer interface {
	Alg() string
	KID() string
	Sign(Claims) (string, error)

	// PublicJWK returns the verification key for publication, false for
	// symmetric algorithms.
	PublicJWK() (JWK, bool)
}

// Verifier validates a token and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

// VerifyOptions captures the expectations shared by all verifiers.
type VerifyOptions struct {
	// Issuer the token must carry. Empty disables the check.
	Issuer string

	// Type the token must carry. Empty disables the check.
	Type TokenType

	// Leeway tolerates clock skew on exp/nbf.
	Leeway time.Duration

	// Now overrides the wall clock; nil means time.Now.
	Now func() time.Time
}

var (
	ErrMalformed   = errors.New("jwtx: malformed token")
	ErrInvalidSig  = errors.New("jwtx: invalid signature")
	ErrIssuer      = errors.New("jwtx: issuer mismatch")
	ErrExpired     = errors.New("jwtx: token expired")
	ErrNotYetValid = errors.New("jwtx: token not yet valid")
	ErrWrongType   = errors.New("jwtx: unexpected token type")
)

// keyedVerifier verifies tokens signed by a single key identified by kid.
type keyedVerifier struct {
	method jwt.SigningMethod
	kid    string
	key    any
	opts   VerifyOptions
}

func (v *keyedVerifier) Verify(tokenStr string) (Claims, error) {
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{v.method.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(v.opts.Leeway),
	}
	if v.opts.Issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(v.opts.Issuer))
	}
	if v.opts.Now != nil {
		parserOpts = append(parserOpts, jwt.WithTimeFunc(v.opts.Now))
	}

	var claims Claims
	_, err := jwt.NewParser(parserOpts...).ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (any, error) {
		if kid, _ := t.Header["kid"].(string); kid != v.kid {
			return nil, fmt.Errorf("jwtx: unknown kid %q", kid)
		}
		return v.key, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}

	if v.opts.Type != "" && claims.Type != v.opts.Type {
		return Claims{}, ErrWrongType
	}

	return claims, nil
}

// classify folds the jwt library's error tree into our sentinels.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %w", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return fmt.Errorf("%w: %w", ErrNotYetValid, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return fmt.Errorf("%w: %w", ErrIssuer, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
