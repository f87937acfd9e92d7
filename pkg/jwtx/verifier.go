package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a JWT and returns its claims.
type Verifier interface {
	Verify(token string) (Claims, error)
}

var (
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrNotYetValid  = errors.New("jwtx: token not yet valid")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
	ErrWrongType    = errors.New("jwtx: unexpected token type")
)

type VerifyOptions struct {
	// Issuer the token must carry. Empty skips the check.
	Issuer string

	// Type the "typ" claim must equal. Empty skips the check.
	Type string

	// Leeway tolerated on exp/nbf for clock skew.
	Leeway time.Duration

	// Now overrides the clock, for tests.
	Now func() time.Time
}

// HS256Verifier checks tokens produced by an HS256Signer sharing its secret.
type HS256Verifier struct {
	secret []byte
	opts   VerifyOptions
}

func NewVerifierHS256(secret []byte, opts VerifyOptions) (*HS256Verifier, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &HS256Verifier{secret: s, opts: opts}, nil
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.opts.Now),
		jwt.WithLeeway(v.opts.Leeway),
		jwt.WithExpirationRequired(),
	)

	var claims Claims
	token, err := parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	})
	if err != nil {
		return Claims{}, mapParseError(err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidClaim
	}

	if err := claims.ValidateIssuer(v.opts.Issuer); err != nil {
		return Claims{}, err
	}
	if v.opts.Type != "" && claims.Type != v.opts.Type {
		return Claims{}, ErrWrongType
	}
	if claims.Subject == "" {
		return Claims{}, fmt.Errorf("%w: missing sub", ErrInvalidClaim)
	}

	return claims, nil
}

func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return ErrNotYetValid
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return fmt.Errorf("%w: %v", ErrInvalidClaim, err)
	}
}
