package jwtx

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// Signer is anything that can turn Claims into a compact JWS.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
}

// MinSecretLength is the shortest HMAC secret accepted outside development.
const MinSecretLength = 32

var ErrEmptySecret = errors.New("jwtx: empty signing secret")

// HS256Signer signs with a shared secret.
type HS256Signer struct {
	secret []byte
}

func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) == 0 {
		return nil, ErrEmptySecret
	}
	s := make([]byte, len(secret))
	copy(s, secret)
	return &HS256Signer{secret: s}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

func (s *HS256Signer) Sign(c Claims) (string, error) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	signed, err := tok.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}
	return signed, nil
}
