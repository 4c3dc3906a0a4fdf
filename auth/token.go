// Package auth issues and verifies the signed session tokens that prove a
// successful login. Tokens are stateless: nothing is stored server-side and
// every request is verified from the signature and expiry alone.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed structure, or expired token.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenTTL is how long an issued token stays valid.
const TokenTTL = time.Hour

// Claims is the payload carried inside a session token.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies session tokens with an HMAC secret that
// is fixed at construction time for the process lifetime.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token for the given subject. Pure computation
// from the secret and the current time; no side effects.
func (s *TokenService) Issue(subject, displayName string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Name: displayName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature, structure, and expiry of a token string and
// returns its claims. Every failure mode collapses into ErrInvalidToken so
// callers never branch on parser internals.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
