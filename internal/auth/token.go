package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token verification rejections. Callers may special-case ErrTokenExpired
// (prompt re-login) versus the tampering cases.
var (
	// ErrTokenMalformed indicates the token is not a parseable JWT.
	ErrTokenMalformed = errors.New("malformed token")
	// ErrTokenBadSignature indicates the signature does not verify.
	ErrTokenBadSignature = errors.New("invalid token signature")
	// ErrTokenExpired indicates the token was valid but has expired.
	ErrTokenExpired = errors.New("token has expired")
)

// TokenService issues and verifies signed, time-bound bearer tokens.
// Tokens are stateless HS256 JWTs; there is no server-side revocation,
// so logout is client-side token discard.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

// NewTokenService creates a TokenService with the given signing secret
// and token lifetime.
func NewTokenService(secret []byte, ttl time.Duration) *TokenService {
	return &TokenService{secret: secret, ttl: ttl}
}

// TTL returns the configured token lifetime.
func (s *TokenService) TTL() time.Duration {
	return s.ttl
}

// Issue creates a signed token for the given user identity.
// The expiry is computed once here and embedded in the token.
func (s *TokenService) Issue(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(userID, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify checks signature integrity first, then expiry, and returns the
// subject user identity. The embedded expiry is compared against the
// wall clock; a client cannot extend its own token.
func (s *TokenService) Verify(tokenString string) (int64, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrTokenBadSignature
			}
			return s.secret, nil
		},
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return 0, ErrTokenBadSignature
		case errors.Is(err, jwt.ErrTokenExpired):
			return 0, ErrTokenExpired
		default:
			return 0, ErrTokenMalformed
		}
	}
	if !token.Valid {
		return 0, ErrTokenBadSignature
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return 0, ErrTokenMalformed
	}
	return userID, nil
}
