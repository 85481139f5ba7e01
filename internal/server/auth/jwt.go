// Package auth provides the bearer-token codec and password hashing used by
// the authentication services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/pzubov/products-api/internal/common"
)

// Claims carries the identity encoded into a bearer token: the user id and
// the role, plus the registered issued-at/expiry claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Codec signs and verifies bearer tokens with a process-wide HMAC secret.
// The secret is injected at construction so tests can use their own value.
type Codec struct {
	secretKey []byte
	validity  time.Duration
}

func NewCodec(secretKey string, validity time.Duration) *Codec {
	return &Codec{secretKey: []byte(secretKey), validity: validity}
}

// Issue builds a signed HS256 token for the given user id and role with
// issuedAt=now and expiresAt=now+validity.
func (c *Codec) Issue(userID string, role string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.validity)),
		},
		UserID: userID,
		Role:   role,
	})

	tokenString, err := token.SignedString(c.secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// Malformed, tampered and expired tokens all fail with common.ErrInvalidToken;
// callers cannot distinguish the cases.
func (c *Codec) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return c.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
