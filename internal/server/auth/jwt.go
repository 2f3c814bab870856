// Package auth issues and verifies session tokens, hashes passwords and
// carries the authenticated identity through a request context.
package auth

import (
	"time"

	"github.com/dmitrijs2005/acquisitions/internal/common"
	"github.com/dmitrijs2005/acquisitions/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims is the JWT body: the identity plus the registered expiry claims.
type Claims struct {
	jwt.RegisteredClaims
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TokenManager signs and verifies HS256 session tokens with an injected
// secret.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenManager(secret []byte, validity time.Duration) *TokenManager {
	return &TokenManager{secret: secret, validity: validity, now: time.Now}
}

// Sign returns a token encoding id that expires after the configured
// validity. Any failure is reported as common.ErrTokenSigning.
func (m *TokenManager) Sign(id Identity) (string, error) {
	if len(m.secret) == 0 {
		return "", common.ErrTokenSigning
	}

	now := m.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		ID:    id.ID,
		Email: id.Email,
		Role:  string(id.Role),
	})

	tokenString, err := token.SignedString(m.secret)
	if err != nil {
		return "", common.ErrTokenSigning
	}

	return tokenString, nil
}

// Verify decodes tokenString. Malformed, tampered, foreign-algorithm and
// expired tokens all return common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (Identity, error) {
	if len(m.secret) == 0 {
		return Identity{}, common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return Identity{}, common.ErrInvalidToken
	}

	return Identity{ID: claims.ID, Email: claims.Email, Role: models.Role(claims.Role)}, nil
}
