// Package auth issues and validates the HMAC-signed bearer tokens used by
// the admin review endpoints.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/canvashub/content-gateway/middleware"
)

// RoleAdmin is the role required for review and delete operations
const RoleAdmin = "admin"

// tokenClaims is the JWT claim set carried by issued tokens
type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HMAC-signed JWTs
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

// NewTokenManager creates a new TokenManager. The secret must be non-empty;
// token validation rejects everything when it is not.
func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "content-gateway",
	}
}

// IssueToken creates a signed token for the given subject and role
func (m *TokenManager) IssueToken(subject, role string) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("token secret not configured")
	}

	now := time.Now()
	claims := tokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken parses and verifies a token, returning its claims.
// Implements middleware.TokenValidator.
func (m *TokenManager) ValidateToken(_ context.Context, tokenString string) (*middleware.Claims, error) {
	if len(m.secret) == 0 {
		return nil, fmt.Errorf("token secret not configured")
	}

	var claims tokenClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithIssuer(m.issuer), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return &middleware.Claims{
		Subject: claims.Subject,
		Role:    claims.Role,
	}, nil
}
