// Package auth mints and validates bearer credentials: signed short-lived
// access tokens, opaque refresh tokens, and bcrypt password hashes. It is
// pure computation — no I/O, no storage.
package auth

import (
	"time"

	"github.com/dsavelev/foliotrack/internal/common"
	"github.com/dsavelev/foliotrack/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the identity claims embedded in
// every access token. Subject holds the user id.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// GenerateAccessToken signs an HS256 token for user with the given issuer,
// audience, and validity window. The token embeds the user's id (subject),
// email, display name, and role.
func GenerateAccessToken(user *models.User, secret []byte, issuer, audience string, validity time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			Issuer:    issuer,
			Audience:  jwt.ClaimStrings{audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Email: user.Email,
		Name:  user.FullName(),
		Role:  user.Role,
	})

	return token.SignedString(secret)
}

// ValidateAccessToken verifies signature, issuer, audience, and expiry with
// zero clock-skew tolerance and returns the embedded claims. Every failure —
// expired, wrong audience, malformed, bad signature — comes back as
// common.ErrInvalidToken so callers cannot distinguish them.
func ValidateAccessToken(tokenString string, secret []byte, issuer, audience string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (interface{}, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
