package auth

import (
	"crypto/rand"
	"encoding/base64"
)

// refreshTokenBytes is the entropy of an opaque refresh token before
// base64 encoding.
const refreshTokenBytes = 64

// GenerateRefreshToken returns a cryptographically random opaque token.
// It carries no claims and no structure; validity lives in the database row.
func GenerateRefreshToken() (string, error) {
	b := make([]byte, refreshTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(b), nil
}
