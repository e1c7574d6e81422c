package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the adaptive-hash cost factor for stored passwords.
const bcryptCost = 12

// HashPassword returns the bcrypt hash of password at the fixed cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
