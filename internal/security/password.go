package security

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
)

const hashCost = 10

// LooksHashed reports whether a stored credential is already a bcrypt hash.
// Anything without the bcrypt version prefix is treated as a legacy
// plaintext value pending migration.
func LooksHashed(stored string) bool {
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func VerifyPassword(password, storedHash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
