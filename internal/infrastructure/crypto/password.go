package crypto

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/vigiaai/vigia-provision/pkg/constants"
	apperrors "github.com/vigiaai/vigia-provision/pkg/errors"
)

// HashPassword hashes a plaintext password with bcrypt at the service-wide
// cost factor.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), constants.BcryptCost)
	if err != nil {
		return "", apperrors.ErrInternal("password hashing failed").WithCause(err)
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored hash. A
// mismatch returns the generic auth error.
func VerifyPassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return apperrors.ErrAuth()
	}
	return nil
}
