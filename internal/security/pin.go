package security

import (
	"errors"
	"fmt"
	"unicode"

	"golang.org/x/crypto/bcrypt"
)

const (
	minPINLength = 4
	maxPINLength = 8
)

// ErrInvalidPIN is returned for a PIN that is not 4 to 8 digits
var ErrInvalidPIN = errors.New("parent PIN must be 4 to 8 digits")

// ValidatePIN checks the shape of a parent PIN
func ValidatePIN(pin string) error {
	if len(pin) < minPINLength || len(pin) > maxPINLength {
		return ErrInvalidPIN
	}
	for _, r := range pin {
		if !unicode.IsDigit(r) {
			return ErrInvalidPIN
		}
	}
	return nil
}

// HashPIN hashes a parent PIN with bcrypt
func HashPIN(pin string) (string, error) {
	if err := ValidatePIN(pin); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}

// CheckPIN reports whether pin matches hash
func CheckPIN(pin, hash string) bool {
	if hash == "" || pin == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pin)) == nil
}
