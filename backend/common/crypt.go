package common

import (
	"regexp"

	"golang.org/x/crypto/bcrypt"
)

// Password2Hash hashes a plaintext password with bcrypt.
func Password2Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ValidatePasswordAndHash reports whether password matches the stored hash.
// A malformed hash yields false, never an error.
func ValidatePasswordAndHash(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

var (
	hasUpperRegexp   = regexp.MustCompile(`[A-Z]`)
	hasLowerRegexp   = regexp.MustCompile(`[a-z]`)
	hasDigitRegexp   = regexp.MustCompile(`[0-9]`)
	hasSpecialRegexp = regexp.MustCompile(`[!@#$%^&*(),.?":{}|<>]`)
)

// ValidatePasswordStrength is the registration-time acceptance policy:
// at least 8 characters with an upper-case letter, a lower-case letter, a
// digit and a character from the fixed punctuation set. Pure predicate, no
// side effects.
func ValidatePasswordStrength(password string) bool {
	if len(password) < 8 {
		return false
	}
	return hasUpperRegexp.MatchString(password) &&
		hasLowerRegexp.MatchString(password) &&
		hasDigitRegexp.MatchString(password) &&
		hasSpecialRegexp.MatchString(password)
}
