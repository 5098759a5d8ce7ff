package services

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

const (
	minPasswordLength = 8
	maxPasswordLength = 128
)

var ErrWeakPassword = errors.New("weak password")

// PasswordPolicyHint is shown to people whose sign-up password is rejected.
const PasswordPolicyHint = "Password must be 8 to 128 characters and include an upper-case letter, a lower-case letter and a digit"

// ValidatePasswordStrength applies the sign-up password policy. The reset
// command uses it too so temporary passwords are always accepted.
func ValidatePasswordStrength(password string) error {
	length := utf8.RuneCountInString(password)
	if length < minPasswordLength || length > maxPasswordLength {
		return ErrWeakPassword
	}

	var upper, lower, digit bool
	for _, char := range password {
		upper = upper || unicode.IsUpper(char)
		lower = lower || unicode.IsLower(char)
		digit = digit || unicode.IsDigit(char)
	}
	if !upper || !lower || !digit {
		return ErrWeakPassword
	}
	return nil
}
