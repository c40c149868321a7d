package validator

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrInvalidEmailFormat = errors.New("invalid email format")
	ErrPasswordTooShort   = errors.New("password must be at least 8 characters")
	ErrWeakPassword       = errors.New("password is too common")
)

func Email(email string) error {
	trimmed := strings.TrimSpace(email)
	if trimmed == "" {
		return ErrInvalidEmailFormat
	}
	if _, err := mail.ParseAddress(trimmed); err != nil {
		return ErrInvalidEmailFormat
	}
	return nil
}

// Password enforces a minimum length and rejects a short list of
// passwords that show up in every breach corpus.
func Password(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if isWeakPassword(password) {
		return ErrWeakPassword
	}
	return nil
}

func isWeakPassword(password string) bool {
	normalized := strings.ToLower(strings.TrimSpace(password))

	weak := map[string]struct{}{
		"password":    {},
		"password1":   {},
		"password123": {},
		"123456789":   {},
		"1234567890":  {},
		"12345678":    {},
		"qwertyuiop":  {},
		"letmein1":    {},
		"iloveyou":    {},
		"admin123":    {},
	}

	_, ok := weak[normalized]
	return ok
}
