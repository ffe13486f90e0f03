package internal

import (
	"errors"
	"net/mail"
	"strings"
)

const maxEmailLength = 254

// ValidateEmail checks that email is a single bare RFC 5322 address.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email must not be empty")
	}
	if len(email) > maxEmailLength {
		return errors.New("email too long")
	}
	if strings.ContainsAny(email, " \t\r\n") {
		return errors.New("email must not contain whitespace")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("email is not well formed")
	}
	if addr.Address != email {
		return errors.New("email must be a bare address")
	}

	return nil
}

// NormalizeEmail lowercases and trims an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
