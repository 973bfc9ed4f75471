package validation

import (
	"errors"
	"net/mail"
)

// ValidateEmail checks format and length using Go's RFC 5322 parser.
func ValidateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	// RFC 5321: 254 characters is the practical maximum for an address
	if len(email) > 254 {
		return errors.New("email address is too long (max 254 characters)")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return errors.New("invalid email address format")
	}

	return nil
}
