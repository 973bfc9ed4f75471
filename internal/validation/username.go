package validation

import (
	"errors"
	"strings"

	"golang.org/x/text/cases"
)

var usernameFolder = cases.Fold()

// NormalizeUsername trims and case-folds a username so uniqueness is
// case-insensitive regardless of the input script.
func NormalizeUsername(username string) string {
	return usernameFolder.String(strings.TrimSpace(username))
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateUsername checks a normalized username.
func ValidateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}

	if len(username) > 64 {
		return errors.New("username is too long (max 64 characters)")
	}

	if strings.ContainsAny(username, " \t\n/") {
		return errors.New("username must not contain spaces or slashes")
	}

	return nil
}
