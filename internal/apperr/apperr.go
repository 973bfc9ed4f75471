// Package apperr defines the error taxonomy shared by services and handlers.
// Every operational failure is tagged with an HTTP-style status code so the
// HTTP layer can map it to a response without inspecting service internals.
package apperr

import (
	"errors"
	"net/http"
)

// Sentinel errors for each failure category. Services wrap these via the
// constructors below; callers test with errors.Is.
var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpiredOrUsed = errors.New("token expired or already used")
	ErrNotFound           = errors.New("not found")
	ErrUploadFailed       = errors.New("upload failed")
	ErrInternal           = errors.New("internal error")
)

// Error carries a user-facing message and an HTTP status alongside the
// underlying cause.
type Error struct {
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func Validation(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

func Conflict(message string) *Error {
	return &Error{Status: http.StatusConflict, Message: message, Err: ErrConflict}
}

// InvalidCredentials always carries the same external message so a failed
// lookup is indistinguishable from a wrong password.
func InvalidCredentials() *Error {
	return &Error{Status: http.StatusUnauthorized, Message: "invalid username, email or password", Err: ErrInvalidCredentials}
}

func Unauthorized(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

func TokenInvalid(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message, Err: ErrTokenInvalid}
}

func TokenExpiredOrUsed(message string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: message, Err: ErrTokenExpiredOrUsed}
}

func NotFound(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

func UploadFailed(message string, cause error) *Error {
	err := ErrUploadFailed
	if cause != nil {
		err = errors.Join(ErrUploadFailed, cause)
	}
	return &Error{Status: http.StatusBadGateway, Message: message, Err: err}
}

func Internal(cause error) *Error {
	err := ErrInternal
	if cause != nil {
		err = errors.Join(ErrInternal, cause)
	}
	return &Error{Status: http.StatusInternalServerError, Message: "something went wrong", Err: err}
}

// StatusOf extracts the HTTP status from err, defaulting to 500 for
// untagged errors.
func StatusOf(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return http.StatusInternalServerError
}

// MessageOf extracts the user-facing message from err. Untagged errors get a
// generic message so internal detail never leaks to clients.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return "something went wrong"
}
