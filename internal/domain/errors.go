package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound covers unknown record IDs and missing attachments.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned when a registration reuses an email.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials is returned on a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned for a malformed, tampered or expired session token.
	ErrInvalidToken = errors.New("invalid or expired token")

	// ErrEmailNotInstitutional rejects registrations from outside the
	// college email domains.
	ErrEmailNotInstitutional = errors.New("please use a valid college email address")
)

// ValidationError reports the required fields missing from a request.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// StorageError wraps a failure of the underlying collection file.
type StorageError struct {
	Collection string
	Op         string // "load" or "save"
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
