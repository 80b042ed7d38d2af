// Package apperr defines sentinel errors shared across the application.
package apperr

import "errors"

var (
	// ErrUnauthenticated is returned when no caller identity is present.
	ErrUnauthenticated = errors.New("not authenticated")
	// ErrUnauthorized is returned when the caller identity does not match
	// the resource owner.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned on duplicate creation.
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidValue is returned when input fails domain validation.
	ErrInvalidValue = errors.New("invalid value")
)
