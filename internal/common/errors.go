// Package common defines shared constants and sentinel errors used across
// the console and the reference backend. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Validation errors (malformed payloads, unknown enum values).
	ErrValidation = errors.New("validation error")
)
