// Package common contains shared constants and sentinel errors used across
// pressroom components. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorForbidden    = errors.New("forbidden")

	// Auth errors (absent, invalid or malformed token).
	ErrorMissingToken = errors.New("missing token")
	ErrorInvalidToken = errors.New("invalid token")
)
