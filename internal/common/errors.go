// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")

	// Request validation (missing body fields).
	ErrValidation = errors.New("missing required fields")

	// Auth errors. A request without an Authorization header is distinct
	// from one whose token fails signature or format verification.
	ErrMissingToken = errors.New("token is not provided")
	ErrInvalidToken = errors.New("invalid token")

	// Login with a non-matching email/password pair.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// Authenticated caller does not own the target resource.
	ErrForbidden = errors.New("forbidden")

	// Catch-all for persistence and unexpected failures.
	ErrInternal = errors.New("internal error")
)
