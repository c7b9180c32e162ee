// Package common defines shared constants and sentinel errors used across
// the pmdadmin server, its CLI and their tests. Callers should use errors.Is
// to match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors, raised before any write reaches a backend.
	ErrorValidation = errors.New("validation error")
	ErrorTooLarge   = errors.New("payload too large")

	// A write against the remote catalog or the blob store failed.
	ErrorUpstream = errors.New("upstream error")

	// Auth errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
