// Package common defines shared constants and sentinel errors used across
// the lenderctl client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Session-level errors.
	ErrNoSession  = errors.New("no active session")
	ErrRoleDenied = errors.New("role not permitted")

	// ErrSessionExpired marks a 401 that the gateway has already handled
	// (session destroyed, operator notified). Callers must not report it
	// a second time.
	ErrSessionExpired = errors.New("session expired")

	// Validation errors (local, pre-network).
	ErrInvalidNationalID = errors.New("national id must be exactly 9 digits")
	ErrMissingField      = errors.New("required field missing")
	ErrInvalidStatus     = errors.New("invalid status")
)
