package gateway

import "fmt"

// ForbiddenError is a 403: the operator stays where they are, the session is
// left untouched.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	if e.Message == "" {
		return "access denied"
	}
	return e.Message
}

// ConflictError is a 409 passed through as a distinct outcome. Callers may
// treat it as non-fatal reconciliation rather than failure.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return "conflict"
	}
	return e.Message
}

// ServerError is any other non-2xx response.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server error (status %d)", e.Status)
	}
	return e.Message
}

// ConnectivityError means no response was received at all.
type ConnectivityError struct {
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("cannot reach server: %v", e.Err)
}

func (e *ConnectivityError) Unwrap() error {
	return e.Err
}
