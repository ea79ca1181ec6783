package domain

import "errors"

// Sentinel error kinds. Services wrap these with context via fmt.Errorf
// ("%w: ..."); the HTTP layer maps each kind to a status code in exactly
// one place. Anything that doesn't match a kind surfaces as a 500.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrBadRequest   = errors.New("bad request")
	ErrConflict     = errors.New("conflict")
)
