package domain

import "errors"

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist or is not owned by the caller.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing destination, duration out of range).
// Handlers should map this to HTTP 400 Bad Request.
var ErrValidation = errors.New("validation error")

// ErrConflict is returned when a unique constraint would be violated,
// e.g. registering an email that already has an account.
// Handlers should map this to HTTP 409.
var ErrConflict = errors.New("conflict")

// ErrUnauthorized is returned for bad credentials or an invalid token.
// Handlers should map this to HTTP 401.
var ErrUnauthorized = errors.New("unauthorized")
