package domain

import "errors"

// Sentinel errors for the application. Repositories and services return
// these (possibly wrapped); the HTTP boundary maps them to status codes.
//
// ErrNotFound covers both "entity absent" and "caller is not a member" so
// that unauthorized callers cannot probe for existence.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrDuplicate     = errors.New("resource already exists")
	ErrSelfReference = errors.New("cannot reference yourself")
	ErrForbidden     = errors.New("forbidden")
	ErrValidation    = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized access")
	ErrInternal      = errors.New("internal server error")
)
