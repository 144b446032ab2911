package repository

import "errors"

var (
	// ErrDuplicateHandle is returned when a registration loses the
	// uniqueness race on the login handle.
	ErrDuplicateHandle = errors.New("handle already taken")

	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyRented is returned when a checkout finds an open
	// rental for the user.
	ErrAlreadyRented = errors.New("user already has an open rental")

	// ErrNothingRented is returned when a return finds no open rental
	// for the user.
	ErrNothingRented = errors.New("user has no open rental")

	// ErrStorageUnavailable wraps I/O-level storage failures. Callers
	// may retry; the store itself is left unchanged.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
