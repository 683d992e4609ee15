package domain

import "errors"

var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrNotFound           = errors.New("resource not found")
	ErrConflict           = errors.New("conflict")
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrInvalidCredentials hides whether email or password failed.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrAccountNotApproved is returned on login while the account is pending or rejected.
	ErrAccountNotApproved = errors.New("account not approved")

	// Banned-word management outcomes. These are informational, not failures.
	ErrTermExists   = errors.New("banned term already exists")
	ErrTermNotFound = errors.New("banned term not found")
)
