package core

import "errors"

var (
	// ErrFormClosed is returned by form input functions when no form is open.
	ErrFormClosed = errors.New("form is not open")

	// ErrEditDisabled is returned when editing is switched off by configuration.
	ErrEditDisabled = errors.New("editing users is disabled")

	// ErrDeleteDisabled is returned when deleting is switched off by configuration.
	ErrDeleteDisabled = errors.New("deleting users is disabled")

	// ErrUserNotFound is returned by lookups that need an existing user.
	ErrUserNotFound = errors.New("user not found")

	// ErrStorage wraps failures of the durable backend.
	ErrStorage = errors.New("storage write failed")

	// ErrBadRequest marks malformed client input at the transport layer.
	ErrBadRequest = errors.New("bad request")
)
