package cmd

import "errors"

var (
	// ErrOperationFailed is returned when a service operation reports failure.
	// The details have already been logged.
	ErrOperationFailed = errors.New("operation failed, see the log for details")

	// ErrRequiresAdmin is returned when an operation requires administrator privileges.
	ErrRequiresAdmin = errors.New("this operation requires administrator privileges")

	// ErrNoServiceName is returned when no service name was given.
	ErrNoServiceName = errors.New("no service name provided")
)
