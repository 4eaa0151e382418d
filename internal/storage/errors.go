package storage

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTransport is returned when an operation is requested
	// against a backend the configuration does not select, or that the
	// selected backend cannot perform (presigning under the database
	// transport).
	ErrInvalidTransport = errors.New("storage: invalid upload transport")

	// ErrMissingConfig is returned when a required setting is absent.
	// It is always wrapped with the name of the missing field.
	ErrMissingConfig = errors.New("storage: missing required setting")

	// ErrNotFound is returned by Get when the object does not exist.
	ErrNotFound = errors.New("storage: object not found")
)

// missingConfig wraps ErrMissingConfig with the offending field name so
// operators see exactly which setting to fix.
func missingConfig(field string) error {
	return fmt.Errorf("%w: %s", ErrMissingConfig, field)
}
