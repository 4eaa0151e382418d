// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
package repository

import "errors"

// ErrUnavailable signals that a backing table is missing or the store is
// otherwise misconfigured, as opposed to an ordinary query failure.
// Callers can surface actionable remediation (run migrations) for it.
var ErrUnavailable = errors.New("repository: backing store unavailable")
