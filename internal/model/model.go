// Package model contains domain models/data structures.
// These are pure domain types with no database-specific dependencies or
// tags, usable across layers (HTTP, service, storage) without coupling
// to persistence.
package model

// User is the authenticated account a session resolves to.
type User struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Limits holds per-axis counts used for both quota and remaining values.
type Limits struct {
	Documents       int `json:"documents"`
	Recipients      int `json:"recipients"`
	DirectTemplates int `json:"directTemplates"`
}

// QuotaResult is the computed limits response returned to callers.
// It is derived fresh on every call and never cached server-side.
type QuotaResult struct {
	Quota                    Limits `json:"quota"`
	Remaining                Limits `json:"remaining"`
	MaximumEnvelopeItemCount int    `json:"maximumEnvelopeItemCount"`
}
