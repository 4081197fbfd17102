// Package id generates and validates the opaque identifiers used for ledger rows.
package id

import (
	"strings"

	"github.com/google/uuid"
)

// New returns a random (v4) UUID in canonical lowercase form.
func New() string {
	return uuid.NewString()
}

// IsValid reports whether s is a canonical UUID.
func IsValid(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// Normalize lowercases a UUID so lookups are case-insensitive for callers that echo ids
// back in upper case.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
