// Package repository defines error types that are reused across multiple
// repositories. These sentinel values let handlers distinguish failure
// scenarios without inspecting driver errors: ErrNotFound maps to HTTP 404,
// ErrConflict to 409 (duplicate keys or dependent records blocking a
// delete), ErrEmailExists to 409 on registration.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrConflict is returned when an insert or delete cannot proceed because
// of conflicting state, such as a duplicate unique key or dependent rows.
var ErrConflict = errors.New("conflict")

// ErrEmailExists is returned by the user store when registering an email
// that is already taken.
var ErrEmailExists = errors.New("email already exists")

// isDuplicateKey reports whether the driver error is a MySQL 1062
// duplicate-entry violation. Uniqueness is enforced by the store's unique
// indexes, not by application-level read-then-write checks.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
