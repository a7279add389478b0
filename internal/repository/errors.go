// Package repository implements data access over MySQL. Sentinel
// errors defined here let handlers map failure scenarios onto the HTTP
// taxonomy without inspecting driver error strings themselves.
package repository

import "errors"

// ErrEmailExists is returned when an insert or update would violate the
// unique email constraint. Handlers translate this into a field-level
// validation error.
var ErrEmailExists = errors.New("email already exists")

// ErrNotFound is returned when a referenced entity does not exist.
// Handlers translate this into an HTTP 404 response.
var ErrNotFound = errors.New("not found")
