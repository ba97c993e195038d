package models

import "errors"

var (
	// ErrValidation marks client input the service refuses (bad period, missing required field).
	ErrValidation = errors.New("validation failed")
	// ErrStorage marks persistence failures. Callers may retry.
	ErrStorage = errors.New("storage unavailable")
	// ErrNotFound is returned by lookups that matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when a unique key already exists.
	ErrConflict = errors.New("already exists")
)
