package repository

import "errors"

// ErrNotFound is returned when a requested row does not exist. Callers
// distinguish it from state errors with errors.Is.
var ErrNotFound = errors.New("not found")
