package repository

import "strings"

// ConstraintError is returned when the store rejects a record as invalid
// rather than failing to reach it.
type ConstraintError struct {
	Details []string
	Err     error
}

func (e *ConstraintError) Error() string {
	return "constraint violation: " + strings.Join(e.Details, "; ")
}

func (e *ConstraintError) Unwrap() error { return e.Err }
