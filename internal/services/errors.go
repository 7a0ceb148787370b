package services

import "errors"

var (
	ErrOrderNotFound    = errors.New("order not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidSignature = errors.New("invalid payment signature")
)

// ValidationError reports a missing or malformed request field. Message is
// safe to return to the client.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func required(field string) *ValidationError {
	return &ValidationError{Field: field, Message: field + " is required"}
}
