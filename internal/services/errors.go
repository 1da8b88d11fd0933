// Package services implements the business logic for contact and ticket
// submissions. This file centralizes the service-level error values so they
// can be consistently returned by service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// ErrNotFound indicates that the requested submission does not exist under
// the supplied id or reference number.
var ErrNotFound = errors.New("record not found")

// ValidationError carries the full list of field violations for a rejected
// submission. Handlers surface the list verbatim in the response envelope.
type ValidationError struct {
	Errors []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return "validation failed"
}

// AsValidation unwraps err into a *ValidationError if it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
