package service

import "errors"

// ValidationError rejects a request before any write happens: missing or
// invalid fields, duplicate line items, non-positive quantities or prices.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }

func validationf(msg string) error { return &ValidationError{Msg: msg} }

// StateConflictError rejects a lifecycle transition that is illegal from the
// current state, e.g. receiving an already-received purchase order. The
// message is the exact user-facing explanation for that transition.
type StateConflictError struct{ Msg string }

func (e *StateConflictError) Error() string { return e.Msg }

func conflictf(msg string) error { return &StateConflictError{Msg: msg} }

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsStateConflict reports whether err is (or wraps) a StateConflictError.
func IsStateConflict(err error) bool {
	var c *StateConflictError
	return errors.As(err, &c)
}
