// Package apperr defines the error taxonomy shared by the stores, the
// composer and the validators. All three kinds are expected, recoverable
// outcomes; anything else that bubbles out of a store is an infrastructure
// failure and is passed through untouched.
package apperr

import "errors"

// ValidationError rejects malformed input: empty field, bad email shape,
// mismatched passwords, blank message text. The reason is shown to the
// caller verbatim.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// ConflictError rejects an operation that contradicts existing state:
// a taken username or a self-follow.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// NotFoundError reports that a referenced user does not exist. It is kept
// distinct from ValidationError so "no such user" and "wrong password" stay
// distinguishable at the edge.
type NotFoundError struct {
	Reason string
}

func (e *NotFoundError) Error() string { return e.Reason }

func Validation(reason string) error { return &ValidationError{Reason: reason} }
func Conflict(reason string) error   { return &ConflictError{Reason: reason} }
func NotFound(reason string) error   { return &NotFoundError{Reason: reason} }

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

func IsNotFound(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}
