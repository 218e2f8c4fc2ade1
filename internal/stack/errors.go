package stack

import (
	"errors"
	"fmt"
)

// Hook names an element hook for error reporting.
type Hook string

const (
	// HookProceed is the pre-processing hook.
	HookProceed Hook = "proceed"

	// HookSuccess is the success-path cleanup hook.
	HookSuccess Hook = "on_success"

	// HookFailure is the failure-path cleanup hook.
	HookFailure Hook = "on_failure"
)

// MissingAttributeError is returned by Get when no element has published
// the requested key. It indicates a mis-assembled chain, not a runtime
// condition, so callers should not default around it; elements that can
// tolerate absence use Lookup instead.
type MissingAttributeError struct {
	Key string
}

// Error implements the error interface.
func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("attribute %q not set", e.Key)
}

// BodyError marks a failure raised by the innermost business logic. The
// original error is reachable through Unwrap, so errors.Is and errors.As
// see the cause unchanged.
type BodyError struct {
	Cause error
}

// Error implements the error interface.
func (e *BodyError) Error() string {
	return "body failed: " + e.Cause.Error()
}

// Unwrap returns the underlying cause.
func (e *BodyError) Unwrap() error {
	return e.Cause
}

// ElementError marks a failure raised by an element hook rather than by the
// body, recording which element and hook failed. The original error is
// reachable through Unwrap.
type ElementError struct {
	Element string
	Hook    Hook
	Cause   error
}

// Error implements the error interface.
func (e *ElementError) Error() string {
	return fmt.Sprintf("element %q %s failed: %v", e.Element, e.Hook, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *ElementError) Unwrap() error {
	return e.Cause
}

// CleanupError aggregates errors raised by success-path cleanup hooks. The
// chain's outcome was produced, but releasing resources partially failed;
// callers decide whether that poisons the result (a failed commit usually
// does).
type CleanupError struct {
	Errs []error
}

// Error implements the error interface.
func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed: %v", errors.Join(e.Errs...))
}

// Unwrap exposes the individual hook errors to errors.Is and errors.As.
func (e *CleanupError) Unwrap() []error {
	return e.Errs
}

// classified reports whether err has already been tagged as a body or
// element failure somewhere down the chain. Elements that merely propagate
// or wrap an inner failure keep its original classification.
func classified(err error) bool {
	var bodyErr *BodyError
	if errors.As(err, &bodyErr) {
		return true
	}

	var elemErr *ElementError

	return errors.As(err, &elemErr)
}
