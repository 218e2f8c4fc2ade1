package stack

// Next continues the chain with an (optionally augmented) context. The
// continuation may be invoked from an asynchronous completion callback, but
// for a single request invocations are sequential; cleanup is driven once
// by Action.Run regardless of how many times an element calls it.
type Next func(Context) (Outcome, error)

// Body is the innermost business logic of an action, the terminal
// continuation of every chain.
type Body func(Context) (any, error)

// Element is a composable pipeline stage. Implementations must be stateless
// across requests: one element instance is shared by every request flowing
// through a chain, so any per-request state belongs in the context's
// attribute bag, never on the element.
//
// Embed Base and override only the hooks the behavior needs.
type Element interface {
	// Name identifies the element in logs and error wrappers.
	Name() string

	// Proceed runs the element's pre-processing and delegates inward via
	// next. It may call next with an augmented context (normally exactly
	// once), produce an Outcome without calling next to short-circuit the
	// chain, return an error to fail the request without delegating, or
	// wrap the inward call in error translation.
	Proceed(c Context, next Next) (Outcome, error)

	// OnSuccess releases resources acquired in Proceed after the chain
	// completed successfully. Hooks run innermost-to-outermost; an error
	// here is reported but never prevents outer hooks from running.
	OnSuccess(c Context) error

	// OnFailure mirrors OnSuccess for the failure path, receiving the error
	// that stopped the chain.
	OnFailure(c Context, cause error) error
}

// Base is the identity element: Proceed delegates with the context
// unchanged and both cleanup hooks are no-ops. It is the base case at the
// bottom of every concrete element.
type Base struct{}

// Proceed delegates inward with the context unchanged.
func (Base) Proceed(c Context, next Next) (Outcome, error) {
	return next(c)
}

// OnSuccess is a no-op.
func (Base) OnSuccess(Context) error {
	return nil
}

// OnFailure is a no-op.
func (Base) OnFailure(Context, error) error {
	return nil
}
