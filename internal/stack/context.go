package stack

import "context"

// Context pairs the raw incoming request with its attribute bag and the Go
// context governing the request's lifetime. It is passed by value through
// the chain: elements derive augmented copies with With or WithContext and
// hand those inward, so no two elements ever share a mutable view.
//
// The raw request is opaque to this package. The HTTP adapter passes an
// *http.Request; tests pass whatever is convenient.
type Context struct {
	ctx context.Context
	req any
	bag Bag
}

// NewContext creates a request context wrapping the given raw request with
// an empty attribute bag.
func NewContext(ctx context.Context, req any) Context {
	return Context{ctx: ctx, req: req}
}

// Context returns the Go context governing this request.
func (c Context) Context() context.Context {
	return c.ctx
}

// Request returns the raw request the chain is executing for.
func (c Context) Request() any {
	return c.req
}

// Bag returns the current attribute bag.
func (c Context) Bag() Bag {
	return c.bag
}

// WithContext returns a copy of c governed by ctx. Used by elements that
// narrow the request deadline or enrich the context logger.
func (c Context) WithContext(ctx context.Context) Context {
	c.ctx = ctx
	return c
}

// With returns a copy of c whose bag additionally maps key to value. The
// receiver is unchanged; call sites must use the returned context going
// forward.
func With[T any](c Context, key Key[T], value T) Context {
	c.bag = c.bag.set(key.id, value)
	return c
}

// Get returns the attribute stored under key, or a MissingAttributeError if
// no element has published it. Absence is a programmer error (a mis-ordered
// or missing element); elements that can tolerate absence use Lookup.
func Get[T any](c Context, key Key[T]) (T, error) {
	v, ok := c.bag.lookup(key.id)
	if !ok {
		var zero T
		return zero, &MissingAttributeError{Key: key.Name()}
	}

	return v.(T), nil
}

// Lookup returns the attribute stored under key and whether it was present.
func Lookup[T any](c Context, key Key[T]) (T, bool) {
	v, ok := c.bag.lookup(key.id)
	if !ok {
		var zero T
		return zero, false
	}

	return v.(T), true
}

// Seed pre-populates a request context before any element runs. Seeds carry
// per-invocation configuration, such as the authority level an authorization
// element should enforce for this particular action.
type Seed func(Context) Context

// SeedValue creates a seed that stores value under key.
func SeedValue[T any](key Key[T], value T) Seed {
	return func(c Context) Context {
		return With(c, key, value)
	}
}
