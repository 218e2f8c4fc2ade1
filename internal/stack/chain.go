package stack

import "fmt"

// Chain is an explicit ordered sequence of elements, outermost first.
// It is built once, at controller construction, and immutable afterwards;
// a single chain (and its element instances) is shared by all requests the
// controller handles.
type Chain struct {
	elements []Element
}

// NewChain builds a chain from the given elements. The argument order is
// the authoritative stacking order: elements[0] is outermost, runs its
// pre-processing first and its cleanup last.
func NewChain(elements ...Element) *Chain {
	elems := make([]Element, len(elements))
	copy(elems, elements)

	return &Chain{elements: elems}
}

// Elements returns a copy of the stacking order, for inspection.
func (ch *Chain) Elements() []Element {
	elems := make([]Element, len(ch.elements))
	copy(elems, ch.elements)

	return elems
}

// Len returns the number of stacked elements.
func (ch *Chain) Len() int {
	return len(ch.elements)
}

// compose builds the effective proceed function: each element's Proceed
// nested around the next, terminating in body. record is invoked with the
// context at every inward hop, so the runner can hand cleanup hooks the
// deepest context the request reached.
//
// Every hop contains panics from the hook it guards, converting them to
// classified errors so an outcome always reaches the runner and cleanup is
// never skipped.
func (ch *Chain) compose(record func(Context), body Body) Next {
	next := Next(func(c Context) (out Outcome, err error) {
		defer func() {
			if r := recover(); r != nil {
				err = &BodyError{Cause: fmt.Errorf("panic: %v", r)}
			}
		}()

		record(c)

		v, bodyErr := body(c)
		if bodyErr != nil {
			return Outcome{}, &BodyError{Cause: bodyErr}
		}

		return OK(v), nil
	})

	for i := len(ch.elements) - 1; i >= 0; i-- {
		el := ch.elements[i]
		inner := next

		next = func(c Context) (out Outcome, err error) {
			defer func() {
				if r := recover(); r != nil {
					err = &ElementError{
						Element: el.Name(),
						Hook:    HookProceed,
						Cause:   fmt.Errorf("panic: %v", r),
					}
				}
			}()

			record(c)

			out, err = el.Proceed(c, inner)
			if err != nil && !classified(err) {
				err = &ElementError{Element: el.Name(), Hook: HookProceed, Cause: err}
			}

			return out, err
		}
	}

	return next
}
