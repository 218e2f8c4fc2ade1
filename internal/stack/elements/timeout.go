package elements

import (
	"context"
	"time"

	"github.com/jsamuelsen/stackable/internal/stack"
)

// Timeout bounds everything stacked inward of it with a deadline. Elements
// and bodies that respect context cancellation stop when it expires; the
// resulting error takes the normal failure-cleanup path.
type Timeout struct {
	stack.Base

	limit time.Duration
}

// NewTimeout creates a timeout element with the given limit.
func NewTimeout(limit time.Duration) *Timeout {
	return &Timeout{limit: limit}
}

// Name identifies the element.
func (e *Timeout) Name() string {
	return "timeout"
}

// Proceed delegates inward under a deadline.
func (e *Timeout) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	if e.limit <= 0 {
		return next(c)
	}

	ctx, cancel := context.WithTimeout(c.Context(), e.limit)
	defer cancel()

	return next(c.WithContext(ctx))
}
