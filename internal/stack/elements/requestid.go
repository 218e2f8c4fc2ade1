package elements

import (
	"github.com/google/uuid"

	"github.com/jsamuelsen/stackable/internal/platform/logging"
	"github.com/jsamuelsen/stackable/internal/stack"
)

// RequestIDKey is the attribute under which the request's identifier is
// published.
var RequestIDKey = stack.NewKey[string]("request.id")

// RequestID assigns every request a unique identifier and enriches the
// context logger with it, so everything logged inward of this element
// carries the ID. Stack it outermost.
type RequestID struct {
	stack.Base
}

// NewRequestID creates the request ID element.
func NewRequestID() *RequestID {
	return &RequestID{}
}

// Name identifies the element.
func (e *RequestID) Name() string {
	return "request-id"
}

// Proceed publishes a fresh ID and delegates inward with an enriched logger.
func (e *RequestID) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	id := uuid.NewString()

	c = c.WithContext(logging.WithRequestID(c.Context(), id))

	return next(stack.With(c, RequestIDKey, id))
}
