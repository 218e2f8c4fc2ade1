package elements

import (
	"log/slog"

	"github.com/jsamuelsen/stackable/internal/domain"
	"github.com/jsamuelsen/stackable/internal/ports"
	"github.com/jsamuelsen/stackable/internal/stack"
)

// RequiredAuthorityKey carries the authority level an action demands. It is
// seeded per invocation by the controller, not configured on the element:
// the same chain can guard actions with different requirements.
var RequiredAuthorityKey = stack.NewKey[domain.Authority]("auth.required")

// UserKey is the attribute under which the authenticated user is published.
var UserKey = stack.NewKey[*domain.User]("auth.user")

// Authorize authenticates the caller before the inner chain runs. A request
// that fails authorization never reaches the elements stacked inside this
// one; the chain stops here and the failure cleanup pass runs.
type Authorize struct {
	stack.Base

	authorizer ports.Authorizer
	logger     *slog.Logger
}

// NewAuthorize creates the authorization element around the given authorizer.
func NewAuthorize(authorizer ports.Authorizer, logger *slog.Logger) *Authorize {
	if logger == nil {
		logger = slog.Default()
	}

	return &Authorize{authorizer: authorizer, logger: logger}
}

// Name identifies the element.
func (e *Authorize) Name() string {
	return "authorize"
}

// Proceed authorizes the caller and publishes the user, or stops the chain.
// A missing RequiredAuthorityKey seed is a programmer error and fails fast.
func (e *Authorize) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	required, err := stack.Get(c, RequiredAuthorityKey)
	if err != nil {
		return stack.Outcome{}, err
	}

	user, err := e.authorizer.Authorize(c.Context(), required, c.Request())
	if err != nil {
		e.logger.InfoContext(c.Context(), "authorization denied",
			slog.String("required", required.String()),
			slog.Any("error", err),
		)

		return stack.Outcome{}, err
	}

	return next(stack.With(c, UserKey, user))
}
