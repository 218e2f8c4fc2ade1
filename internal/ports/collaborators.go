// Package ports defines interfaces for the collaborators the stacking core
// consumes but does not implement. Adapters provide the concrete versions,
// keeping the chain and its elements free of HTTP, driver, and auth-library
// specifics.
//
// Port Design Principles:
//   - Context as first parameter (always) for cancellation and deadlines
//   - Return domain types, never external DTOs or infrastructure types
//   - Error returns use domain error types (ErrForbidden, ErrUnavailable, etc.)
//   - Keep interfaces small and focused (Interface Segregation Principle)
package ports

import (
	"context"

	"github.com/jsamuelsen/stackable/internal/domain"
)

// Authorizer authenticates the caller behind a raw request and verifies it
// holds at least the required authority.
type Authorizer interface {
	// Authorize returns the authenticated user when the request carries
	// valid credentials of sufficient authority. Returns
	// domain.ErrUnauthorized when credentials are absent or invalid and
	// domain.ErrForbidden when the authority level is insufficient.
	Authorize(ctx context.Context, required domain.Authority, req any) (*domain.User, error)
}

// SessionProvider hands out transactional database sessions.
type SessionProvider interface {
	// Begin opens a new session. Returns domain.ErrUnavailable if the
	// underlying store is unreachable.
	Begin(ctx context.Context) (Session, error)
}

// Session is one transactional unit of work, owned exclusively by a single
// request between Begin and the matching cleanup hook.
type Session interface {
	// Commit makes the session's writes durable.
	Commit() error

	// Rollback discards the session's writes.
	Rollback() error

	// Close releases the session. Safe to call after Commit or Rollback;
	// closing a session that is still open discards its writes.
	Close() error
}

// TemplateSelector picks the response template for a request. It must be a
// pure function of the request (typically its headers).
type TemplateSelector interface {
	// Select returns the template the response should be rendered with.
	Select(req any) domain.Template
}

// FeatureFlags defines the contract for feature flag evaluation, allowing
// behavior toggles without knowing the underlying provider. Always provide
// a default value for graceful degradation.
type FeatureFlags interface {
	// IsEnabled checks if a boolean feature flag is enabled.
	// Returns defaultValue if the flag doesn't exist or evaluation fails.
	IsEnabled(ctx context.Context, flag string, defaultValue bool) bool

	// GetString retrieves a string feature flag value.
	// Returns defaultValue if the flag doesn't exist or evaluation fails.
	GetString(ctx context.Context, flag string, defaultValue string) string
}
