package elements

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/jsamuelsen/stackable/internal/ports"
	"github.com/jsamuelsen/stackable/internal/stack"
)

// SessionKey is the attribute under which the database session is published.
var SessionKey = stack.NewKey[ports.Session]("db.session")

// DBSession opens a transactional session before the inner chain runs and
// resolves it afterwards: commit on success, rollback on failure, close in
// both cases. The session lives in the attribute bag, so the element itself
// stays stateless across requests.
type DBSession struct {
	stack.Base

	provider ports.SessionProvider
	logger   *slog.Logger
}

// NewDBSession creates the session element around the given provider.
func NewDBSession(provider ports.SessionProvider, logger *slog.Logger) *DBSession {
	if logger == nil {
		logger = slog.Default()
	}

	return &DBSession{provider: provider, logger: logger}
}

// Name identifies the element.
func (e *DBSession) Name() string {
	return "db-session"
}

// Proceed begins a session, publishes it, and delegates inward.
func (e *DBSession) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	sess, err := e.provider.Begin(c.Context())
	if err != nil {
		return stack.Outcome{}, fmt.Errorf("beginning session: %w", err)
	}

	return next(stack.With(c, SessionKey, sess))
}

// OnSuccess commits and closes the session. Close is attempted even when
// the commit fails.
func (e *DBSession) OnSuccess(c stack.Context) error {
	sess, ok := stack.Lookup(c, SessionKey)
	if !ok {
		// The chain stopped before Proceed ran; nothing to resolve.
		return nil
	}

	commitErr := sess.Commit()
	if commitErr != nil {
		e.logger.ErrorContext(c.Context(), "session commit failed", slog.Any("error", commitErr))
	}

	return errors.Join(commitErr, sess.Close())
}

// OnFailure rolls back and closes the session.
func (e *DBSession) OnFailure(c stack.Context, _ error) error {
	sess, ok := stack.Lookup(c, SessionKey)
	if !ok {
		return nil
	}

	return errors.Join(sess.Rollback(), sess.Close())
}
