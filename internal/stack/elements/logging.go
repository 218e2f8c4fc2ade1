package elements

import (
	"log/slog"
	"time"

	"github.com/jsamuelsen/stackable/internal/platform/logging"
	"github.com/jsamuelsen/stackable/internal/stack"
)

// startKey records when the chain entered this element, for the duration
// reported by the cleanup hooks.
var startKey = stack.NewKey[time.Time]("log.start")

// Logging logs the start and completion of every request flowing through
// the chain. The completion log comes from the cleanup hooks, so it covers
// the whole chain inward of this element and reports the matching outcome.
type Logging struct {
	stack.Base

	logger *slog.Logger
}

// NewLogging creates the logging element.
func NewLogging(logger *slog.Logger) *Logging {
	if logger == nil {
		logger = slog.Default()
	}

	return &Logging{logger: logger}
}

// Name identifies the element.
func (e *Logging) Name() string {
	return "logging"
}

// Proceed logs the start of the request and delegates inward.
func (e *Logging) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	e.log(c).InfoContext(c.Context(), "request started")

	return next(stack.With(c, startKey, time.Now()))
}

// OnSuccess logs the successful completion with its duration.
func (e *Logging) OnSuccess(c stack.Context) error {
	e.log(c).InfoContext(c.Context(), "request completed",
		slog.Duration("duration", e.elapsed(c)),
	)

	return nil
}

// OnFailure logs the failure with its duration and cause.
func (e *Logging) OnFailure(c stack.Context, cause error) error {
	e.log(c).WarnContext(c.Context(), "request failed",
		slog.Duration("duration", e.elapsed(c)),
		slog.Any("error", cause),
	)

	return nil
}

// log prefers the context logger, which a RequestID element stacked outside
// will already have enriched.
func (e *Logging) log(c stack.Context) *slog.Logger {
	if l, ok := logging.Lookup(c.Context()); ok {
		return l
	}

	return e.logger
}

func (e *Logging) elapsed(c stack.Context) time.Duration {
	start, ok := stack.Lookup(c, startKey)
	if !ok {
		return 0
	}

	return time.Since(start)
}
