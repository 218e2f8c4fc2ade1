package stack

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// runState tracks where a single request is in its lifecycle. Transitions
// are linear: created → running → succeeded|failed → cleanup → completed.
// No path skips cleanup.
type runState string

const (
	stateRunning   runState = "running"
	stateSucceeded runState = "succeeded"
	stateFailed    runState = "failed"
	stateCleanup   runState = "cleanup"
	stateCompleted runState = "completed"
)

// Action is the outward-facing entry point a controller invokes. It owns a
// chain and guarantees that for every Run the matching cleanup pass fires
// exactly once, in reverse stacking order, whatever the chain did.
type Action struct {
	chain  *Chain
	logger *slog.Logger
}

// ActionConfig holds optional configuration for an action.
type ActionConfig struct {
	Logger *slog.Logger
}

// NewAction creates an action around the given chain.
func NewAction(chain *Chain, cfg *ActionConfig) *Action {
	logger := slog.Default()
	if cfg != nil && cfg.Logger != nil {
		logger = cfg.Logger
	}

	return &Action{
		chain:  chain,
		logger: logger.With(slog.String("component", "stack.Action")),
	}
}

// Chain returns the chain this action executes.
func (a *Action) Chain() *Chain {
	return a.chain
}

// Run executes the full chain around body for one request.
//
// The request context is created from ctx and req, pre-populated by seeds,
// and threaded outermost-in through every element's Proceed. Whether the
// chain produced a body result, a short-circuited answer, or a failure,
// Run drives the cleanup pass once from the top:
// OnSuccess for every element on success, OnFailure with the cause on
// failure, innermost to outermost either way. Driving cleanup here rather
// than inside each Proceed is what keeps the hooks exactly-once even when
// an element retries its inward call.
//
// Failures are returned with the original cause intact (reachable via
// errors.Is and errors.As); Run never converts a failure into a success.
// Cleanup hooks run on the deepest context the request reached, so each
// element sees everything it published.
func (a *Action) Run(ctx context.Context, req any, seeds []Seed, body Body) (Outcome, error) {
	c := NewContext(ctx, req)
	for _, seed := range seeds {
		c = seed(c)
	}

	logger := a.logger
	start := time.Now()

	logger.DebugContext(ctx, "action started",
		slog.String("state", string(stateRunning)),
		slog.Int("elements", a.chain.Len()),
	)

	// The chain hands contexts inward only; the deepest one recorded is the
	// view every cleanup hook receives. Hops for a single request are
	// sequential even when an element suspends, so a plain variable is safe.
	deepest := c
	record := func(cc Context) { deepest = cc }

	out, err := a.chain.compose(record, body)(c)

	if err != nil {
		logger.DebugContext(ctx, "action failed",
			slog.String("state", string(stateFailed)),
			slog.Any("error", err),
		)

		a.cleanupFailure(deepest, err)

		logger.DebugContext(ctx, "action completed",
			slog.String("state", string(stateCompleted)),
			slog.Duration("duration", time.Since(start)),
		)

		return Outcome{}, err
	}

	logger.DebugContext(ctx, "action succeeded",
		slog.String("state", string(stateSucceeded)),
		slog.Bool("short_circuited", out.ShortCircuited),
	)

	cleanupErr := a.cleanupSuccess(deepest)

	logger.DebugContext(ctx, "action completed",
		slog.String("state", string(stateCompleted)),
		slog.Duration("duration", time.Since(start)),
	)

	if cleanupErr != nil {
		return out, cleanupErr
	}

	return out, nil
}

// cleanupSuccess invokes every element's OnSuccess, innermost first. Hook
// errors are collected, never allowed to skip outer hooks, and surfaced as
// a single CleanupError.
func (a *Action) cleanupSuccess(c Context) error {
	logger := a.logger.With(slog.String("state", string(stateCleanup)))

	var errs []error

	elements := a.chain.elements
	for i := len(elements) - 1; i >= 0; i-- {
		el := elements[i]

		err := runHook(el, HookSuccess, func() error { return el.OnSuccess(c) })
		if err != nil {
			logger.ErrorContext(c.Context(), "success cleanup failed",
				slog.String("element", el.Name()),
				slog.Any("error", err),
			)

			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return &CleanupError{Errs: errs}
	}

	return nil
}

// cleanupFailure invokes every element's OnFailure with the triggering
// error, innermost first. Hook errors are logged rather than returned: the
// original failure is what surfaces to the caller.
func (a *Action) cleanupFailure(c Context, cause error) {
	logger := a.logger.With(slog.String("state", string(stateCleanup)))

	elements := a.chain.elements
	for i := len(elements) - 1; i >= 0; i-- {
		el := elements[i]

		err := runHook(el, HookFailure, func() error { return el.OnFailure(c, cause) })
		if err != nil {
			logger.ErrorContext(c.Context(), "failure cleanup failed",
				slog.String("element", el.Name()),
				slog.Any("error", err),
			)
		}
	}
}

// runHook invokes a cleanup hook with panic containment, so one element's
// misbehaving cleanup can never skip the elements outward of it.
func runHook(el Element, hook Hook, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ElementError{Element: el.Name(), Hook: hook, Cause: fmt.Errorf("panic: %v", r)}
		}
	}()

	err = fn()
	if err != nil {
		err = &ElementError{Element: el.Name(), Hook: hook, Cause: err}
	}

	return err
}
