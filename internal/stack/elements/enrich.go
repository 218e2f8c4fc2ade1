package elements

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jsamuelsen/stackable/internal/ports"
	"github.com/jsamuelsen/stackable/internal/stack"
)

// FailurePolicy decides what an Enrich element does when a source fails or
// times out. The choice is per element: some enrichments are decorative and
// should degrade, others are load-bearing and should fail the request.
type FailurePolicy string

const (
	// FailurePolicyFallback proceeds inward with the context unmodified by
	// the failed source. The request still produces an outcome.
	FailurePolicyFallback FailurePolicy = "fallback"

	// FailurePolicyFail stops the chain with the source's error.
	FailurePolicyFail FailurePolicy = "fail"
)

// enrichPolicyFlag optionally overrides the configured policy at runtime.
const enrichPolicyFlag = "enrich.failure_policy"

// DefaultEnrichTimeout bounds source fetches when no timeout is configured.
const DefaultEnrichTimeout = 5 * time.Second

// Source is one named asynchronous fetch whose result is published on the
// context before the inner chain runs.
type Source struct {
	name  string
	fetch func(ctx context.Context) (stack.Seed, error)
}

// NewSource creates a source that stores the fetched value under key.
func NewSource[T any](name string, key stack.Key[T], fetch func(context.Context) (T, error)) Source {
	return Source{
		name: name,
		fetch: func(ctx context.Context) (stack.Seed, error) {
			v, err := fetch(ctx)
			if err != nil {
				return nil, err
			}

			return stack.SeedValue(key, v), nil
		},
	}
}

// Name returns the source's diagnostic name.
func (s Source) Name() string {
	return s.name
}

// Enrich fetches its sources concurrently, bounded by a timeout, and
// publishes the results before delegating inward. Whatever happens to the
// sources, an outcome is always produced: failures either degrade to the
// unmodified context or stop the chain explicitly, per the element's policy.
type Enrich struct {
	stack.Base

	sources []Source
	timeout time.Duration
	policy  FailurePolicy
	flags   ports.FeatureFlags
	logger  *slog.Logger
}

// EnrichConfig configures an Enrich element.
type EnrichConfig struct {
	// Sources are the fetches to run. Results are applied in source order.
	Sources []Source

	// Timeout bounds all fetches together. Defaults to DefaultEnrichTimeout.
	Timeout time.Duration

	// Policy is the failure policy. Defaults to FailurePolicyFallback.
	Policy FailurePolicy

	// Flags optionally overrides Policy at runtime via the
	// "enrich.failure_policy" flag.
	Flags ports.FeatureFlags

	Logger *slog.Logger
}

// NewEnrich creates the enrichment element.
func NewEnrich(cfg EnrichConfig) *Enrich {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultEnrichTimeout
	}

	policy := cfg.Policy
	if policy == "" {
		policy = FailurePolicyFallback
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Enrich{
		sources: cfg.Sources,
		timeout: timeout,
		policy:  policy,
		flags:   cfg.Flags,
		logger:  logger,
	}
}

// Name identifies the element.
func (e *Enrich) Name() string {
	return "enrich"
}

// Proceed fetches all sources concurrently, applies the successful results
// to the context in source order, and delegates inward.
func (e *Enrich) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	if len(e.sources) == 0 {
		return next(c)
	}

	policy := e.resolvePolicy(c.Context())

	ctx, cancel := context.WithTimeout(c.Context(), e.timeout)
	defer cancel()

	fetches := make([]func(context.Context) (stack.Seed, error), len(e.sources))
	for i, src := range e.sources {
		fetches[i] = func(ctx context.Context) (stack.Seed, error) {
			seed, err := src.fetch(ctx)
			if err != nil {
				return nil, fmt.Errorf("enriching %q: %w", src.name, err)
			}

			return seed, nil
		}
	}

	// Under the fail policy the first error is terminal, so in-flight
	// siblings are canceled rather than awaited for nothing.
	if policy == FailurePolicyFail {
		seeds, err := stack.Parallel(ctx, fetches...)
		if err != nil {
			return stack.Outcome{}, err
		}

		for _, seed := range seeds {
			c = seed(c)
		}

		return next(c)
	}

	results := stack.ParallelPartial(ctx, fetches...)

	for i, r := range results {
		if r.Err != nil {
			e.logger.WarnContext(c.Context(), "enrichment source failed, proceeding without it",
				slog.String("source", e.sources[i].name),
				slog.Any("error", r.Err),
			)

			continue
		}

		c = r.Value(c)
	}

	return next(c)
}

// resolvePolicy applies the runtime flag override, if a flag provider is
// configured and the override names a valid policy.
func (e *Enrich) resolvePolicy(ctx context.Context) FailurePolicy {
	if e.flags == nil {
		return e.policy
	}

	override := FailurePolicy(e.flags.GetString(ctx, enrichPolicyFlag, string(e.policy)))
	switch override {
	case FailurePolicyFail, FailurePolicyFallback:
		return override
	default:
		return e.policy
	}
}
