package benchmark

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jsamuelsen/stackable/internal/stack"
)

// passthroughElement delegates inward after publishing one attribute, the
// typical shape of a real element.
type passthroughElement struct {
	stack.Base

	key stack.Key[int]
	n   int
}

func (e *passthroughElement) Name() string { return "passthrough" }

func (e *passthroughElement) Proceed(c stack.Context, next stack.Next) (stack.Outcome, error) {
	return next(stack.With(c, e.key, e.n))
}

func newBenchAction(depth int) *stack.Action {
	elements := make([]stack.Element, depth)
	for i := range depth {
		elements[i] = &passthroughElement{key: stack.NewKey[int]("bench.key"), n: i}
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return stack.NewAction(stack.NewChain(elements...), &stack.ActionConfig{Logger: logger})
}

// BenchmarkAction_Run measures the per-request overhead of the chain at
// typical stacking depths.
func BenchmarkAction_Run(b *testing.B) {
	depths := []struct {
		name  string
		depth int
	}{
		{name: "empty", depth: 0},
		{name: "depth3", depth: 3},
		{name: "depth6", depth: 6},
		{name: "depth12", depth: 12},
	}

	body := func(stack.Context) (any, error) { return "ok", nil }

	for _, tt := range depths {
		b.Run(tt.name, func(b *testing.B) {
			action := newBenchAction(tt.depth)
			ctx := context.Background()

			b.ReportAllocs()
			b.ResetTimer()

			for b.Loop() {
				_, err := action.Run(ctx, nil, nil, body)
				if err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

// BenchmarkBagLookup measures attribute access at growing bag sizes.
func BenchmarkBagLookup(b *testing.B) {
	key := stack.NewKey[int]("bench.target")

	c := stack.NewContext(context.Background(), nil)
	c = stack.With(c, key, 42)

	for i := range 16 {
		c = stack.With(c, stack.NewKey[int]("bench.noise"), i)
	}

	b.ReportAllocs()

	for b.Loop() {
		if _, ok := stack.Lookup(c, key); !ok {
			b.Fatal("missing attribute")
		}
	}
}
