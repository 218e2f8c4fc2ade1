package stack

// Outcome is the successful result of running a chain. Failures travel as
// ordinary errors alongside it; exactly one of the two reaches the caller
// of Action.Run.
type Outcome struct {
	// Value is the result produced by the body, or by whichever element
	// short-circuited the chain.
	Value any

	// ShortCircuited reports that an element produced this outcome without
	// delegating inward, so the body never ran. This is valid control flow,
	// not an error: a cache hit or a maintenance-mode notice are typical
	// producers.
	ShortCircuited bool
}

// OK wraps a body result in an Outcome.
func OK(value any) Outcome {
	return Outcome{Value: value}
}

// ShortCircuit wraps a value produced without reaching the body.
func ShortCircuit(value any) Outcome {
	return Outcome{Value: value, ShortCircuited: true}
}
