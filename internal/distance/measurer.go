package distance

import "context"

// Measurement is the outcome of a single distance lookup. ResolvedAddress is
// the provider's standardised form of the requested destination when one is
// returned; callers surface it on the quote metadata instead of stashing it
// in ambient state.
type Measurement struct {
	Km              float64
	ResolvedAddress string
}

// Measurer models the external travel-distance provider. Lookups may be slow,
// paid and rate limited; callers must invoke Measure at most once per store
// per quote and degrade to a fallback rate on error.
type Measurer interface {
	Measure(ctx context.Context, origin, destination string) (Measurement, error)
}

// MeasurerFunc adapts a function to the Measurer interface.
type MeasurerFunc func(ctx context.Context, origin, destination string) (Measurement, error)

// Measure implements Measurer.
func (f MeasurerFunc) Measure(ctx context.Context, origin, destination string) (Measurement, error) {
	return f(ctx, origin, destination)
}
