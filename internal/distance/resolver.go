package distance

import "context"

// Store is a shipping origin. Coordinates are resolved by the provider from
// the address; the engine only needs the address text and the active flag.
type Store struct {
	ID      int64
	Name    string
	Address string
	Active  bool
}

// Nearest picks the active store closest to the destination. With a single
// candidate no measurement is performed, since lookups cost money; the
// returned Measurement is nil in that case and the caller measures the
// winner once when it needs the distance. With multiple candidates every
// store is measured exactly once, lookup failures exclude only the failing
// store, and ties break in favour of the earlier store in the input.
func Nearest(ctx context.Context, stores []Store, destination string, m Measurer) (Store, *Measurement, bool) {
	candidates := stores[:0:0]
	for _, s := range stores {
		if s.Active {
			candidates = append(candidates, s)
		}
	}
	switch len(candidates) {
	case 0:
		return Store{}, nil, false
	case 1:
		return candidates[0], nil, true
	}

	var (
		best     Store
		bestMeas Measurement
		found    bool
	)
	for _, s := range candidates {
		meas, err := m.Measure(ctx, s.Address, destination)
		if err != nil {
			continue
		}
		if !found || meas.Km < bestMeas.Km {
			best = s
			bestMeas = meas
			found = true
		}
	}
	if !found {
		return Store{}, nil, false
	}
	return best, &bestMeas, true
}
