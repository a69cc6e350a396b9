package rate

import (
	"math"

	"github.com/noah-isme/shipquote/internal/pack"
	"github.com/noah-isme/shipquote/internal/rule"
)

// Hook post-processes a computed cost. The rule, measured distance and the
// inspected package facts are provided so extensions can surcharge or
// discount without reimplementing the base formula.
type Hook func(cost pack.Money, r rule.Rule, distanceKm float64, facts pack.Facts) pack.Money

// Calculator turns a selected rule and a measured distance into a raw cost.
type Calculator struct {
	// Hook is optional; the identity transform applies when nil.
	Hook Hook
}

// Cost computes base rate plus distance times the per-kilometre rate, runs
// the hook and clamps negative results to zero.
func (c Calculator) Cost(r rule.Rule, distanceKm float64, facts pack.Facts) pack.Money {
	cost := r.BaseRate + pack.Money(math.Round(distanceKm*float64(r.PerKmRate)))
	if c.Hook != nil {
		cost = c.Hook(cost, r, distanceKm, facts)
	}
	if cost < 0 {
		cost = 0
	}
	return cost
}
