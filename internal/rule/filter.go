package rule

import (
	"github.com/noah-isme/shipquote/internal/pack"
)

// Matches reports whether the rule applies to the measured distance and the
// inspected package. Checks run in a fixed order and short-circuit on the
// first failure: distance window, order amount bounds, category membership,
// shipping class membership, then the weight/dimension condition groups.
// Every unconstrained check passes.
func Matches(r Rule, distanceKm float64, facts pack.Facts, orderTotal pack.Money) bool {
	if distanceKm < r.DistanceFromKm {
		return false
	}
	if r.DistanceToKm > 0 && distanceKm > r.DistanceToKm {
		return false
	}
	if r.MinOrderTotal > 0 && orderTotal < r.MinOrderTotal {
		return false
	}
	if r.MaxOrderTotal > 0 && orderTotal > r.MaxOrderTotal {
		return false
	}
	if len(r.CategoryIDs) > 0 && !facts.HasAnyCategory(r.CategoryIDs) {
		return false
	}
	if len(r.ShippingClassIDs) > 0 && !facts.HasAnyClass(r.ShippingClassIDs) {
		return false
	}
	return matchesMeasurements(r, facts)
}

// matchesMeasurements evaluates the weight and dimension condition groups.
// The three axis conditions fold with DimensionsOp, the weight bounds fold
// with AND, and the two group results fold with WeightOp. A group without
// any constrained bound is skipped entirely rather than treated as a vacuous
// operand, so an OR cannot be satisfied by the mere absence of constraints.
func matchesMeasurements(r Rule, facts pack.Facts) bool {
	dims := facts.Dimensions
	var dimConds []bool
	if r.LengthMinMm > 0 || r.LengthMaxMm > 0 {
		dimConds = append(dimConds, withinBounds(dims.LengthMm, r.LengthMinMm, r.LengthMaxMm))
	}
	if r.WidthMinMm > 0 || r.WidthMaxMm > 0 {
		dimConds = append(dimConds, withinBounds(dims.WidthMm, r.WidthMinMm, r.WidthMaxMm))
	}
	if r.HeightMinMm > 0 || r.HeightMaxMm > 0 {
		dimConds = append(dimConds, withinBounds(dims.HeightMm, r.HeightMinMm, r.HeightMaxMm))
	}

	var weightConds []bool
	if r.WeightMinGram > 0 || r.WeightMaxGram > 0 {
		weightConds = append(weightConds, withinBounds(facts.WeightGram, r.WeightMinGram, r.WeightMaxGram))
	}

	switch {
	case len(dimConds) == 0 && len(weightConds) == 0:
		return true
	case len(dimConds) == 0:
		return Combine(CombinatorAND, weightConds)
	case len(weightConds) == 0:
		return Combine(r.DimensionsOp, dimConds)
	}
	dimOK := Combine(r.DimensionsOp, dimConds)
	weightOK := Combine(CombinatorAND, weightConds)
	return Combine(r.WeightOp, []bool{dimOK, weightOK})
}

func withinBounds(value, min, max int) bool {
	if min > 0 && value < min {
		return false
	}
	if max > 0 && value > max {
		return false
	}
	return true
}
