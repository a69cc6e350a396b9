package rule

import (
	"github.com/noah-isme/shipquote/internal/pack"
)

// Combinator selects how a group of boolean conditions is folded.
type Combinator string

const (
	// CombinatorAND requires every condition in the group to hold.
	CombinatorAND Combinator = "AND"
	// CombinatorOR requires at least one condition in the group to hold.
	CombinatorOR Combinator = "OR"
)

// ParseCombinator maps stored text onto a Combinator, defaulting to AND.
func ParseCombinator(value string) Combinator {
	if Combinator(value) == CombinatorOR {
		return CombinatorOR
	}
	return CombinatorAND
}

// Rule is a priced, conditionally applicable shipping policy. Zero-valued
// bounds and empty id sets mean unconstrained. DistanceToKm of 0 means the
// rule has no upper distance bound.
type Rule struct {
	ID   int64
	Name string

	DistanceFromKm float64
	DistanceToKm   float64

	BaseRate  pack.Money
	PerKmRate pack.Money

	MinOrderTotal pack.Money
	MaxOrderTotal pack.Money

	CategoryIDs      []int64
	ShippingClassIDs []int64

	WeightMinGram int
	WeightMaxGram int
	WeightOp      Combinator

	LengthMinMm  int
	LengthMaxMm  int
	WidthMinMm   int
	WidthMaxMm   int
	HeightMinMm  int
	HeightMaxMm  int
	DimensionsOp Combinator

	Priority int
	Active   bool
}

// Combine folds a list of boolean conditions with the given combinator.
// An empty list is vacuously true for both operators.
func Combine(op Combinator, conds []bool) bool {
	if len(conds) == 0 {
		return true
	}
	if op == CombinatorOR {
		for _, c := range conds {
			if c {
				return true
			}
		}
		return false
	}
	for _, c := range conds {
		if !c {
			return false
		}
	}
	return true
}
