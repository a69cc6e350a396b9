package rate

import (
	"testing"

	"github.com/noah-isme/shipquote/internal/pack"
	"github.com/noah-isme/shipquote/internal/rule"
)

func TestCostFormula(t *testing.T) {
	t.Parallel()

	c := Calculator{}
	r := rule.Rule{BaseRate: 500, PerKmRate: 30}
	if got := c.Cost(r, 10, pack.Facts{}); got != 800 {
		t.Fatalf("expected 500 + 10*30 = 800, got %d", got)
	}
	if got := c.Cost(r, 0, pack.Facts{}); got != 500 {
		t.Fatalf("expected base rate at zero distance, got %d", got)
	}
	// Fractional distances round to the nearest minor unit.
	if got := c.Cost(r, 2.5, pack.Facts{}); got != 575 {
		t.Fatalf("expected 575, got %d", got)
	}
}

func TestCostMonotonicInDistance(t *testing.T) {
	t.Parallel()

	c := Calculator{}
	r := rule.Rule{BaseRate: 100, PerKmRate: 7}
	prev := pack.Money(-1)
	for d := 0.0; d <= 200; d += 0.5 {
		cost := c.Cost(r, d, pack.Facts{})
		if cost < prev {
			t.Fatalf("cost decreased at distance %v: %d < %d", d, cost, prev)
		}
		prev = cost
	}
}

func TestCostClampsNegative(t *testing.T) {
	t.Parallel()

	c := Calculator{Hook: func(cost pack.Money, _ rule.Rule, _ float64, _ pack.Facts) pack.Money {
		return cost - 10_000
	}}
	if got := c.Cost(rule.Rule{BaseRate: 100}, 0, pack.Facts{}); got != 0 {
		t.Fatalf("expected clamp to zero, got %d", got)
	}
}

func TestCostHookReceivesContext(t *testing.T) {
	t.Parallel()

	var seen rule.Rule
	c := Calculator{Hook: func(cost pack.Money, r rule.Rule, distanceKm float64, _ pack.Facts) pack.Money {
		seen = r
		return cost * 2
	}}
	r := rule.Rule{ID: 42, BaseRate: 300}
	if got := c.Cost(r, 1, pack.Facts{}); got != 600 {
		t.Fatalf("expected doubled cost 600, got %d", got)
	}
	if seen.ID != 42 {
		t.Fatalf("hook did not receive the rule, got id %d", seen.ID)
	}
}
