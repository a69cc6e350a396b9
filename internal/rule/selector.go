package rule

import (
	"sort"

	"github.com/noah-isme/shipquote/internal/pack"
)

// Select filters the rules through Matches, orders survivors by priority
// descending and returns the winner. The sort is stable: among equal
// priorities the rule listed first in the repository wins. Inactive rules
// never match. Exactly one rule applies per quote; costs are never stacked.
func Select(rules []Rule, distanceKm float64, facts pack.Facts, orderTotal pack.Money) (Rule, bool) {
	applicable := make([]Rule, 0, len(rules))
	for _, r := range rules {
		if !r.Active {
			continue
		}
		if Matches(r, distanceKm, facts, orderTotal) {
			applicable = append(applicable, r)
		}
	}
	if len(applicable) == 0 {
		return Rule{}, false
	}
	sort.SliceStable(applicable, func(i, j int) bool {
		return applicable[i].Priority > applicable[j].Priority
	})
	return applicable[0], true
}
