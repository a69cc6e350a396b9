package repo

import (
	"context"
	"fmt"

	"github.com/noah-isme/shipquote/internal/rule"
)

const listActiveRulesSQL = `
SELECT id, name,
       distance_from_km, distance_to_km,
       base_rate, per_km_rate,
       min_order_total, max_order_total,
       category_ids, shipping_class_ids,
       weight_min_gram, weight_max_gram, weight_operator,
       length_min_mm, length_max_mm,
       width_min_mm, width_max_mm,
       height_min_mm, height_max_mm, dimensions_operator,
       priority, active
FROM shipping_rules
WHERE active
ORDER BY id`

// ListActiveRules returns every active shipping rule in stable id order.
// The selector re-sorts by priority; the stable base order here is what
// makes priority ties deterministic.
func (q *Queries) ListActiveRules(ctx context.Context) ([]rule.Rule, error) {
	rows, err := q.Pool.Query(ctx, listActiveRulesSQL)
	if err != nil {
		return nil, fmt.Errorf("list active rules: %w", err)
	}
	defer rows.Close()

	var rules []rule.Rule
	for rows.Next() {
		var (
			r        rule.Rule
			weightOp string
			dimOp    string
		)
		if err := rows.Scan(
			&r.ID, &r.Name,
			&r.DistanceFromKm, &r.DistanceToKm,
			&r.BaseRate, &r.PerKmRate,
			&r.MinOrderTotal, &r.MaxOrderTotal,
			&r.CategoryIDs, &r.ShippingClassIDs,
			&r.WeightMinGram, &r.WeightMaxGram, &weightOp,
			&r.LengthMinMm, &r.LengthMaxMm,
			&r.WidthMinMm, &r.WidthMaxMm,
			&r.HeightMinMm, &r.HeightMaxMm, &dimOp,
			&r.Priority, &r.Active,
		); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}
		r.WeightOp = rule.ParseCombinator(weightOp)
		r.DimensionsOp = rule.ParseCombinator(dimOp)
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rules: %w", err)
	}
	return rules, nil
}
