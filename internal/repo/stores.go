package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/shipquote/internal/distance"
)

// Queries provides read-only access to the rule and store tables. Rules and
// stores are created and edited by the administrative application; this
// service only lists the active rows per quote request.
type Queries struct {
	Pool *pgxpool.Pool
}

const listActiveStoresSQL = `
SELECT id, name, address, active
FROM stores
WHERE active
ORDER BY id`

// ListActiveStores returns every active store in stable id order.
func (q *Queries) ListActiveStores(ctx context.Context) ([]distance.Store, error) {
	rows, err := q.Pool.Query(ctx, listActiveStoresSQL)
	if err != nil {
		return nil, fmt.Errorf("list active stores: %w", err)
	}
	defer rows.Close()

	var stores []distance.Store
	for rows.Next() {
		var s distance.Store
		if err := rows.Scan(&s.ID, &s.Name, &s.Address, &s.Active); err != nil {
			return nil, fmt.Errorf("scan store: %w", err)
		}
		stores = append(stores, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stores: %w", err)
	}
	return stores, nil
}
