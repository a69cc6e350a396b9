package quotecache

import (
	"fmt"
	"strings"

	"github.com/noah-isme/shipquote/internal/common"
	"github.com/noah-isme/shipquote/internal/pack"
)

// Fingerprint summarises the cart contents a quote depends on: total,
// aggregate weight, item count and the per-line (product, quantity,
// variation) triples in cart order. Any quantity change therefore produces
// a different fingerprint and forces recomputation.
func Fingerprint(p pack.Package) string {
	facts := pack.Inspect(p)
	var b strings.Builder
	fmt.Fprintf(&b, "%d|%d|%d", p.Total, facts.WeightGram, len(p.Items))
	for _, it := range p.Items {
		fmt.Fprintf(&b, "|%d:%d:%d", it.ProductID, it.Qty, it.VariationID)
	}
	return common.Sha256Hex(b.String())
}

// Key derives the cache key for a destination and cart fingerprint.
// Destination whitespace is normalised so enqueue-time and quote-time keys
// agree.
func Key(destination, fingerprint string) string {
	return "quote:" + common.Sha256Hex(strings.TrimSpace(destination)+"|"+fingerprint)
}
