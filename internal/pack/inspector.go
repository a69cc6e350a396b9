package pack

// Money represents a monetary value stored in minor units.
type Money = int64

// Dimensions describes a bounding box in millimetres.
type Dimensions struct {
	LengthMm int
	WidthMm  int
	HeightMm int
}

// Item is a single cart line feeding a quote request. Weights are grams,
// dimensions millimetres. Missing attributes stay zero.
type Item struct {
	ProductID       int64
	VariationID     int64
	Qty             int
	UnitWeightGram  int
	LengthMm        int
	WidthMm         int
	HeightMm        int
	CategoryIDs     []int64
	ShippingClassID int64
}

// Package describes the cart contents and destination for one quote request.
// It is produced fresh per request and never mutated by the engine.
type Package struct {
	Items       []Item
	Total       Money
	Destination string
}

// Facts aggregates the package attributes shipping rules match against.
type Facts struct {
	WeightGram int
	Dimensions Dimensions
	Categories map[int64]struct{}
	Classes    map[int64]struct{}
}

// Inspect derives the aggregate facts for a package. Weight is the quantity
// weighted sum; dimensions are the per-axis maximum across items, not a
// cumulative sum. Inspect never fails: absent data contributes zero.
func Inspect(p Package) Facts {
	f := Facts{
		Categories: make(map[int64]struct{}),
		Classes:    make(map[int64]struct{}),
	}
	for _, it := range p.Items {
		if it.Qty <= 0 {
			continue
		}
		f.WeightGram += it.UnitWeightGram * it.Qty
		if it.LengthMm > f.Dimensions.LengthMm {
			f.Dimensions.LengthMm = it.LengthMm
		}
		if it.WidthMm > f.Dimensions.WidthMm {
			f.Dimensions.WidthMm = it.WidthMm
		}
		if it.HeightMm > f.Dimensions.HeightMm {
			f.Dimensions.HeightMm = it.HeightMm
		}
		for _, id := range it.CategoryIDs {
			f.Categories[id] = struct{}{}
		}
		if it.ShippingClassID != 0 {
			f.Classes[it.ShippingClassID] = struct{}{}
		}
	}
	return f
}

// HasAnyCategory reports whether the package contains at least one of the ids.
func (f Facts) HasAnyCategory(ids []int64) bool {
	for _, id := range ids {
		if _, ok := f.Categories[id]; ok {
			return true
		}
	}
	return false
}

// HasAnyClass reports whether the package contains at least one of the
// shipping class ids.
func (f Facts) HasAnyClass(ids []int64) bool {
	for _, id := range ids {
		if _, ok := f.Classes[id]; ok {
			return true
		}
	}
	return false
}
