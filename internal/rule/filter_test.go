package rule

import (
	"testing"

	"github.com/noah-isme/shipquote/internal/pack"
)

func TestMatchesDistanceWindow(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		from, to float64
		distance float64
		want     bool
	}{
		{"inside window", 5, 20, 12, true},
		{"below lower bound", 5, 20, 4.9, false},
		{"at lower bound", 5, 20, 5, true},
		{"at upper bound", 5, 20, 20, true},
		{"above upper bound", 5, 20, 20.1, false},
		{"unbounded above matches far", 5, 0, 900, true},
		{"unbounded above still honours lower", 5, 0, 1, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := Rule{DistanceFromKm: tc.from, DistanceToKm: tc.to}
			got := Matches(r, tc.distance, pack.Facts{}, 0)
			if got != tc.want {
				t.Fatalf("Matches(%v) = %v, want %v", tc.distance, got, tc.want)
			}
		})
	}
}

func TestMatchesOrderAmountBoundsInclusive(t *testing.T) {
	t.Parallel()

	r := Rule{MinOrderTotal: 5000, MaxOrderTotal: 20000}
	if !Matches(r, 0, pack.Facts{}, 5000) {
		t.Fatal("order total equal to the minimum must match")
	}
	if !Matches(r, 0, pack.Facts{}, 20000) {
		t.Fatal("order total equal to the maximum must match")
	}
	if Matches(r, 0, pack.Facts{}, 4999) {
		t.Fatal("order total below the minimum must not match")
	}
	if Matches(r, 0, pack.Facts{}, 20001) {
		t.Fatal("order total above the maximum must not match")
	}
	unbounded := Rule{}
	if !Matches(unbounded, 0, pack.Facts{}, 1) {
		t.Fatal("zero bounds are unconstrained")
	}
}

func TestMatchesCategoryAndClassScope(t *testing.T) {
	t.Parallel()

	facts := pack.Inspect(pack.Package{Items: []pack.Item{
		{ProductID: 1, Qty: 1, CategoryIDs: []int64{7}, ShippingClassID: 2},
	}})

	if !Matches(Rule{CategoryIDs: []int64{7, 8}}, 0, facts, 0) {
		t.Fatal("intersecting category set must match")
	}
	if Matches(Rule{CategoryIDs: []int64{9}}, 0, facts, 0) {
		t.Fatal("disjoint category set must not match")
	}
	if !Matches(Rule{ShippingClassIDs: []int64{2}}, 0, facts, 0) {
		t.Fatal("intersecting class set must match")
	}
	if Matches(Rule{ShippingClassIDs: []int64{5}}, 0, facts, 0) {
		t.Fatal("disjoint class set must not match")
	}
	if !Matches(Rule{}, 0, facts, 0) {
		t.Fatal("empty scope sets are unconstrained")
	}
}

func TestMatchesMeasurementGroups(t *testing.T) {
	t.Parallel()

	// 1.2kg package, 400x300x100mm bounding box.
	facts := pack.Inspect(pack.Package{Items: []pack.Item{
		{ProductID: 1, Qty: 2, UnitWeightGram: 600, LengthMm: 400, WidthMm: 300, HeightMm: 100},
	}})

	cases := []struct {
		name string
		rule Rule
		want bool
	}{
		{
			name: "no measurement constraints",
			rule: Rule{},
			want: true,
		},
		{
			name: "weight only, inside bounds",
			rule: Rule{WeightMinGram: 1000, WeightMaxGram: 2000},
			want: true,
		},
		{
			name: "weight only, too heavy",
			rule: Rule{WeightMaxGram: 1000},
			want: false,
		},
		{
			name: "dims AND, all inside",
			rule: Rule{LengthMaxMm: 500, WidthMaxMm: 400, HeightMaxMm: 200, DimensionsOp: CombinatorAND},
			want: true,
		},
		{
			name: "dims AND, one axis fails",
			rule: Rule{LengthMaxMm: 500, WidthMaxMm: 200, HeightMaxMm: 200, DimensionsOp: CombinatorAND},
			want: false,
		},
		{
			name: "dims OR, one axis passes",
			rule: Rule{LengthMaxMm: 100, WidthMaxMm: 200, HeightMaxMm: 200, DimensionsOp: CombinatorOR},
			want: true,
		},
		{
			name: "groups AND, dims pass weight fails",
			rule: Rule{LengthMaxMm: 500, DimensionsOp: CombinatorAND, WeightMaxGram: 1000, WeightOp: CombinatorAND},
			want: false,
		},
		{
			name: "groups OR, dims pass weight fails",
			rule: Rule{LengthMaxMm: 500, DimensionsOp: CombinatorAND, WeightMaxGram: 1000, WeightOp: CombinatorOR},
			want: true,
		},
		{
			name: "groups OR, both fail",
			rule: Rule{LengthMaxMm: 100, DimensionsOp: CombinatorAND, WeightMaxGram: 1000, WeightOp: CombinatorOR},
			want: false,
		},
		{
			name: "weight OR with no dim constraints cannot pass vacuously",
			rule: Rule{WeightMaxGram: 1000, WeightOp: CombinatorOR},
			want: false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Matches(tc.rule, 0, facts, 0)
			if got != tc.want {
				t.Fatalf("Matches = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCombine(t *testing.T) {
	t.Parallel()

	if !Combine(CombinatorAND, nil) || !Combine(CombinatorOR, nil) {
		t.Fatal("empty condition lists are vacuously true")
	}
	if !Combine(CombinatorAND, []bool{true, true}) {
		t.Fatal("AND of trues must hold")
	}
	if Combine(CombinatorAND, []bool{true, false}) {
		t.Fatal("AND with a false must fail")
	}
	if !Combine(CombinatorOR, []bool{false, true}) {
		t.Fatal("OR with a true must hold")
	}
	if Combine(CombinatorOR, []bool{false, false}) {
		t.Fatal("OR of falses must fail")
	}
}

func TestParseCombinator(t *testing.T) {
	t.Parallel()

	if ParseCombinator("OR") != CombinatorOR {
		t.Fatal("OR must parse")
	}
	if ParseCombinator("AND") != CombinatorAND {
		t.Fatal("AND must parse")
	}
	if ParseCombinator("") != CombinatorAND {
		t.Fatal("unknown text defaults to AND")
	}
}
