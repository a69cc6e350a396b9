package distance

import (
	"context"
	"errors"
	"testing"
)

func TestNearestNoStores(t *testing.T) {
	t.Parallel()

	_, _, ok := Nearest(context.Background(), nil, "somewhere", nil)
	if ok {
		t.Fatal("expected no resolution without stores")
	}
}

func TestNearestSingleStoreSkipsMeasurement(t *testing.T) {
	t.Parallel()

	calls := 0
	m := MeasurerFunc(func(context.Context, string, string) (Measurement, error) {
		calls++
		return Measurement{}, nil
	})
	stores := []Store{
		{ID: 1, Address: "Main St 1", Active: true},
		{ID: 2, Address: "Closed Rd 9", Active: false},
	}
	s, meas, ok := Nearest(context.Background(), stores, "somewhere", m)
	if !ok || s.ID != 1 {
		t.Fatalf("expected the single active store, got %+v ok=%v", s, ok)
	}
	if meas != nil {
		t.Fatal("single-store resolution must not carry a measurement")
	}
	if calls != 0 {
		t.Fatalf("single-store resolution must not measure, got %d calls", calls)
	}
}

func TestNearestPicksMinimumOnce(t *testing.T) {
	t.Parallel()

	distances := map[string]float64{"A": 12, "B": 4, "C": 30}
	calls := map[string]int{}
	m := MeasurerFunc(func(_ context.Context, origin, _ string) (Measurement, error) {
		calls[origin]++
		return Measurement{Km: distances[origin]}, nil
	})
	stores := []Store{
		{ID: 1, Address: "A", Active: true},
		{ID: 2, Address: "B", Active: true},
		{ID: 3, Address: "C", Active: true},
	}
	s, meas, ok := Nearest(context.Background(), stores, "dest", m)
	if !ok || s.ID != 2 {
		t.Fatalf("expected store 2, got %+v", s)
	}
	if meas == nil || meas.Km != 4 {
		t.Fatalf("expected measurement 4km, got %+v", meas)
	}
	for origin, n := range calls {
		if n != 1 {
			t.Fatalf("store %s measured %d times", origin, n)
		}
	}
}

func TestNearestFirstMinimumWinsOnTie(t *testing.T) {
	t.Parallel()

	m := MeasurerFunc(func(context.Context, string, string) (Measurement, error) {
		return Measurement{Km: 10}, nil
	})
	stores := []Store{
		{ID: 5, Address: "X", Active: true},
		{ID: 6, Address: "Y", Active: true},
	}
	s, _, ok := Nearest(context.Background(), stores, "dest", m)
	if !ok || s.ID != 5 {
		t.Fatalf("expected first store on tie, got %+v", s)
	}
}

func TestNearestFailureExcludesStoreOnly(t *testing.T) {
	t.Parallel()

	m := MeasurerFunc(func(_ context.Context, origin, _ string) (Measurement, error) {
		if origin == "A" {
			return Measurement{}, errors.New("lookup failed")
		}
		return Measurement{Km: 20}, nil
	})
	stores := []Store{
		{ID: 1, Address: "A", Active: true},
		{ID: 2, Address: "B", Active: true},
	}
	s, _, ok := Nearest(context.Background(), stores, "dest", m)
	if !ok || s.ID != 2 {
		t.Fatalf("expected surviving store 2, got %+v ok=%v", s, ok)
	}

	allFail := MeasurerFunc(func(context.Context, string, string) (Measurement, error) {
		return Measurement{}, errors.New("lookup failed")
	})
	if _, _, ok := Nearest(context.Background(), stores, "dest", allFail); ok {
		t.Fatal("expected no resolution when every lookup fails")
	}
}
