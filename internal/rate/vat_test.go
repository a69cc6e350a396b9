package rate

import (
	"testing"

	"github.com/rs/zerolog"

	"github.com/noah-isme/shipquote/internal/pack"
)

func TestAdjustDisabledPassesThrough(t *testing.T) {
	t.Parallel()

	a := Adjuster{Enabled: false, Logger: zerolog.Nop()}
	got := a.Adjust(12_345) // 123.45
	if got.Net != 12_345 {
		t.Fatalf("disabled adjuster must not touch the cost, got %d", got.Net)
	}
	if got.Displayed != 12_300 { // 123.45 rounds to 123
		t.Fatalf("expected displayed 12300, got %d", got.Displayed)
	}
	if got.VATApplied {
		t.Fatal("VATApplied must be false when disabled")
	}
}

func TestAdjustKnownExample(t *testing.T) {
	t.Parallel()

	// Target 100.00 gross: net must be 82.65 and display back as 100.
	a := Adjuster{Enabled: true, Logger: zerolog.Nop()}
	got := a.Adjust(10_000)
	if got.Net != 8_265 {
		t.Fatalf("expected net 8265 (82.65), got %d", got.Net)
	}
	if got.Displayed != 10_000 {
		t.Fatalf("expected displayed 10000, got %d", got.Displayed)
	}
	if !got.VATApplied {
		t.Fatal("VATApplied must be true")
	}
}

func TestAdjustRoundTripsForIntegerTargets(t *testing.T) {
	t.Parallel()

	a := Adjuster{Enabled: true, Logger: zerolog.Nop()}
	// Representative whole-unit targets across [1, 10000].
	targets := []pack.Money{
		1, 2, 3, 5, 7, 10, 11, 13, 21, 42, 50, 99, 100, 121, 250, 333,
		500, 777, 999, 1000, 1234, 2500, 4999, 5000, 7777, 9999, 10000,
	}
	for _, units := range targets {
		gross := units * 100
		got := a.Adjust(gross)
		if got.Displayed != gross {
			t.Fatalf("target %d: displayed %d does not round-trip", units, got.Displayed)
		}
		if got.Net <= 0 || got.Net >= gross {
			t.Fatalf("target %d: net %d outside (0, gross)", units, got.Net)
		}
	}
}

func TestAdjustNetIsCeiledToCent(t *testing.T) {
	t.Parallel()

	a := Adjuster{Enabled: true, Logger: zerolog.Nop()}
	// 50.00 / 1.21 = 41.3223... -> ceil to 41.33
	got := a.Adjust(5_000)
	if got.Net != 4_133 {
		t.Fatalf("expected net 4133, got %d", got.Net)
	}
}
