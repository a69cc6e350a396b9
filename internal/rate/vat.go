package rate

import (
	"github.com/rs/zerolog"

	"github.com/noah-isme/shipquote/internal/pack"
)

// The host platform applies a fixed 21% VAT when presenting prices. The
// adjuster works in integer minor units: multiplying by 121/100 is the
// gross-up, dividing is the net-down.
const vatNumerator = 121

// Adjusted carries both the amount the engine returns and the amount a
// human sees. Net is what goes on the quote: the host platform multiplies
// it by 1.21 again before display. Displayed is the tax-inclusive price
// rounded to whole currency units, used only for labels.
type Adjusted struct {
	Net        pack.Money
	Displayed  pack.Money
	VATApplied bool
}

// Adjuster converts a tax-inclusive target price into the net amount that
// round-trips through the downstream tax engine back to the target.
type Adjuster struct {
	Enabled bool
	Logger  zerolog.Logger
}

// Adjust transforms a computed cost. With VAT adjustment off the cost passes
// through untouched and only the displayed price is unit-rounded. With it on,
// the cost is treated as the desired tax-inclusive price: the primary net is
// ceil(gross/1.21) at cent precision; if that does not round-trip, a
// subtraction-based fallback is tried; a persistent mismatch is logged as a
// warning and the best-effort net is still returned. A one-cent drift is a
// known limitation, never an error.
func (a Adjuster) Adjust(cost pack.Money) Adjusted {
	if !a.Enabled {
		return Adjusted{Net: cost, Displayed: roundToUnit(cost)}
	}

	net := ceilDiv(cost*100, vatNumerator)
	if roundToUnit(roundDiv(net*vatNumerator, 100)) != roundToUnit(cost) {
		// Higher-precision fallback, verified at cent level.
		fallback := cost - roundDiv(cost*(vatNumerator-100), vatNumerator)
		if roundDiv(fallback*vatNumerator, 100) != cost {
			a.Logger.Warn().
				Int64("gross", cost).
				Int64("net", fallback).
				Msg("vat adjustment does not round-trip")
		}
		net = fallback
	}
	return Adjusted{
		Net:        net,
		Displayed:  roundToUnit(roundDiv(net*vatNumerator, 100)),
		VATApplied: true,
	}
}

// roundToUnit rounds minor units to the nearest whole currency unit.
func roundToUnit(m pack.Money) pack.Money {
	return roundDiv(m, 100) * 100
}

func ceilDiv(a, b pack.Money) pack.Money {
	return (a + b - 1) / b
}

func roundDiv(a, b pack.Money) pack.Money {
	return (a + b/2) / b
}
