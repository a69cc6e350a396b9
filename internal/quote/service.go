package quote

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/noah-isme/shipquote/internal/distance"
	"github.com/noah-isme/shipquote/internal/obs"
	"github.com/noah-isme/shipquote/internal/pack"
	"github.com/noah-isme/shipquote/internal/quotecache"
	"github.com/noah-isme/shipquote/internal/rate"
	"github.com/noah-isme/shipquote/internal/rule"
)

// MethodID identifies this shipping method towards the host platform.
const MethodID = "distance_rate"

// Quote is the computed shipping option returned for one request. Cost is
// the net amount in minor units: when VAT adjustment is on the host platform
// re-applies the 21% before presenting it, which reproduces the rule's
// configured tax-inclusive price.
type Quote struct {
	ID    string     `json:"id"`
	Label string     `json:"label"`
	Cost  pack.Money `json:"cost"`
	Meta  Meta       `json:"meta"`
}

// Meta carries the diagnostic and presentation data the host checkout needs.
// The provider's standardised destination travels here as a return value
// instead of being written to ambient session state.
type Meta struct {
	DistanceKm        float64 `json:"distanceKm,omitempty"`
	FormattedDistance string  `json:"formattedDistance,omitempty"`
	RuleID            int64   `json:"ruleId,omitempty"`
	Fallback          bool    `json:"fallback,omitempty"`
	PriceIncludesTax  bool    `json:"priceIncludesTax"`
	VATAdjusted       bool    `json:"vatAdjusted,omitempty"`
	AddressUsed       string  `json:"addressUsed,omitempty"`
	AddressOriginal   string  `json:"addressOriginal,omitempty"`
}

// Repository lists the active rules and stores maintained by the
// administrative application.
type Repository interface {
	ListActiveStores(ctx context.Context) ([]distance.Store, error)
	ListActiveRules(ctx context.Context) ([]rule.Rule, error)
}

// Service computes shipping quotes. Every failure along the way (missing
// destination, no store, distance lookup error, no applicable rule) degrades
// to the flat fallback rate; a fallback rate of zero yields no quote at all.
// Neither case is an error towards the caller.
type Service struct {
	Repo         Repository
	Measurer     distance.Measurer
	Cache        *quotecache.Cache
	Calc         rate.Calculator
	VAT          rate.Adjuster
	FallbackRate pack.Money
	Logger       zerolog.Logger
}

// Quote computes (or recalls) the shipping quote for a package. The second
// return value reports whether a quote is available.
func (s *Service) Quote(ctx context.Context, p pack.Package) (Quote, bool) {
	facts := pack.Inspect(p)

	destination := strings.TrimSpace(p.Destination)
	if destination == "" {
		s.Logger.Debug().Msg("quote: destination missing")
		return s.fallback(Meta{})
	}

	key := quotecache.Key(destination, quotecache.Fingerprint(p))
	if s.Cache != nil {
		var cached Quote
		hit, err := s.Cache.Get(ctx, key, &cached)
		if err != nil {
			s.Logger.Error().Err(err).Msg("quote cache read failed")
		}
		if hit {
			countCache("hit")
			countQuote("cached")
			return cached, true
		}
		countCache("miss")
	}

	q, ok, categories := s.compute(ctx, destination, p, facts)
	if ok && s.Cache != nil {
		if err := s.Cache.Set(ctx, key, q, categories); err != nil {
			s.Logger.Error().Err(err).Msg("quote cache write failed")
		}
	}
	return q, ok
}

func (s *Service) compute(ctx context.Context, destination string, p pack.Package, facts pack.Facts) (Quote, bool, []int64) {
	stores, err := s.Repo.ListActiveStores(ctx)
	if err != nil {
		s.Logger.Error().Err(err).Msg("list active stores failed")
		q, ok := s.fallback(Meta{AddressOriginal: destination})
		return q, ok, nil
	}

	measurer := s.instrumented()
	store, meas, ok := distance.Nearest(ctx, stores, destination, measurer)
	if !ok {
		s.Logger.Debug().Int("stores", len(stores)).Msg("quote: no resolvable store")
		q, ok := s.fallback(Meta{AddressOriginal: destination})
		return q, ok, nil
	}
	if meas == nil {
		m, err := measurer.Measure(ctx, store.Address, destination)
		if err != nil {
			s.Logger.Debug().Err(err).Int64("store_id", store.ID).Msg("quote: distance lookup failed")
			q, ok := s.fallback(Meta{AddressOriginal: destination})
			return q, ok, nil
		}
		meas = &m
	}

	rules, err := s.Repo.ListActiveRules(ctx)
	if err != nil {
		s.Logger.Error().Err(err).Msg("list active rules failed")
		q, ok := s.fallback(s.distanceMeta(destination, *meas))
		return q, ok, nil
	}
	selected, ok := rule.Select(rules, meas.Km, facts, p.Total)
	if !ok {
		s.Logger.Debug().
			Float64("distance_km", meas.Km).
			Int("rules", len(rules)).
			Msg("quote: no applicable rule")
		q, ok := s.fallback(s.distanceMeta(destination, *meas))
		return q, ok, nil
	}

	cost := s.Calc.Cost(selected, meas.Km, facts)
	adj := s.VAT.Adjust(cost)

	meta := s.distanceMeta(destination, *meas)
	meta.RuleID = selected.ID
	meta.PriceIncludesTax = true
	meta.VATAdjusted = adj.VATApplied

	s.Logger.Debug().
		Int64("rule_id", selected.ID).
		Float64("distance_km", meas.Km).
		Int64("cost", adj.Net).
		Msg("quote: rule selected")
	countQuote("rule")

	q := Quote{
		ID:    fmt.Sprintf("%s:%d", MethodID, selected.ID),
		Label: label(selected.Name, adj.Displayed),
		Cost:  adj.Net,
		Meta:  meta,
	}
	return q, true, selected.CategoryIDs
}

// fallback produces the flat default quote, or no quote when the fallback
// rate is configured to zero. Ending up with zero shipping options is an
// accepted terminal state, not an error.
func (s *Service) fallback(meta Meta) (Quote, bool) {
	if s.FallbackRate <= 0 {
		countQuote("none")
		return Quote{}, false
	}
	adj := s.VAT.Adjust(s.FallbackRate)
	meta.Fallback = true
	meta.PriceIncludesTax = true
	meta.VATAdjusted = adj.VATApplied
	countQuote("fallback")
	return Quote{
		ID:    MethodID + ":fallback",
		Label: label("Shipping", adj.Displayed),
		Cost:  adj.Net,
		Meta:  meta,
	}, true
}

func (s *Service) distanceMeta(destination string, meas distance.Measurement) Meta {
	meta := Meta{
		DistanceKm:        meas.Km,
		FormattedDistance: fmt.Sprintf("%.1f km", meas.Km),
		AddressOriginal:   destination,
	}
	if meas.ResolvedAddress != "" && meas.ResolvedAddress != destination {
		meta.AddressUsed = meas.ResolvedAddress
	}
	return meta
}

// instrumented wraps the measurer with lookup metrics.
func (s *Service) instrumented() distance.Measurer {
	return distance.MeasurerFunc(func(ctx context.Context, origin, destination string) (distance.Measurement, error) {
		start := time.Now()
		meas, err := s.Measurer.Measure(ctx, origin, destination)
		if obs.DistanceLookupDuration != nil {
			obs.DistanceLookupDuration.Observe(obs.DurationMillis(time.Since(start)))
		}
		if obs.DistanceLookupTotal != nil {
			result := "ok"
			if err != nil {
				result = "error"
			}
			obs.DistanceLookupTotal.WithLabelValues(result).Inc()
		}
		return meas, err
	})
}

// label renders the display string for a quote: the rule name plus the
// human-facing tax-inclusive price in whole currency units.
func label(name string, displayed pack.Money) string {
	return name + " (" + strconv.FormatInt(displayed/100, 10) + ")"
}

func countQuote(outcome string) {
	if obs.QuoteTotal != nil {
		obs.QuoteTotal.WithLabelValues(outcome).Inc()
	}
}

func countCache(result string) {
	if obs.QuoteCacheTotal != nil {
		obs.QuoteCacheTotal.WithLabelValues(result).Inc()
	}
}
