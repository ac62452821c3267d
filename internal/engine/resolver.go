package engine

import (
	"context"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"vdicost/internal/catalog"
	"vdicost/internal/pricing"
)

// Resolver obtains a unit price for a resolved catalog entry through a
// tiered strategy: live catalog lookup first, static fallback table second.
// Resolve never fails; a degraded price is tagged SourceFallback so callers
// can tell authoritative pricing from best-effort pricing.
type Resolver struct {
	catalog  catalog.Client
	fallback *pricing.Table
	logger   zerolog.Logger
}

// NewResolver builds a Resolver over the given catalog client and fallback
// table.
func NewResolver(catalogClient catalog.Client, fallback *pricing.Table, logger zerolog.Logger) *Resolver {
	return &Resolver{catalog: catalogClient, fallback: fallback, logger: logger}
}

// Resolve returns a usable PriceQuote for the entry. The zero Entry skips
// the live tier entirely (no catalog entry was matched).
func (r *Resolver) Resolve(ctx context.Context, region string, entry catalog.Entry, class catalog.Class, cfg Configuration) PriceQuote {
	if entry.BundleDescription != "" && r.catalog != nil {
		if quote, ok := r.resolveLive(ctx, region, entry, cfg.RunningMode); ok {
			return quote
		}
	}
	return r.resolveFallback(class, cfg)
}

// resolveLive fetches the detailed price lines for the matched entry. For
// hourly-billed running modes the single hourly line wins; otherwise every
// metered component line contributes to one monthly total.
func (r *Resolver) resolveLive(ctx context.Context, region string, entry catalog.Entry, mode RunningMode) (PriceQuote, bool) {
	lines, err := r.catalog.FetchPrices(ctx, region, entry)
	if err != nil || len(lines) == 0 {
		r.logger.Warn().
			Err(err).
			Str("region", region).
			Str("bundle", entry.BundleDescription).
			Msg("live price lookup failed, using fallback rates")
		return PriceQuote{}, false
	}

	if mode.hourlyBilled() {
		for _, line := range lines {
			if !strings.EqualFold(line.Unit, "hour") && !strings.EqualFold(line.Unit, "hrs") {
				continue
			}
			price, perr := strconv.ParseFloat(line.Price, 64)
			if perr != nil || price <= 0 {
				continue
			}
			return PriceQuote{UnitPrice: price, Unit: UnitHour, Source: SourceCatalog}, true
		}
		r.logger.Warn().
			Str("region", region).
			Str("bundle", entry.BundleDescription).
			Msg("no hourly price line for hourly running mode, using fallback rates")
		return PriceQuote{}, false
	}

	var total float64
	for _, line := range lines {
		price, perr := strconv.ParseFloat(line.Price, 64)
		if perr != nil {
			r.logger.Debug().
				Str("rate_code", line.RateCode).
				Str("price", line.Price).
				Msg("skipping unparseable price line")
			continue
		}
		total += price
	}
	if total <= 0 {
		return PriceQuote{}, false
	}
	return PriceQuote{UnitPrice: total, Unit: UnitMonth, Source: SourceCatalog}, true
}

// resolveFallback prices from the static table keyed by bundle class and
// license. An undefined class falls back to Standard rates so the resolver
// still returns a usable quote.
func (r *Resolver) resolveFallback(class catalog.Class, cfg Configuration) PriceQuote {
	byol := cfg.License == LicenseBYOL

	lookup := r.fallback.MonthlyRate
	unit := UnitMonth
	if cfg.RunningMode.hourlyBilled() {
		lookup = r.fallback.HourlyRate
		unit = UnitHour
	}

	price, ok := lookup(string(class), byol)
	if !ok {
		r.logger.Warn().
			Str("bundle_class", string(class)).
			Msg("bundle class missing from fallback table, using Standard rates")
		price, _ = lookup(string(catalog.ClassStandard), byol)
	}
	return PriceQuote{UnitPrice: price, Unit: unit, Source: SourceFallback}
}
