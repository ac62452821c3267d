package engine

import (
	"github.com/shopspring/decimal"

	"vdicost/internal/pricing"
)

const (
	// multiSessionFactor is the discount multiplier applied when multiple
	// end users share one instance concurrently.
	multiSessionFactor = 0.80

	// Reserved-commitment projections are illustrative ratios of the
	// on-demand annual estimate, not independently resolved prices.
	reserved1YearRatio = 0.75
	reserved3YearRatio = 0.60
)

// Aggregator combines a unit price, instance-hours and configuration
// multipliers into the final cost breakdown.
type Aggregator struct {
	rates *pricing.Table
}

// NewAggregator builds an Aggregator over the rate table that supplies OS
// additions, multipliers, license fees and the stopped-instance rate.
func NewAggregator(rates *pricing.Table) *Aggregator {
	return &Aggregator{rates: rates}
}

// Aggregate produces the PricingEstimate for a resolved quote. Internal
// math stays in full float precision; currency values are rounded to two
// decimals only here, at the output boundary, to avoid compounding error
// across the multiplier chain.
func (a *Aggregator) Aggregate(quote PriceQuote, hours InstanceHours, cfg Configuration, totalUsers int) *PricingEstimate {
	var monthly float64
	var breakdown Breakdown

	if cfg.RunningMode == RunningPool {
		monthly, breakdown = a.pooledCost(quote, hours, cfg, totalUsers)
	} else {
		monthly, breakdown = a.dedicatedCost(quote, hours, cfg, totalUsers)
	}

	annual := monthly * 12

	return &PricingEstimate{
		CostPerUnit:           round4(quote.UnitPrice),
		Unit:                  quote.Unit,
		Currency:              a.rates.Currency(),
		TotalMonthlyCost:      round2(monthly),
		AnnualEstimate:        round2(annual),
		Reserved1YearEstimate: round2(annual * reserved1YearRatio),
		Reserved3YearEstimate: round2(annual * reserved3YearRatio),
		InstanceHours: InstanceHours{
			Utilized: round2(hours.Utilized),
			Buffer:   round2(hours.Buffer),
			Total:    round2(hours.Total),
		},
		Breakdown:     breakdown,
		PricingSource: quote.Source,
	}
}

// dedicatedCost prices always-on, auto-stop and custom configurations.
// Multipliers apply sequentially to the already-adjusted price; the order
// matches the upstream provider's own calculator semantics.
func (a *Aggregator) dedicatedCost(quote PriceQuote, hours InstanceHours, cfg Configuration, totalUsers int) (float64, Breakdown) {
	units := totalUsers
	if units < 1 {
		units = 1
	}

	var base float64
	if quote.Unit == UnitMonth {
		base = quote.UnitPrice * float64(units)
	} else {
		base = quote.UnitPrice * hours.Total
	}

	osAddition := a.rates.OSMonthlyAddition(cfg.OperatingSystem) * float64(units)
	fnMult := a.rates.FunctionMultiplier(string(cfg.InstanceFunction))
	regionMult := a.rates.RegionMultiplier(cfg.Region)
	sessionMult := 1.0
	if cfg.MultiSession {
		sessionMult = multiSessionFactor
	}

	price := base + osAddition
	price *= fnMult
	price *= regionMult
	price *= sessionMult

	return price, Breakdown{
		BasePrice:          round2(base),
		OSAddition:         round2(osAddition),
		FunctionMultiplier: fnMult,
		RegionMultiplier:   regionMult,
		MultiSessionFactor: sessionMult,
	}
}

// pooledCost prices shared-fleet configurations: per-user license fees plus
// active streaming hours at the resolved rate plus buffered capacity at the
// flat stopped-instance rate.
func (a *Aggregator) pooledCost(quote PriceQuote, hours InstanceHours, cfg Configuration, totalUsers int) (float64, Breakdown) {
	hourlyRate := quote.UnitPrice
	if quote.Unit == UnitMonth {
		hourlyRate = quote.UnitPrice / hoursPerMonth
	}

	licenseFee := a.rates.UserLicenseMonthly()
	if cfg.License == LicenseBYOL {
		licenseFee = 0
	}
	userLicense := licenseFee * float64(totalUsers)

	stoppedRate := a.rates.StoppedHourlyRate()
	active := hours.Utilized * hourlyRate
	stopped := hours.Buffer * stoppedRate

	total := userLicense + active + stopped

	return total, Breakdown{
		BasePrice:           round2(active),
		UserLicenseCost:     round2(userLicense),
		ActiveStreamingCost: round2(active),
		StoppedInstanceCost: round2(stopped),
		StoppedInstanceRate: stoppedRate,
		PerUserLicenseFee:   licenseFee,
		FunctionMultiplier:  1,
		RegionMultiplier:    1,
		MultiSessionFactor:  1,
	}
}

func round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}

func round4(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(4).Float64()
	return f
}
