package engine

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"vdicost/internal/catalog"
	"vdicost/internal/pricing"
)

// Estimator wires the calculation components into the one exposed
// operation: Estimate. It holds no per-request state; every call constructs
// fresh data structures, so a single Estimator is safe for concurrent use.
type Estimator struct {
	catalog  catalog.Client
	rates    *pricing.Table
	resolver *Resolver
	agg      *Aggregator
	logger   zerolog.Logger
}

// NewEstimator builds an Estimator over the catalog collaborator and the
// fallback rate table. catalogClient may be nil, in which case every
// estimate prices from the fallback tier.
func NewEstimator(catalogClient catalog.Client, rates *pricing.Table, logger zerolog.Logger) *Estimator {
	return &Estimator{
		catalog:  catalogClient,
		rates:    rates,
		resolver: NewResolver(catalogClient, rates, logger),
		agg:      NewAggregator(rates),
		logger:   logger,
	}
}

// Estimate computes a complete PricingEstimate for the request. The only
// error it returns is a *ValidationError; catalog failures degrade to
// fallback pricing and are reported through the estimate's PricingSource.
func (e *Estimator) Estimate(ctx context.Context, req Request) (*PricingEstimate, error) {
	start := time.Now()
	traceID := uuid.New().String()

	if err := ValidateRequest(&req); err != nil {
		return nil, err
	}

	cfg := req.Configuration
	_, class, _ := catalog.ResolveBundleID(cfg.BundleID)

	entry, matchTier, entries := e.matchCatalog(ctx, traceID, cfg)

	rootSel, userSel := e.reconcileVolumes(cfg, entries)

	hours := ComputeHours(req.UsagePattern, req.TotalUsers, cfg.RunningMode, cfg.InstanceFunction)
	hours = e.checkHoursInvariant(traceID, hours, req)

	quote := e.resolver.Resolve(ctx, cfg.Region, entry, class, cfg)

	estimate := e.agg.Aggregate(quote, hours, cfg, req.TotalUsers)
	estimate.ResolvedRootVolumeGiB = rootSel.ResolvedGiB
	estimate.ResolvedUserVolumeGiB = userSel.ResolvedGiB
	estimate.VolumeSelectionHonored = rootSel.Honored && userSel.Honored
	estimate.BundleMatch = matchTier
	if entry.BundleDescription != "" {
		spec := catalog.ParseSpec(entry.BundleDescription)
		estimate.BundleSpec = &spec
	}

	e.logger.Info().
		Str("trace_id", traceID).
		Str("operation", "Estimate").
		Str("region", cfg.Region).
		Str("bundle_id", cfg.BundleID).
		Str("running_mode", string(cfg.RunningMode)).
		Str("pricing_source", string(estimate.PricingSource)).
		Bool("volumes_honored", estimate.VolumeSelectionHonored).
		Float64("cost_monthly", estimate.TotalMonthlyCost).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("estimate calculated")

	return estimate, nil
}

// matchCatalog fetches the region's catalog and matches the requested
// bundle. Both the fetch failing and the bundle matching nothing degrade to
// the zero Entry, which routes pricing to the fallback tier.
func (e *Estimator) matchCatalog(ctx context.Context, traceID string, cfg Configuration) (catalog.Entry, string, []catalog.Entry) {
	if e.catalog == nil {
		return catalog.Entry{}, "", nil
	}

	entries, err := e.catalog.FetchEntries(ctx, cfg.Region)
	if err != nil {
		e.logger.Warn().
			Str("trace_id", traceID).
			Str("region", cfg.Region).
			Err(err).
			Msg("pricing catalog unavailable")
		return catalog.Entry{}, "", nil
	}

	entry, tier, err := catalog.Match(cfg.BundleID, entries, catalog.Criteria{
		OperatingSystem: cfg.OperatingSystem,
		License:         licenseSelector(cfg.License),
		RootVolumeGiB:   cfg.RootVolumeGiB,
		UserVolumeGiB:   cfg.UserVolumeGiB,
	})
	if err != nil {
		if errors.Is(err, catalog.ErrNoMatchingBundle) {
			e.logger.Warn().
				Str("trace_id", traceID).
				Str("region", cfg.Region).
				Str("bundle_id", cfg.BundleID).
				Msg("no catalog entry for bundle, pricing from fallback table")
		}
		return catalog.Entry{}, "", entries
	}
	return entry, tier.String(), entries
}

// reconcileVolumes adjusts the requested volume sizes to what the catalog
// offers for the bundle. Without catalog data the requests stand as-is.
func (e *Estimator) reconcileVolumes(cfg Configuration, entries []catalog.Entry) (root, user VolumeSelection) {
	offeredRoot, offeredUser := catalog.OfferedVolumes(cfg.BundleID, entries)
	return ReconcileVolume(cfg.RootVolumeGiB, offeredRoot),
		ReconcileVolume(cfg.UserVolumeGiB, offeredUser)
}

// checkHoursInvariant guards against a zero-hour result for a pattern that
// plainly describes usage. That would be an internal inconsistency, not a
// valid zero-cost estimate, so the always-on hours are substituted.
func (e *Estimator) checkHoursInvariant(traceID string, hours InstanceHours, req Request) InstanceHours {
	if hours.Total > 0 {
		return hours
	}
	p := req.UsagePattern
	if p == nil || req.TotalUsers == 0 {
		return hours
	}
	activeDays := p.WeekdayDays + p.WeekendDays
	activeUsers := p.WeekdayPeakUsers + p.WeekdayOffPeakUsers + p.WeekendPeakUsers + p.WeekendOffPeakUsers
	if activeDays == 0 || activeUsers == 0 {
		return hours
	}

	e.logger.Error().
		Str("trace_id", traceID).
		Int("total_users", req.TotalUsers).
		Msg("computed zero instance-hours for a non-degenerate pattern, substituting always-on hours")
	return alwaysOnHours(p, req.TotalUsers)
}

// licenseSelector renders a license for catalog selector comparison. The
// catalog spells these "Included" and "Bring Your Own License".
func licenseSelector(l License) string {
	if l == LicenseBYOL {
		return "Bring Your Own License"
	}
	return "Included"
}
