// Package pricing holds the static fallback rate table used when the live
// pricing catalog is unavailable or returns no usable price.
package pricing

import (
	"fmt"
	"strings"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// byolDiscountFactor derives a BYOL price when a bundle class only carries
// an Included-license fallback entry.
const byolDiscountFactor = 0.85

type ratePoint struct {
	Monthly float64 `json:"monthly"`
	Hourly  float64 `json:"hourly"`
}

type bundleRates struct {
	Included *ratePoint `json:"included"`
	BYOL     *ratePoint `json:"byol"`
}

type fallbackData struct {
	Currency            string                 `json:"currency"`
	Bundles             map[string]bundleRates `json:"bundles"`
	StoppedHourlyRate   float64                `json:"stopped_hourly_rate"`
	UserLicenseMonthly  float64                `json:"user_license_monthly"`
	OSMonthlyAddition   map[string]float64     `json:"os_monthly_addition"`
	RegionMultipliers   map[string]float64     `json:"region_multipliers"`
	FunctionMultipliers map[string]float64     `json:"function_multipliers"`
}

// Table provides fallback rate lookups over the embedded data.
type Table struct {
	logger zerolog.Logger

	once sync.Once
	err  error
	data fallbackData
}

// NewTable parses the embedded fallback rates and returns a Table.
func NewTable(logger zerolog.Logger) (*Table, error) {
	t := &Table{logger: logger}
	if err := t.init(); err != nil {
		return nil, err
	}
	return t, nil
}

// init parses embedded rate data exactly once.
func (t *Table) init() error {
	t.once.Do(func() {
		if err := json.Unmarshal(rawFallbackJSON, &t.data); err != nil {
			t.err = fmt.Errorf("failed to parse fallback rates: %w", err)
			return
		}
		if len(t.data.Bundles) == 0 {
			t.err = fmt.Errorf("fallback rate table has no bundle classes")
			return
		}
		for class, rates := range t.data.Bundles {
			if rates.Included == nil {
				t.logger.Warn().
					Str("bundle_class", class).
					Msg("fallback entry missing included-license rates")
			}
		}
	})
	return t.err
}

// Currency returns the currency code of the fallback rates.
func (t *Table) Currency() string {
	if err := t.init(); err != nil {
		return "USD"
	}
	return t.data.Currency
}

// MonthlyRate returns the fallback monthly price for a bundle class.
// When byol is requested and the class has no BYOL entry, the Included
// rate with the fixed BYOL discount applied is returned instead.
// Returns (price, true) if found, (0, false) if the class is undefined.
func (t *Table) MonthlyRate(bundleClass string, byol bool) (float64, bool) {
	point, derived, ok := t.lookup(bundleClass, byol)
	if !ok {
		return 0, false
	}
	if derived {
		return point.Monthly * byolDiscountFactor, true
	}
	return point.Monthly, true
}

// HourlyRate returns the fallback hourly price for a bundle class, with the
// same BYOL derivation as MonthlyRate.
// Returns (price, true) if found, (0, false) if the class is undefined.
func (t *Table) HourlyRate(bundleClass string, byol bool) (float64, bool) {
	point, derived, ok := t.lookup(bundleClass, byol)
	if !ok {
		return 0, false
	}
	if derived {
		return point.Hourly * byolDiscountFactor, true
	}
	return point.Hourly, true
}

func (t *Table) lookup(bundleClass string, byol bool) (point ratePoint, derivedBYOL, ok bool) {
	if err := t.init(); err != nil {
		return ratePoint{}, false, false
	}
	rates, found := t.data.Bundles[bundleClass]
	if !found {
		return ratePoint{}, false, false
	}
	if byol {
		if rates.BYOL != nil {
			return *rates.BYOL, false, true
		}
		if rates.Included != nil {
			return *rates.Included, true, true
		}
		return ratePoint{}, false, false
	}
	if rates.Included == nil {
		return ratePoint{}, false, false
	}
	return *rates.Included, false, true
}

// StoppedHourlyRate is the flat rate for buffered/stopped capacity. Stopped
// instances bill at this rate regardless of bundle class.
func (t *Table) StoppedHourlyRate() float64 {
	if err := t.init(); err != nil {
		return 0
	}
	return t.data.StoppedHourlyRate
}

// UserLicenseMonthly is the per-user monthly license fee charged for pooled
// configurations under an Included license.
func (t *Table) UserLicenseMonthly() float64 {
	if err := t.init(); err != nil {
		return 0
	}
	return t.data.UserLicenseMonthly
}

// OSMonthlyAddition returns the monthly price addition for an operating
// system. Unknown systems add nothing.
func (t *Table) OSMonthlyAddition(operatingSystem string) float64 {
	if err := t.init(); err != nil {
		return 0
	}
	return t.data.OSMonthlyAddition[normalizeKey(operatingSystem)]
}

// RegionMultiplier returns the price multiplier for a region, 1.0 when the
// region is not listed.
func (t *Table) RegionMultiplier(region string) float64 {
	if err := t.init(); err != nil {
		return 1.0
	}
	if m, ok := t.data.RegionMultipliers[normalizeKey(region)]; ok && m > 0 {
		return m
	}
	return 1.0
}

// FunctionMultiplier returns the price multiplier for an instance function,
// 1.0 when the function is not listed.
func (t *Table) FunctionMultiplier(instanceFunction string) float64 {
	if err := t.init(); err != nil {
		return 1.0
	}
	if m, ok := t.data.FunctionMultipliers[normalizeKey(instanceFunction)]; ok && m > 0 {
		return m
	}
	return 1.0
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
