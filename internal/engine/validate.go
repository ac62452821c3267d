package engine

import (
	"fmt"
	"strings"

	"vdicost/internal/catalog"
)

// ValidationError reports missing or invalid request fields. It is the only
// error an estimate call can return; every degraded-pricing condition is
// recovered internally instead.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s", strings.Join(e.Fields, ", "))
}

// ValidateRequest checks the request against the boundary invariants:
// required configuration fields, day counts summing to at most a week,
// peak hours within a day, and non-negative user counts.
func ValidateRequest(req *Request) error {
	var fields []string

	cfg := req.Configuration
	if cfg.Region == "" {
		fields = append(fields, "region: required")
	}
	if cfg.BundleID == "" {
		fields = append(fields, "bundleId: required")
	} else if _, _, ok := catalog.ResolveBundleID(cfg.BundleID); !ok {
		fields = append(fields, fmt.Sprintf("bundleId: unknown identifier %q", cfg.BundleID))
	}
	if cfg.OperatingSystem == "" {
		fields = append(fields, "operatingSystem: required")
	}
	switch cfg.License {
	case "", LicenseIncluded, LicenseBYOL:
	default:
		fields = append(fields, fmt.Sprintf("license: unknown value %q", cfg.License))
	}
	switch cfg.RunningMode {
	case "", RunningAlwaysOn, RunningAutoStop, RunningPool, RunningCustom:
	default:
		fields = append(fields, fmt.Sprintf("runningMode: unknown value %q", cfg.RunningMode))
	}
	if cfg.RootVolumeGiB < 0 {
		fields = append(fields, "rootVolumeGiB: must not be negative")
	}
	if cfg.UserVolumeGiB < 0 {
		fields = append(fields, "userVolumeGiB: must not be negative")
	}
	if req.TotalUsers < 0 {
		fields = append(fields, "totalUsers: must not be negative")
	}

	if p := req.UsagePattern; p != nil {
		fields = append(fields, validatePattern(p)...)
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

func validatePattern(p *UsagePattern) []string {
	var fields []string
	if p.WeekdayDays < 0 || p.WeekdayDays > 7 {
		fields = append(fields, "usagePattern.weekdayDays: must be within 0..7")
	}
	if p.WeekendDays < 0 || p.WeekendDays > 7 {
		fields = append(fields, "usagePattern.weekendDays: must be within 0..7")
	}
	if p.WeekdayDays >= 0 && p.WeekendDays >= 0 && p.WeekdayDays+p.WeekendDays > 7 {
		fields = append(fields, "usagePattern: weekdayDays + weekendDays must not exceed 7")
	}
	if p.WeekdayPeakHoursPerDay < 0 || p.WeekdayPeakHoursPerDay > 24 {
		fields = append(fields, "usagePattern.weekdayPeakHoursPerDay: must be within 0..24")
	}
	if p.WeekendPeakHoursPerDay < 0 || p.WeekendPeakHoursPerDay > 24 {
		fields = append(fields, "usagePattern.weekendPeakHoursPerDay: must be within 0..24")
	}
	userCounts := []struct {
		name  string
		value int
	}{
		{"weekdayPeakUsers", p.WeekdayPeakUsers},
		{"weekdayOffPeakUsers", p.WeekdayOffPeakUsers},
		{"weekendPeakUsers", p.WeekendPeakUsers},
		{"weekendOffPeakUsers", p.WeekendOffPeakUsers},
	}
	for _, c := range userCounts {
		if c.value < 0 {
			fields = append(fields, fmt.Sprintf("usagePattern.%s: must not be negative", c.name))
		}
	}
	return fields
}
