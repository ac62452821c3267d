package engine

import "math"

const (
	// weeksPerMonth converts weekly patterns to monthly hours
	// (730 hours/month divided by 168 hours/week).
	weeksPerMonth = 4.35

	// hoursPerMonth is the flat monthly hour count for always-on capacity.
	hoursPerMonth = 730.0
)

// ComputeHours converts a usage pattern into monthly instance-hours.
// A nil pattern, or the AlwaysOn running mode, degenerates to a flat
// 730 hours per user with no buffer. Buffer hours are always zero for the
// ElasticFleet instance function, which absorbs its own scaling margin.
func ComputeHours(pattern *UsagePattern, totalUsers int, mode RunningMode, fn InstanceFunction) InstanceHours {
	if pattern == nil || mode == RunningAlwaysOn {
		return alwaysOnHours(pattern, totalUsers)
	}

	buffer := clampBuffer(pattern.BufferFactor)
	if fn == FunctionElasticFleet {
		buffer = 0
	}

	var h InstanceHours
	addPeriod(&h, pattern.WeekdayDays, pattern.WeekdayPeakHoursPerDay,
		pattern.WeekdayPeakUsers, pattern.WeekdayOffPeakUsers, totalUsers, buffer)
	addPeriod(&h, pattern.WeekendDays, pattern.WeekendPeakHoursPerDay,
		pattern.WeekendPeakUsers, pattern.WeekendOffPeakUsers, totalUsers, buffer)
	h.Total = h.Utilized + h.Buffer
	return h
}

// addPeriod accumulates the peak and off-peak contribution of one day class.
// Off-peak hours per day are the remainder of the 24-hour day.
func addPeriod(h *InstanceHours, days, peakHoursPerDay, peakUsers, offPeakUsers, totalUsers int, buffer float64) {
	if days <= 0 {
		return
	}
	peakHours := float64(days) * float64(peakHoursPerDay) * weeksPerMonth
	offPeakHours := float64(days) * float64(24-peakHoursPerDay) * weeksPerMonth

	peak := clampUsers(peakUsers, totalUsers)
	offPeak := clampUsers(offPeakUsers, totalUsers)

	h.Utilized += float64(peak)*peakHours + float64(offPeak)*offPeakHours
	if buffer > 0 {
		h.Buffer += math.Ceil(float64(peak)*buffer)*peakHours +
			math.Ceil(float64(offPeak)*buffer)*offPeakHours
	}
}

// alwaysOnHours is the degenerate flat pattern: every instance runs the full
// month. The weekday peak user count, when declared, caps the instance count.
func alwaysOnHours(pattern *UsagePattern, totalUsers int) InstanceHours {
	users := totalUsers
	if pattern != nil && pattern.WeekdayPeakUsers > 0 && pattern.WeekdayPeakUsers < users {
		users = pattern.WeekdayPeakUsers
	}
	if users < 0 {
		users = 0
	}
	utilized := hoursPerMonth * float64(users)
	return InstanceHours{Utilized: utilized, Total: utilized}
}

// clampUsers caps a declared concurrent-user count at the total user count.
func clampUsers(declared, total int) int {
	if declared < 0 {
		return 0
	}
	if total >= 0 && declared > total {
		return total
	}
	return declared
}

// clampBuffer restricts the buffer factor to [0, 1].
func clampBuffer(f float64) float64 {
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
