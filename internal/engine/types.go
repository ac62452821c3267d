// Package engine implements the pricing-resolution and usage-cost
// calculation core: usage hours, catalog matching, volume reconciliation,
// tiered price resolution and cost aggregation.
package engine

import "vdicost/internal/catalog"

// License selects who supplies the desktop operating system license.
type License string

const (
	LicenseIncluded License = "included"
	LicenseBYOL     License = "byol"
)

// RunningMode is the billing behavior of provisioned capacity.
type RunningMode string

const (
	RunningAlwaysOn RunningMode = "always-on"
	RunningAutoStop RunningMode = "auto-stop"
	RunningPool     RunningMode = "pool"
	RunningCustom   RunningMode = "custom"
)

// hourlyBilled reports whether the running mode bills by the hour rather
// than a flat monthly rate.
func (m RunningMode) hourlyBilled() bool {
	return m == RunningAutoStop || m == RunningPool
}

// InstanceFunction is the role capacity plays in a streaming deployment.
type InstanceFunction string

const (
	FunctionFleet        InstanceFunction = "fleet"
	FunctionImageBuilder InstanceFunction = "imagebuilder"
	FunctionElasticFleet InstanceFunction = "elasticfleet"
)

// Configuration is one user-chosen capacity configuration. Constructed per
// estimate request and never persisted.
type Configuration struct {
	Region           string           `json:"region" yaml:"region"`
	BundleID         string           `json:"bundleId" yaml:"bundleId"`
	OperatingSystem  string           `json:"operatingSystem" yaml:"operatingSystem"`
	License          License          `json:"license" yaml:"license"`
	RunningMode      RunningMode      `json:"runningMode" yaml:"runningMode"`
	RootVolumeGiB    int              `json:"rootVolumeGiB" yaml:"rootVolumeGiB"`
	UserVolumeGiB    int              `json:"userVolumeGiB" yaml:"userVolumeGiB"`
	MultiSession     bool             `json:"multiSession" yaml:"multiSession"`
	InstanceFunction InstanceFunction `json:"instanceFunction" yaml:"instanceFunction"`
}

// UsagePattern describes which hours of the week capacity is actively used
// and by how many concurrent users. Concurrent-user fields are absolute
// counts, clamped to the request's total user count.
type UsagePattern struct {
	WeekdayDays            int     `json:"weekdayDays" yaml:"weekdayDays"`
	WeekdayPeakHoursPerDay int     `json:"weekdayPeakHoursPerDay" yaml:"weekdayPeakHoursPerDay"`
	WeekdayPeakUsers       int     `json:"weekdayPeakUsers" yaml:"weekdayPeakUsers"`
	WeekdayOffPeakUsers    int     `json:"weekdayOffPeakUsers" yaml:"weekdayOffPeakUsers"`
	WeekendDays            int     `json:"weekendDays" yaml:"weekendDays"`
	WeekendPeakHoursPerDay int     `json:"weekendPeakHoursPerDay" yaml:"weekendPeakHoursPerDay"`
	WeekendPeakUsers       int     `json:"weekendPeakUsers" yaml:"weekendPeakUsers"`
	WeekendOffPeakUsers    int     `json:"weekendOffPeakUsers" yaml:"weekendOffPeakUsers"`
	BufferFactor           float64 `json:"bufferFactor" yaml:"bufferFactor"`
}

// Request is the input to one estimate call.
type Request struct {
	Configuration Configuration `json:"configuration" yaml:"configuration"`
	TotalUsers    int           `json:"totalUsers" yaml:"totalUsers"`
	UsagePattern  *UsagePattern `json:"usagePattern,omitempty" yaml:"usagePattern,omitempty"`
}

// PriceSource tags where a quote's unit price came from.
type PriceSource string

const (
	SourceCatalog  PriceSource = "catalog"
	SourceFallback PriceSource = "fallback"
)

// PriceUnit is the billing unit of a quote.
type PriceUnit string

const (
	UnitHour  PriceUnit = "hour"
	UnitMonth PriceUnit = "month"
)

// PriceQuote is a resolved unit price for a fully-specified configuration.
type PriceQuote struct {
	UnitPrice float64     `json:"unitPrice"`
	Unit      PriceUnit   `json:"unit"`
	Source    PriceSource `json:"source"`
}

// InstanceHours is the monthly instance-hours split between actively used
// and buffered (idle/reserved) capacity.
type InstanceHours struct {
	Utilized float64 `json:"utilized"`
	Buffer   float64 `json:"buffer"`
	Total    float64 `json:"total"`
}

// Breakdown itemizes how the monthly cost was assembled. Multiplier fields
// record the factor that was applied, cost fields the resulting amounts.
type Breakdown struct {
	BasePrice           float64 `json:"basePrice"`
	OSAddition          float64 `json:"osAddition"`
	FunctionMultiplier  float64 `json:"functionMultiplier"`
	RegionMultiplier    float64 `json:"regionMultiplier"`
	MultiSessionFactor  float64 `json:"multiSessionFactor"`
	UserLicenseCost     float64 `json:"userLicenseCost"`
	ActiveStreamingCost float64 `json:"activeStreamingCost"`
	StoppedInstanceCost float64 `json:"stoppedInstanceCost"`
	StoppedInstanceRate float64 `json:"stoppedInstanceRate"`
	PerUserLicenseFee   float64 `json:"perUserLicenseFee"`
}

// PricingEstimate is the complete result of one estimate call.
type PricingEstimate struct {
	CostPerUnit            float64       `json:"costPerUnit"`
	Unit                   PriceUnit     `json:"unit"`
	Currency               string        `json:"currency"`
	TotalMonthlyCost       float64       `json:"totalMonthlyCost"`
	AnnualEstimate         float64       `json:"annualEstimate"`
	Reserved1YearEstimate  float64       `json:"reserved1YearEstimate"`
	Reserved3YearEstimate  float64       `json:"reserved3YearEstimate"`
	InstanceHours          InstanceHours `json:"instanceHours"`
	Breakdown              Breakdown     `json:"breakdown"`
	ResolvedRootVolumeGiB  int           `json:"resolvedRootVolumeGiB"`
	ResolvedUserVolumeGiB  int           `json:"resolvedUserVolumeGiB"`
	VolumeSelectionHonored bool          `json:"volumeSelectionHonored"`
	PricingSource          PriceSource   `json:"pricingSource"`
	BundleMatch            string        `json:"bundleMatch,omitempty"`
	BundleSpec             *catalog.Spec `json:"bundleSpec,omitempty"`
}
