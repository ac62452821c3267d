package catalog

// AggregationResponse is the shape returned by the pricing catalog's
// aggregation endpoint: the set of valid configuration tuples for a region.
type AggregationResponse struct {
	Aggregations []Aggregation `json:"aggregations"`
}

// Aggregation wraps one selector tuple.
type Aggregation struct {
	Selectors Selectors `json:"selectors"`
}

// Selectors carries the raw selector fields of one catalog tuple. Key names
// follow the upstream catalog convention, including the spaced ones.
type Selectors struct {
	BundleDescription string `json:"Bundle Description,omitempty"`
	Bundle            string `json:"Bundle,omitempty"`
	RootVolume        string `json:"rootVolume,omitempty"`
	UserVolume        string `json:"userVolume,omitempty"`
	OperatingSystem   string `json:"Operating System,omitempty"`
	License           string `json:"License,omitempty"`
	RunningMode       string `json:"Running Mode,omitempty"`
	ProductFamily     string `json:"Product Family,omitempty"`
	VCPU              string `json:"vCPU,omitempty"`
	Memory            string `json:"Memory,omitempty"`
	InstanceType      string `json:"Instance Type,omitempty"`
}

// Entry is one concrete, priceable configuration tuple known to the pricing
// catalog for a region.
type Entry struct {
	BundleDescription string
	RootVolume        string
	UserVolume        string
	OperatingSystem   string
	License           string
	RunningMode       string
	ProductFamily     string
	VCPU              string
	Memory            string
}

// entryFromSelectors flattens a selector tuple into an Entry. The catalog is
// inconsistent about which of the two bundle keys it populates.
func entryFromSelectors(s Selectors) Entry {
	desc := s.BundleDescription
	if desc == "" {
		desc = s.Bundle
	}
	return Entry{
		BundleDescription: desc,
		RootVolume:        s.RootVolume,
		UserVolume:        s.UserVolume,
		OperatingSystem:   s.OperatingSystem,
		License:           s.License,
		RunningMode:       s.RunningMode,
		ProductFamily:     s.ProductFamily,
		VCPU:              s.VCPU,
		Memory:            s.Memory,
	}
}

// PriceIndexResponse is the shape returned by the pricing catalog's price
// endpoint: unit prices for one fully-specified configuration, keyed by
// region name and then by an opaque line key.
type PriceIndexResponse struct {
	Regions map[string]map[string]PriceLine `json:"regions"`
}

// PriceLine is a single metered price component. Price is a decimal string
// as published by the catalog.
type PriceLine struct {
	Price    string `json:"price"`
	Unit     string `json:"Unit"`
	RateCode string `json:"rateCode"`
}
