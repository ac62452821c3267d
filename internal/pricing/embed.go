package pricing

import _ "embed"

// Static fallback rate table, hand-maintained. Live catalog pricing always
// takes precedence; these rates keep estimates available when the catalog
// cannot be reached.

//go:embed data/fallback_rates.json
var rawFallbackJSON []byte
