package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vdicost/internal/catalog"
	"vdicost/internal/config"
	"vdicost/internal/engine"
	"vdicost/internal/pricing"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "vdicost",
	Short: "Estimate monthly costs for virtual-desktop and streaming capacity",
	Long: `vdicost estimates the monthly cost of virtual-desktop and
application-streaming capacity for a chosen configuration (region, hardware
bundle, operating system, licensing, running mode) and a weekly usage
pattern.

Prices come from the live pricing catalog when reachable and from a static
fallback rate table otherwise; every estimate reports which source priced it.

Examples:
  vdicost estimate -f scenario.yaml
  vdicost serve --listen :8080
  vdicost bundles`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.AddCommand(estimateCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(bundlesCmd)
}

// setup loads configuration and builds the estimator stack shared by the
// estimate and serve commands.
func setup() (config.Config, *engine.Estimator, zerolog.Logger, error) {
	bootstrap := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(cfgFile, bootstrap)
	if err != nil {
		return config.Config{}, nil, bootstrap, err
	}

	logger := zerolog.New(os.Stderr).Level(cfg.Level()).With().Timestamp().Logger()

	var catalogClient catalog.Client
	if cfg.CatalogBaseURL != "" {
		catalogClient = catalog.NewHTTPClient(cfg.CatalogBaseURL, cfg.CatalogTimeout(), logger)
	} else {
		logger.Warn().Msg("no catalog URL configured, estimates use fallback rates only")
	}

	rates, err := pricing.NewTable(logger)
	if err != nil {
		return cfg, nil, logger, err
	}

	return cfg, engine.NewEstimator(catalogClient, rates, logger), logger, nil
}
