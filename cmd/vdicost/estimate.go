package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"vdicost/internal/engine"
)

var scenarioFile string

var estimateCmd = &cobra.Command{
	Use:   "estimate",
	Short: "Estimate the monthly cost of one capacity scenario",
	Long: `Reads a YAML scenario file holding a configuration plus an optional
usage pattern and prints the resulting pricing estimate as JSON.

Scenario file example:

  configuration:
    region: us-east-1
    bundleId: standard
    operatingSystem: windows
    license: included
    runningMode: auto-stop
    rootVolumeGiB: 80
    userVolumeGiB: 50
  totalUsers: 100
  usagePattern:
    weekdayDays: 5
    weekdayPeakHoursPerDay: 8
    weekdayPeakUsers: 80
    weekdayOffPeakUsers: 10
    bufferFactor: 0.1`,
	RunE: runEstimate,
}

func init() {
	estimateCmd.Flags().StringVarP(&scenarioFile, "file", "f", "", "scenario file (YAML)")
	_ = estimateCmd.MarkFlagRequired("file")
}

func runEstimate(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(scenarioFile)
	if err != nil {
		return fmt.Errorf("read scenario: %w", err)
	}

	var req engine.Request
	if err := yaml.Unmarshal(data, &req); err != nil {
		return fmt.Errorf("parse scenario: %w", err)
	}

	_, estimator, _, err := setup()
	if err != nil {
		return err
	}

	estimate, err := estimator.Estimate(cmd.Context(), req)
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(estimate, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
