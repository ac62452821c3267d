package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"vdicost/internal/catalog"
	"vdicost/internal/pricing"
)

var bundlesCmd = &cobra.Command{
	Use:   "bundles",
	Short: "List bundle classes and their fallback rates",
	RunE:  runBundles,
}

func runBundles(_ *cobra.Command, _ []string) error {
	logger := zerolog.New(os.Stderr).Level(zerolog.WarnLevel).With().Timestamp().Logger()
	rates, err := pricing.NewTable(logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CLASS\tMONTHLY\tHOURLY\tMONTHLY (BYOL)\tHOURLY (BYOL)")
	for _, class := range catalog.Classes() {
		monthly, _ := rates.MonthlyRate(string(class), false)
		hourly, _ := rates.HourlyRate(string(class), false)
		monthlyBYOL, _ := rates.MonthlyRate(string(class), true)
		hourlyBYOL, _ := rates.HourlyRate(string(class), true)
		fmt.Fprintf(w, "%s\t$%.2f\t$%.2f\t$%.2f\t$%.2f\n",
			class, monthly, hourly, monthlyBYOL, hourlyBYOL)
	}
	return w.Flush()
}
