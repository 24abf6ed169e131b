// Package cmd - products command
package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quotecalc/core/rates"
	"quotecalc/internal/config"
)

// productsCmd lists the products in the active rate table
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List quotable products and their tier schedules",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Get()
		table, err := cfg.BuildTable()
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "PRODUCT\tFAMILY\tTIER\tRANGE\tUNIT COST (%s)\n", cfg.Pricing.BaseCurrency)
		for _, kind := range rates.Kinds() {
			tiers, err := table.Tiers(kind)
			if err != nil {
				continue
			}
			for _, tier := range tiers {
				rng := fmt.Sprintf("%d-%d", tier.Min, tier.Max)
				if tier.Unbounded() {
					rng = fmt.Sprintf("%d+", tier.Min)
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					kind, kind.Family(), tier.Label, rng, tier.UnitCost.StringFixed(2))
			}
		}
		return tw.Flush()
	},
}
