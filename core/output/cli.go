package output

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
)

type cliFormatter struct{}

func (f *cliFormatter) Format() Format {
	return FormatCLI
}

func (f *cliFormatter) Render(w io.Writer, result *QuoteResult) error {
	totals := result.Totals

	if result.ShowLines && totals.LineCount > 0 {
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintf(tw, "PRODUCT\tTIER\tQTY\tMARKUP%%\tTAX%%\tRESALE (%s)\tPROFIT (%s)\n",
			totals.BaseCurrency, totals.BaseCurrency)
		for _, line := range totals.Lines {
			qty := fmt.Sprintf("%d", line.StoredQuantity)
			if line.SafeQuantity != line.StoredQuantity {
				qty = fmt.Sprintf("%d (priced as %d)", line.StoredQuantity, line.SafeQuantity)
			}
			product := string(line.Product)
			if line.Annual {
				product += " (annual)"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				product,
				line.Tier,
				qty,
				money(line.EffectiveMarkupPercent),
				money(line.TaxPercent),
				money(line.LineResale),
				money(line.LineProfit),
			)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Subtotal:        %s %s / %s %s\n",
		money(totals.Subtotal), totals.BaseCurrency,
		money(totals.SubtotalDisplay), totals.DisplayCurrency)
	if totals.DiscountAmount.IsPositive() {
		fmt.Fprintf(w, "Discount (%s%%):  -%s %s / -%s %s\n",
			money(totals.DiscountPercent),
			money(totals.DiscountAmount), totals.BaseCurrency,
			money(totals.DiscountAmountDisplay), totals.DisplayCurrency)
	}
	if totals.FeeWaived {
		fmt.Fprintf(w, "Processing fee:  waived\n")
	} else {
		fmt.Fprintf(w, "Fee (%s%%):       %s %s / %s %s\n",
			money(totals.FeePercent),
			money(totals.FeeAmount), totals.BaseCurrency,
			money(totals.FeeAmountDisplay), totals.DisplayCurrency)
	}
	fmt.Fprintf(w, "Grand total:     %s %s / %s %s\n",
		money(totals.GrandTotal), totals.BaseCurrency,
		money(totals.GrandTotalDisplay), totals.DisplayCurrency)
	fmt.Fprintf(w, "Total profit:    %s %s / %s %s\n",
		money(totals.TotalProfit), totals.BaseCurrency,
		money(totals.TotalProfitDisplay), totals.DisplayCurrency)

	return nil
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
