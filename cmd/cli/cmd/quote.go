// Package cmd - quote command
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"quotecalc/core/output"
	"quotecalc/core/pricing"
	"quotecalc/core/rates"
	"quotecalc/internal/config"
	"quotecalc/internal/logging"
)

var (
	outputFormat string
	ratesFile    string
	discount     string
	waiveFee     bool

	// single-line mode flags
	productFlag  string
	quantityFlag int
	markupFlag   string
	taxFlag      string
	annualFlag   bool
)

// quoteCmd represents the quote command
var quoteCmd = &cobra.Command{
	Use:   "quote [request.json]",
	Short: "Price a quote request",
	Long: `Price a cart of license lines and print the quote breakdown.

The request file is JSON with the same shape as the API request:

  {
    "lines": [
      {"product": "desktop", "quantity": 10, "markup_percent": 15, "tax_percent": 13}
    ],
    "discount_percent": 10
  }

Without a file, --product builds a single-line quote from flags.

Examples:
  quotecalc quote request.json
  quotecalc quote --product desktop --quantity 10 --markup 15 --tax 13
  quotecalc quote --discount 10 --waive-fee request.json
  quotecalc quote --rates custom.rates.hcl request.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: runQuote,
}

func init() {
	quoteCmd.Flags().StringVarP(&outputFormat, "format", "f", "", "output format (cli, json)")
	quoteCmd.Flags().StringVar(&ratesFile, "rates", "", "rate table HCL file (default is the built-in table)")
	quoteCmd.Flags().StringVar(&discount, "discount", "", "quote-level discount percent (0-100)")
	quoteCmd.Flags().BoolVar(&waiveFee, "waive-fee", false, "waive the processing fee")

	quoteCmd.Flags().StringVar(&productFlag, "product", "", "product kind for a single-line quote")
	quoteCmd.Flags().IntVar(&quantityFlag, "quantity", 1, "quantity for a single-line quote")
	quoteCmd.Flags().StringVar(&markupFlag, "markup", "15", "markup percent for a single-line quote")
	quoteCmd.Flags().StringVar(&taxFlag, "tax", "13", "tax percent for a single-line quote")
	quoteCmd.Flags().BoolVar(&annualFlag, "annual", false, "bill the single-line quote annually")
}

func runQuote(cmd *cobra.Command, args []string) error {
	cfg := config.Get()
	if ratesFile != "" {
		cfg.Rates.Path = ratesFile
	}

	table, err := cfg.BuildTable()
	if err != nil {
		return err
	}

	req, err := buildRequest(args)
	if err != nil {
		return err
	}

	if discount != "" {
		pct, err := decimal.NewFromString(discount)
		if err != nil {
			return fmt.Errorf("invalid discount %q: %w", discount, err)
		}
		req.DiscountPercent = pct
	}
	if waiveFee {
		req.WaiveFee = true
	}

	logging.Sugar.Debugw("pricing quote", "lines", len(req.Lines))

	totals, err := pricing.Aggregate(*req, table, cfg.Pricing)
	if err != nil {
		return err
	}

	format := output.Format(cfg.Output.DefaultFormat)
	if outputFormat != "" {
		format = output.Format(outputFormat)
	}
	formatter, err := output.New(format)
	if err != nil {
		return err
	}

	return formatter.Render(os.Stdout, &output.QuoteResult{
		Totals:      totals,
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		ShowLines:   cfg.Output.ShowLines,
	})
}

func buildRequest(args []string) (*pricing.QuoteRequest, error) {
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to read request file: %w", err)
		}
		var req pricing.QuoteRequest
		if err := json.Unmarshal(data, &req); err != nil {
			return nil, fmt.Errorf("failed to parse request file: %w", err)
		}
		for i, line := range req.Lines {
			if _, err := rates.ParseProductKind(string(line.Product)); err != nil {
				return nil, fmt.Errorf("line %d: %w", i, err)
			}
		}
		return &req, nil
	}

	if productFlag == "" {
		return nil, fmt.Errorf("either a request file or --product is required")
	}
	kind, err := rates.ParseProductKind(productFlag)
	if err != nil {
		return nil, err
	}
	markup, err := decimal.NewFromString(markupFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid markup %q: %w", markupFlag, err)
	}
	tax, err := decimal.NewFromString(taxFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid tax %q: %w", taxFlag, err)
	}

	return &pricing.QuoteRequest{
		Lines: []pricing.LineItem{{
			Product:       kind,
			Quantity:      quantityFlag,
			MarkupPercent: markup,
			TaxPercent:    tax,
			Annual:        annualFlag,
		}},
	}, nil
}
