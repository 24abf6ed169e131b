// Package pricing - Quotation pricing engine
// Pure computation: line pricing, quote aggregation, currency conversion.
// Nothing in this package holds state or performs I/O.
package pricing

import (
	"github.com/shopspring/decimal"
)

// TaxOrder selects where tax is applied relative to markup. Both orders
// exist in deployed price lists, so the choice is explicit configuration
// rather than an implementation detail.
type TaxOrder string

const (
	// TaxAfterMarkup applies markup to the pre-tax base, then tax.
	TaxAfterMarkup TaxOrder = "after-markup"

	// TaxBeforeMarkup applies tax to the pre-tax base, then markup.
	TaxBeforeMarkup TaxOrder = "before-markup"
)

// Config holds the process-wide pricing constants.
// Percentages are on the 0-100 scale throughout, never 0-1 fractions.
type Config struct {
	// ExchangeRate converts base-currency amounts to display currency
	ExchangeRate decimal.Decimal `json:"exchange_rate"`

	// BaseCurrency is the currency of the rate table
	BaseCurrency string `json:"base_currency"`

	// DisplayCurrency is the converted reporting currency
	DisplayCurrency string `json:"display_currency"`

	// MinMarkupPercent is the floor enforced on any supplied markup
	MinMarkupPercent decimal.Decimal `json:"min_markup_percent"`

	// FeePercent is the processing fee charged on the post-discount total
	FeePercent decimal.Decimal `json:"fee_percent"`

	// FeeWaivable controls whether a quote may waive the processing fee
	FeeWaivable bool `json:"fee_waivable"`

	// TaxOrder selects tax-vs-markup composition order
	TaxOrder TaxOrder `json:"tax_order"`

	// AnnualMonths is the multiplier applied to extended totals on
	// annual-billing lines
	AnnualMonths int64 `json:"annual_months"`
}

// DefaultConfig returns the stock deployment constants.
func DefaultConfig() Config {
	return Config{
		ExchangeRate:     decimal.RequireFromString("61.87"),
		BaseCurrency:     "CAD",
		DisplayCurrency:  "INR",
		MinMarkupPercent: decimal.NewFromInt(15),
		FeePercent:       decimal.RequireFromString("2.9"),
		FeeWaivable:      true,
		TaxOrder:         TaxAfterMarkup,
		AnnualMonths:     12,
	}
}

// Converter returns the display-currency converter for this config.
func (c Config) Converter() *Converter {
	return NewConverter(FixedRate{rate: c.ExchangeRate})
}

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// percentFactor converts a 0-100 scale percentage into a (1 + p/100) factor
func percentFactor(percent decimal.Decimal) decimal.Decimal {
	return one.Add(percent.Div(hundred))
}
