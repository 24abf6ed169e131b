package pricing

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/rates"
)

// LineItem is one cart line as entered by the user. The stored quantity is
// kept exactly as supplied, including transient values below 1; pricing
// substitutes the safe quantity without touching the stored value.
type LineItem struct {
	// ID is an opaque unique identifier assigned by the cart
	ID string `json:"id"`

	// Product is the product being quoted
	Product rates.ProductKind `json:"product"`

	// Quantity is the stored quantity (may be < 1 while being edited)
	Quantity int `json:"quantity"`

	// MarkupPercent is the supplied markup, 0-100 scale
	MarkupPercent decimal.Decimal `json:"markup_percent"`

	// TaxPercent is the supplied tax rate, 0-100 scale
	TaxPercent decimal.Decimal `json:"tax_percent"`

	// Annual bills the line for twelve months instead of one
	Annual bool `json:"annual,omitempty"`
}

// SafeQuantity is the effective quantity used for pricing, floored at 1.
func (l LineItem) SafeQuantity() int {
	if l.Quantity < 1 {
		return 1
	}
	return l.Quantity
}

// PricedLine is the fully composed price breakdown for one line. Derived,
// never stored: recomputing with identical inputs yields identical output.
// Monetary fields come in base-currency / display-currency pairs and
// percentages stay on the 0-100 scale so the shape serializes without
// ambiguity.
type PricedLine struct {
	LineID  string            `json:"line_id"`
	Product rates.ProductKind `json:"product"`
	Family  rates.Family      `json:"family"`
	Tier    string            `json:"tier"`

	// StoredQuantity echoes the cart value; SafeQuantity is what was priced
	StoredQuantity int `json:"stored_quantity"`
	SafeQuantity   int `json:"safe_quantity"`

	// Months is 1, or AnnualMonths for annual-billing lines. Unit figures
	// are per month; extended Line* figures include the multiplier.
	Months int64 `json:"months"`
	Annual bool  `json:"annual"`

	TaxPercent             decimal.Decimal `json:"tax_percent"`
	MarkupPercent          decimal.Decimal `json:"markup_percent"`
	EffectiveMarkupPercent decimal.Decimal `json:"effective_markup_percent"`

	// Base-currency breakdown
	UnitCostListed  decimal.Decimal `json:"unit_cost_listed"`
	UnitCostBase    decimal.Decimal `json:"unit_cost_base"`
	UnitCostWithTax decimal.Decimal `json:"unit_cost_with_tax"`
	UnitResale      decimal.Decimal `json:"unit_resale"`
	UnitProfit      decimal.Decimal `json:"unit_profit"`
	LineResale      decimal.Decimal `json:"line_resale"`
	LineProfit      decimal.Decimal `json:"line_profit"`

	// Display-currency twins
	UnitCostListedDisplay  decimal.Decimal `json:"unit_cost_listed_display"`
	UnitCostBaseDisplay    decimal.Decimal `json:"unit_cost_base_display"`
	UnitCostWithTaxDisplay decimal.Decimal `json:"unit_cost_with_tax_display"`
	UnitResaleDisplay      decimal.Decimal `json:"unit_resale_display"`
	UnitProfitDisplay      decimal.Decimal `json:"unit_profit_display"`
	LineResaleDisplay      decimal.Decimal `json:"line_resale_display"`
	LineProfitDisplay      decimal.Decimal `json:"line_profit_display"`
}
