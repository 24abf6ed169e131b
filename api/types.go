package api

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/pricing"
	"quotecalc/core/rates"
	"quotecalc/internal/errors"
)

// QuoteRequest is the wire form of a quote computation request.
// Percentages are on the 0-100 scale, matching the engine.
type QuoteRequest struct {
	Lines           []LineRequest   `json:"lines"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	WaiveFee        bool            `json:"waive_fee,omitempty"`
}

// LineRequest is one requested cart line
type LineRequest struct {
	Product       string          `json:"product"`
	Quantity      int             `json:"quantity"`
	MarkupPercent decimal.Decimal `json:"markup_percent"`
	TaxPercent    decimal.Decimal `json:"tax_percent"`
	Annual        bool            `json:"annual,omitempty"`
}

// QuoteResponse wraps the computed totals
type QuoteResponse struct {
	Totals pricing.QuoteTotals `json:"totals"`
}

// ProductInfo describes one quotable product
type ProductInfo struct {
	Kind   string   `json:"kind"`
	Family string   `json:"family"`
	Tiers  []string `json:"tiers"`
}

// toEngineRequest validates and converts the wire request
func (r *QuoteRequest) toEngineRequest() (pricing.QuoteRequest, error) {
	req := pricing.QuoteRequest{
		DiscountPercent: r.DiscountPercent,
		WaiveFee:        r.WaiveFee,
		Lines:           make([]pricing.LineItem, 0, len(r.Lines)),
	}
	for i, line := range r.Lines {
		kind, err := rates.ParseProductKind(line.Product)
		if err != nil {
			return pricing.QuoteRequest{}, errors.Inputf("line %d: unknown product %q", i, line.Product)
		}
		req.Lines = append(req.Lines, pricing.LineItem{
			Product:       kind,
			Quantity:      line.Quantity,
			MarkupPercent: line.MarkupPercent,
			TaxPercent:    line.TaxPercent,
			Annual:        line.Annual,
		})
	}
	return req, nil
}
