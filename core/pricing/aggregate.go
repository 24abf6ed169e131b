package pricing

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/rates"
	"quotecalc/internal/errors"
)

// QuoteRequest is the immutable input to quote aggregation: the lines to
// price plus the quote-level discount and fee toggle. Discount and fee are
// quote-level, never per-line.
type QuoteRequest struct {
	Lines           []LineItem      `json:"lines"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	WaiveFee        bool            `json:"waive_fee,omitempty"`
}

// QuoteTotals is the aggregated quote breakdown. Flat, serialization-ready:
// percentages on the 0-100 scale, every monetary field with a
// display-currency twin.
type QuoteTotals struct {
	Lines     []PricedLine `json:"lines"`
	LineCount int          `json:"line_count"`

	BaseCurrency    string `json:"base_currency"`
	DisplayCurrency string `json:"display_currency"`

	Subtotal        decimal.Decimal `json:"subtotal"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	AfterDiscount   decimal.Decimal `json:"after_discount"`
	FeePercent      decimal.Decimal `json:"fee_percent"`
	FeeAmount       decimal.Decimal `json:"fee_amount"`
	FeeWaived       bool            `json:"fee_waived"`
	GrandTotal      decimal.Decimal `json:"grand_total"`
	TotalProfit     decimal.Decimal `json:"total_profit"`

	SubtotalDisplay       decimal.Decimal `json:"subtotal_display"`
	DiscountAmountDisplay decimal.Decimal `json:"discount_amount_display"`
	AfterDiscountDisplay  decimal.Decimal `json:"after_discount_display"`
	FeeAmountDisplay      decimal.Decimal `json:"fee_amount_display"`
	GrandTotalDisplay     decimal.Decimal `json:"grand_total_display"`
	TotalProfitDisplay    decimal.Decimal `json:"total_profit_display"`
}

// Aggregate prices every line independently and combines them into quote
// totals. The order is fixed: sum lines, then discount the subtotal, then
// charge the processing fee on the post-discount amount. An empty request
// produces zero totals, not an error.
func Aggregate(req QuoteRequest, table *rates.Table, cfg Config) (QuoteTotals, error) {
	if req.DiscountPercent.IsNegative() {
		return QuoteTotals{}, errors.Inputf("discount percent must be >= 0, got %s", req.DiscountPercent)
	}

	totals := QuoteTotals{
		Lines:           make([]PricedLine, 0, len(req.Lines)),
		BaseCurrency:    cfg.BaseCurrency,
		DisplayCurrency: cfg.DisplayCurrency,
		DiscountPercent: req.DiscountPercent,
		FeePercent:      cfg.FeePercent,
	}

	subtotal := decimal.Zero
	profit := decimal.Zero
	for _, line := range req.Lines {
		priced, err := PriceLine(line, table, cfg)
		if err != nil {
			return QuoteTotals{}, err
		}
		totals.Lines = append(totals.Lines, priced)
		subtotal = subtotal.Add(priced.LineResale)
		profit = profit.Add(priced.LineProfit)
	}
	totals.LineCount = len(totals.Lines)

	discountAmount := subtotal.Mul(req.DiscountPercent.Div(hundred))
	afterDiscount := subtotal.Sub(discountAmount)

	feeWaived := req.WaiveFee && cfg.FeeWaivable
	feeAmount := decimal.Zero
	if !feeWaived {
		feeAmount = afterDiscount.Mul(cfg.FeePercent.Div(hundred))
	}

	totals.Subtotal = subtotal
	totals.DiscountAmount = discountAmount
	totals.AfterDiscount = afterDiscount
	totals.FeeAmount = feeAmount
	totals.FeeWaived = feeWaived
	totals.GrandTotal = afterDiscount.Add(feeAmount)
	totals.TotalProfit = profit

	converter := cfg.Converter()
	for _, pair := range []struct {
		base    decimal.Decimal
		display *decimal.Decimal
	}{
		{totals.Subtotal, &totals.SubtotalDisplay},
		{totals.DiscountAmount, &totals.DiscountAmountDisplay},
		{totals.AfterDiscount, &totals.AfterDiscountDisplay},
		{totals.FeeAmount, &totals.FeeAmountDisplay},
		{totals.GrandTotal, &totals.GrandTotalDisplay},
		{totals.TotalProfit, &totals.TotalProfitDisplay},
	} {
		display, err := converter.ToDisplay(pair.base)
		if err != nil {
			return QuoteTotals{}, err
		}
		*pair.display = display
	}

	return totals, nil
}
