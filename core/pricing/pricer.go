package pricing

import (
	"github.com/shopspring/decimal"

	"quotecalc/core/rates"
	"quotecalc/internal/errors"
)

// PriceLine composes the full price breakdown for a single line.
//
// The composition order is fixed and load-bearing:
//
//	safe quantity -> tier -> listed cost -> pre-tax base -> markup floor
//	-> markup/tax per cfg.TaxOrder -> profit -> extend by quantity
//	-> annual multiplier on extended totals
//
// Pure function of its inputs; pricing the same line twice yields
// bit-identical output.
func PriceLine(line LineItem, table *rates.Table, cfg Config) (PricedLine, error) {
	if line.TaxPercent.IsNegative() {
		return PricedLine{}, errors.Inputf("tax percent must be >= 0, got %s", line.TaxPercent)
	}

	safeQuantity := line.SafeQuantity()

	tier, err := table.ResolveTier(line.Product, safeQuantity)
	if err != nil {
		return PricedLine{}, err
	}

	listed := tier.UnitCost
	base := table.BasePreTax(listed)

	// Markup floor is a clamp, not a rejection: a below-floor markup
	// prices as the floor while the supplied value stays visible.
	effectiveMarkup := line.MarkupPercent
	if effectiveMarkup.LessThan(cfg.MinMarkupPercent) {
		effectiveMarkup = cfg.MinMarkupPercent
	}

	markupFactor := percentFactor(effectiveMarkup)
	taxFactor := percentFactor(line.TaxPercent)

	var unitResale decimal.Decimal
	switch cfg.TaxOrder {
	case TaxBeforeMarkup:
		unitResale = base.Mul(taxFactor).Mul(markupFactor)
	default:
		unitResale = base.Mul(markupFactor).Mul(taxFactor)
	}

	// Profit isolates the markup's contribution: resale minus the
	// no-markup-but-same-tax baseline.
	unitCostWithTax := base.Mul(taxFactor)
	unitProfit := unitResale.Sub(unitCostWithTax)

	quantity := decimal.NewFromInt(int64(safeQuantity))
	months := int64(1)
	if line.Annual {
		months = cfg.AnnualMonths
	}
	extend := quantity.Mul(decimal.NewFromInt(months))

	lineResale := unitResale.Mul(extend)
	lineProfit := unitProfit.Mul(extend)

	converter := cfg.Converter()
	toDisplay := func(amount decimal.Decimal) decimal.Decimal {
		display, convErr := converter.ToDisplay(amount)
		if convErr != nil && err == nil {
			err = convErr
		}
		return display
	}

	priced := PricedLine{
		LineID:                 line.ID,
		Product:                line.Product,
		Family:                 line.Product.Family(),
		Tier:                   tier.Label,
		StoredQuantity:         line.Quantity,
		SafeQuantity:           safeQuantity,
		Months:                 months,
		Annual:                 line.Annual,
		TaxPercent:             line.TaxPercent,
		MarkupPercent:          line.MarkupPercent,
		EffectiveMarkupPercent: effectiveMarkup,
		UnitCostListed:         listed,
		UnitCostBase:           base,
		UnitCostWithTax:        unitCostWithTax,
		UnitResale:             unitResale,
		UnitProfit:             unitProfit,
		LineResale:             lineResale,
		LineProfit:             lineProfit,
		UnitCostListedDisplay:  toDisplay(listed),
		UnitCostBaseDisplay:    toDisplay(base),
		UnitCostWithTaxDisplay: toDisplay(unitCostWithTax),
		UnitResaleDisplay:      toDisplay(unitResale),
		UnitProfitDisplay:      toDisplay(unitProfit),
		LineResaleDisplay:      toDisplay(lineResale),
		LineProfitDisplay:      toDisplay(lineProfit),
	}
	if err != nil {
		return PricedLine{}, err
	}
	return priced, nil
}
