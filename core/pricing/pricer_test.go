package pricing

import (
	"testing"

	"github.com/shopspring/decimal"

	"quotecalc/core/rates"
	"quotecalc/internal/errors"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func testLine(quantity int) LineItem {
	return LineItem{
		ID:            "line-1",
		Product:       rates.Desktop,
		Quantity:      quantity,
		MarkupPercent: d("15"),
		TaxPercent:    d("13"),
	}
}

// TestPriceLineDesktopScenario walks the reference scenario end to end:
// desktop, quantity 10, tier 1-25 at 6.64, tax 13%, markup 15%.
func TestPriceLineDesktopScenario(t *testing.T) {
	priced, err := PriceLine(testLine(10), rates.Builtin(), DefaultConfig())
	if err != nil {
		t.Fatalf("PriceLine: unexpected error: %v", err)
	}

	checks := []struct {
		name string
		got  decimal.Decimal
		want decimal.Decimal
	}{
		{"UnitCostListed", priced.UnitCostListed, d("6.64")},
		{"UnitCostBase", priced.UnitCostBase, d("6.64")},
		{"UnitCostWithTax", priced.UnitCostWithTax, d("7.5032")},
		{"UnitResale", priced.UnitResale, d("8.62868")},
		{"UnitProfit", priced.UnitProfit, d("1.12548")},
		{"LineResale", priced.LineResale, d("86.2868")},
		{"LineProfit", priced.LineProfit, d("11.2548")},
		{"UnitResaleDisplay", priced.UnitResaleDisplay, d("8.62868").Mul(d("61.87"))},
		{"LineResaleDisplay", priced.LineResaleDisplay, d("86.2868").Mul(d("61.87"))},
	}
	for _, c := range checks {
		if !c.got.Equal(c.want) {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}

	if priced.Tier != "1-25" {
		t.Errorf("Tier = %q, want 1-25", priced.Tier)
	}
	if priced.SafeQuantity != 10 || priced.StoredQuantity != 10 {
		t.Errorf("quantities = stored %d / safe %d, want 10/10", priced.StoredQuantity, priced.SafeQuantity)
	}
}

// TestPriceLineIdempotent proves pricing the same line twice yields
// identical output.
func TestPriceLineIdempotent(t *testing.T) {
	table := rates.Builtin()
	cfg := DefaultConfig()
	line := testLine(42)

	first, err := PriceLine(line, table, cfg)
	if err != nil {
		t.Fatalf("first PriceLine: %v", err)
	}
	second, err := PriceLine(line, table, cfg)
	if err != nil {
		t.Fatalf("second PriceLine: %v", err)
	}

	pairs := []struct {
		name string
		a, b decimal.Decimal
	}{
		{"UnitResale", first.UnitResale, second.UnitResale},
		{"UnitProfit", first.UnitProfit, second.UnitProfit},
		{"LineResale", first.LineResale, second.LineResale},
		{"LineProfit", first.LineProfit, second.LineProfit},
		{"LineResaleDisplay", first.LineResaleDisplay, second.LineResaleDisplay},
	}
	for _, p := range pairs {
		if !p.a.Equal(p.b) {
			t.Errorf("%s differs across identical calls: %s vs %s", p.name, p.a, p.b)
		}
	}
	if first.Tier != second.Tier {
		t.Errorf("Tier differs: %q vs %q", first.Tier, second.Tier)
	}
}

// TestPriceLineMarkupFloor proves a below-floor markup prices exactly as
// the floor while the supplied value stays visible.
func TestPriceLineMarkupFloor(t *testing.T) {
	table := rates.Builtin()
	cfg := DefaultConfig() // floor 15

	below := testLine(10)
	below.MarkupPercent = d("5")
	atFloor := testLine(10)
	atFloor.MarkupPercent = d("15")

	pricedBelow, err := PriceLine(below, table, cfg)
	if err != nil {
		t.Fatalf("PriceLine(markup 5): %v", err)
	}
	pricedFloor, err := PriceLine(atFloor, table, cfg)
	if err != nil {
		t.Fatalf("PriceLine(markup 15): %v", err)
	}

	if !pricedBelow.UnitResale.Equal(pricedFloor.UnitResale) {
		t.Errorf("markup 5 resale %s != markup 15 resale %s", pricedBelow.UnitResale, pricedFloor.UnitResale)
	}
	if !pricedBelow.MarkupPercent.Equal(d("5")) {
		t.Errorf("supplied markup overwritten: %s", pricedBelow.MarkupPercent)
	}
	if !pricedBelow.EffectiveMarkupPercent.Equal(d("15")) {
		t.Errorf("effective markup = %s, want 15", pricedBelow.EffectiveMarkupPercent)
	}
}

// TestPriceLineSafeQuantity proves quantities below 1 price as 1 without
// the stored quantity being rewritten.
func TestPriceLineSafeQuantity(t *testing.T) {
	for _, stored := range []int{0, -3} {
		priced, err := PriceLine(testLine(stored), rates.Builtin(), DefaultConfig())
		if err != nil {
			t.Fatalf("PriceLine(quantity %d): %v", stored, err)
		}
		if priced.SafeQuantity != 1 {
			t.Errorf("SafeQuantity = %d, want 1", priced.SafeQuantity)
		}
		if priced.StoredQuantity != stored {
			t.Errorf("StoredQuantity = %d, want %d untouched", priced.StoredQuantity, stored)
		}
		if !priced.LineResale.Equal(priced.UnitResale) {
			t.Errorf("line total %s should equal one unit %s", priced.LineResale, priced.UnitResale)
		}
	}
}

func TestPriceLineRejectsNegativeTax(t *testing.T) {
	line := testLine(10)
	line.TaxPercent = d("-1")

	_, err := PriceLine(line, rates.Builtin(), DefaultConfig())
	if err == nil {
		t.Fatal("expected error for negative tax, got none")
	}
	if !errors.IsType(err, errors.TypeInput) {
		t.Errorf("expected INPUT_ERROR, got %v", err)
	}
}

// TestPriceLineAnnualBilling proves the annual flag multiplies extended
// totals by twelve while per-unit figures stay monthly.
func TestPriceLineAnnualBilling(t *testing.T) {
	monthly := testLine(10)
	annual := testLine(10)
	annual.Annual = true

	pricedMonthly, err := PriceLine(monthly, rates.Builtin(), DefaultConfig())
	if err != nil {
		t.Fatalf("PriceLine(monthly): %v", err)
	}
	pricedAnnual, err := PriceLine(annual, rates.Builtin(), DefaultConfig())
	if err != nil {
		t.Fatalf("PriceLine(annual): %v", err)
	}

	twelve := decimal.NewFromInt(12)
	if !pricedAnnual.LineResale.Equal(pricedMonthly.LineResale.Mul(twelve)) {
		t.Errorf("annual LineResale = %s, want %s", pricedAnnual.LineResale, pricedMonthly.LineResale.Mul(twelve))
	}
	if !pricedAnnual.LineProfit.Equal(pricedMonthly.LineProfit.Mul(twelve)) {
		t.Errorf("annual LineProfit = %s, want %s", pricedAnnual.LineProfit, pricedMonthly.LineProfit.Mul(twelve))
	}
	if !pricedAnnual.UnitResale.Equal(pricedMonthly.UnitResale) {
		t.Errorf("annual UnitResale %s changed from monthly %s", pricedAnnual.UnitResale, pricedMonthly.UnitResale)
	}
	if pricedAnnual.Months != 12 || pricedMonthly.Months != 1 {
		t.Errorf("months = %d annual / %d monthly, want 12/1", pricedAnnual.Months, pricedMonthly.Months)
	}
}

// TestPriceLineTaxInclusiveTable proves the baked-in tax is stripped before
// the per-line tax rate is reapplied: a table listing 7.5032 with 13% baked
// in prices identically to a tax-exclusive table listing 6.64.
func TestPriceLineTaxInclusiveTable(t *testing.T) {
	inclusive := &rates.Table{
		TaxInclusive:      true,
		BakedInTaxPercent: d("13"),
		Products: map[rates.ProductKind][]rates.TierRange{
			rates.Desktop: {
				{Label: "1+", Min: 1, UnitCost: d("7.5032")},
			},
		},
	}
	if err := inclusive.Validate(); err != nil {
		t.Fatalf("test table invalid: %v", err)
	}

	priced, err := PriceLine(testLine(10), inclusive, DefaultConfig())
	if err != nil {
		t.Fatalf("PriceLine: %v", err)
	}

	if !priced.UnitCostBase.Equal(d("6.64")) {
		t.Errorf("UnitCostBase = %s, want 6.64 after stripping baked-in tax", priced.UnitCostBase)
	}
	if !priced.UnitResale.Equal(d("8.62868")) {
		t.Errorf("UnitResale = %s, want 8.62868", priced.UnitResale)
	}
}

// TestPriceLineTaxOrder exercises both composition orders. With pure
// multiplication the resale figure is identical either way; the test pins
// that so a future change to per-step rounding cannot silently diverge.
func TestPriceLineTaxOrder(t *testing.T) {
	table := rates.Builtin()
	line := testLine(10)

	after := DefaultConfig()
	after.TaxOrder = TaxAfterMarkup
	before := DefaultConfig()
	before.TaxOrder = TaxBeforeMarkup

	pricedAfter, err := PriceLine(line, table, after)
	if err != nil {
		t.Fatalf("PriceLine(after-markup): %v", err)
	}
	pricedBefore, err := PriceLine(line, table, before)
	if err != nil {
		t.Fatalf("PriceLine(before-markup): %v", err)
	}

	if !pricedAfter.UnitResale.Equal(d("8.62868")) {
		t.Errorf("after-markup UnitResale = %s, want 8.62868", pricedAfter.UnitResale)
	}
	if !pricedBefore.UnitResale.Equal(d("8.62868")) {
		t.Errorf("before-markup UnitResale = %s, want 8.62868", pricedBefore.UnitResale)
	}
	if !pricedAfter.UnitProfit.Equal(pricedBefore.UnitProfit) {
		t.Errorf("profit diverged across orders: %s vs %s", pricedAfter.UnitProfit, pricedBefore.UnitProfit)
	}
}
