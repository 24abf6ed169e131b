package rates

import (
	"github.com/shopspring/decimal"
)

// Builtin returns the default rate table shipped with the calculator.
// Listed costs are tax-exclusive (variant b); deployments with
// tax-inclusive price lists load their own table via LoadHCL.
func Builtin() *Table {
	return &Table{
		Products: map[ProductKind][]TierRange{
			Desktop: {
				{Label: "1-25", Min: 1, Max: 25, UnitCost: cost("6.64")},
				{Label: "26-50", Min: 26, Max: 50, UnitCost: cost("6.40")},
				{Label: "51-100", Min: 51, Max: 100, UnitCost: cost("6.05")},
				{Label: "101-150", Min: 101, Max: 150, UnitCost: cost("5.64")},
				{Label: "150+", Min: 151, UnitCost: cost("5.27")},
			},
			VMs: {
				{Label: "1-25", Min: 1, Max: 25, UnitCost: cost("33.90")},
				{Label: "26-50", Min: 26, Max: 50, UnitCost: cost("33.90")},
				{Label: "51-100", Min: 51, Max: 100, UnitCost: cost("33.90")},
				{Label: "101-150", Min: 101, Max: 150, UnitCost: cost("33.90")},
				{Label: "150+", Min: 151, UnitCost: cost("31.37")},
			},
			SBS: {
				{Label: "1-25", Min: 1, Max: 25, UnitCost: cost("27.17")},
				{Label: "26-50", Min: 26, Max: 50, UnitCost: cost("25.75")},
				{Label: "51-100", Min: 51, Max: 100, UnitCost: cost("23.87")},
				{Label: "101-150", Min: 101, Max: 150, UnitCost: cost("21.75")},
				{Label: "150+", Min: 151, UnitCost: cost("20.03")},
			},
			PhysicalServer: {
				{Label: "1-25", Min: 1, Max: 25, UnitCost: cost("48.84")},
				{Label: "26-50", Min: 26, Max: 50, UnitCost: cost("45.36")},
				{Label: "51-100", Min: 51, Max: 100, UnitCost: cost("40.79")},
				{Label: "101-150", Min: 101, Max: 150, UnitCost: cost("35.23")},
				{Label: "150+", Min: 151, UnitCost: cost("31.36")},
			},
			// Flat-rate cloud add-ons: same unit cost in every band, the
			// bands exist so quotes still report a tier label.
			XcelAdvanceCloud: {
				{Label: "01-10", Min: 1, Max: 10, UnitCost: cost("2.40")},
				{Label: "11-25", Min: 11, Max: 25, UnitCost: cost("2.40")},
				{Label: "26-49", Min: 26, Max: 49, UnitCost: cost("2.40")},
				{Label: "50-99", Min: 50, Max: 99, UnitCost: cost("2.40")},
				{Label: "100+", Min: 100, UnitCost: cost("2.40")},
			},
			XcelCompleteCloud: {
				{Label: "01-10", Min: 1, Max: 10, UnitCost: cost("3.30")},
				{Label: "11-25", Min: 11, Max: 25, UnitCost: cost("3.30")},
				{Label: "26-49", Min: 26, Max: 49, UnitCost: cost("3.30")},
				{Label: "50-99", Min: 50, Max: 99, UnitCost: cost("3.30")},
				{Label: "100+", Min: 100, UnitCost: cost("3.30")},
			},
		},
	}
}

func cost(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
