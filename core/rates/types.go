// Package rates - Static rate table and tier resolution
// The table is loaded once at startup, validated, and never mutated.
package rates

import (
	"github.com/shopspring/decimal"

	"quotecalc/internal/errors"
)

// Family groups products that share a tier schedule
type Family string

const (
	// FamilySPX covers the tiered backup/recovery licenses
	FamilySPX Family = "spx"

	// FamilyESET covers the flat-rate cloud security add-ons
	FamilyESET Family = "eset"
)

// ProductKind identifies a sellable product
type ProductKind string

const (
	Desktop           ProductKind = "desktop"
	VMs               ProductKind = "vms"
	SBS               ProductKind = "sbs"
	PhysicalServer    ProductKind = "physical-server"
	XcelAdvanceCloud  ProductKind = "xcel-advance-cloud"
	XcelCompleteCloud ProductKind = "xcel-complete-cloud"
)

// String returns the string representation
func (k ProductKind) String() string {
	return string(k)
}

// Family returns the product family
func (k ProductKind) Family() Family {
	switch k {
	case XcelAdvanceCloud, XcelCompleteCloud:
		return FamilyESET
	default:
		return FamilySPX
	}
}

// Kinds returns all known product kinds in display order
func Kinds() []ProductKind {
	return []ProductKind{
		Desktop,
		VMs,
		SBS,
		PhysicalServer,
		XcelAdvanceCloud,
		XcelCompleteCloud,
	}
}

// ParseProductKind parses a product kind from its string form
func ParseProductKind(s string) (ProductKind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", errors.Inputf("unknown product kind: %q", s)
}

// TierRange is one quantity band of a product's tier schedule.
// Max == 0 means the range is unbounded above.
type TierRange struct {
	// Label is the human-readable tier name (e.g. "26-50", "150+")
	Label string `json:"label"`

	// Min is the lowest quantity in the range (inclusive, >= 1)
	Min int `json:"min"`

	// Max is the highest quantity in the range (inclusive); 0 = unbounded
	Max int `json:"max,omitempty"`

	// UnitCost is the listed per-unit cost inside this range
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// Unbounded reports whether the range is open-ended
func (r TierRange) Unbounded() bool {
	return r.Max == 0
}

// Contains reports whether quantity falls inside the range
func (r TierRange) Contains(quantity int) bool {
	if quantity < r.Min {
		return false
	}
	return r.Unbounded() || quantity <= r.Max
}

// Table maps each product to its ordered tier schedule.
// Immutable after validation; lookups never mutate it.
type Table struct {
	// Products holds the ordered tier ranges per product
	Products map[ProductKind][]TierRange `json:"products"`

	// TaxInclusive marks tables whose listed costs carry a baked-in tax
	// that must be stripped before a per-line tax rate is reapplied
	TaxInclusive bool `json:"tax_inclusive"`

	// BakedInTaxPercent is the tax rate embedded in listed costs when
	// TaxInclusive is set. A deployment constant on the 0-100 scale; it
	// does NOT track per-line tax rates.
	BakedInTaxPercent decimal.Decimal `json:"baked_in_tax_percent"`
}

// HasProduct reports whether the table prices the given product
func (t *Table) HasProduct(kind ProductKind) bool {
	_, ok := t.Products[kind]
	return ok
}

// Tiers returns the ordered tier schedule for a product
func (t *Table) Tiers(kind ProductKind) ([]TierRange, error) {
	tiers, ok := t.Products[kind]
	if !ok {
		return nil, errors.Configf("no tier schedule for product %q", kind)
	}
	return tiers, nil
}

// BasePreTax derives the tax-exclusive base cost from a listed unit cost.
// For tax-inclusive tables: listed / (1 + bakedInTax/100).
func (t *Table) BasePreTax(listed decimal.Decimal) decimal.Decimal {
	if !t.TaxInclusive {
		return listed
	}
	divisor := decimal.NewFromInt(1).Add(t.BakedInTaxPercent.Div(decimal.NewFromInt(100)))
	return listed.Div(divisor)
}
