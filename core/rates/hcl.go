package rates

import (
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/shopspring/decimal"

	"quotecalc/internal/errors"
)

// Rate table HCL schema:
//
//	tax_inclusive        = true
//	baked_in_tax_percent = "13"
//
//	product "desktop" {
//	  tier "1-25" {
//	    min       = 1
//	    max       = 25
//	    unit_cost = "6.64"
//	  }
//	  tier "26+" {
//	    min       = 26
//	    unit_cost = "6.40"
//	  }
//	}
//
// Unit costs and percentages are strings so they decode through decimal
// without a float round trip. Omitting max marks the tier unbounded.

type hclTable struct {
	TaxInclusive      *bool        `hcl:"tax_inclusive,optional"`
	BakedInTaxPercent *string      `hcl:"baked_in_tax_percent,optional"`
	Products          []hclProduct `hcl:"product,block"`
}

type hclProduct struct {
	Kind  string    `hcl:"kind,label"`
	Tiers []hclTier `hcl:"tier,block"`
}

type hclTier struct {
	Label    string `hcl:"label,label"`
	Min      int    `hcl:"min"`
	Max      *int   `hcl:"max,optional"`
	UnitCost string `hcl:"unit_cost"`
}

// LoadHCL parses and validates a rate table file.
func LoadHCL(path string) (*Table, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeConfig, "failed to parse rate table", diags)
	}

	var raw hclTable
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, errors.Wrap(errors.TypeConfig, "failed to decode rate table", diags)
	}

	table := &Table{Products: make(map[ProductKind][]TierRange, len(raw.Products))}
	if raw.TaxInclusive != nil {
		table.TaxInclusive = *raw.TaxInclusive
	}
	if raw.BakedInTaxPercent != nil {
		pct, err := decimal.NewFromString(*raw.BakedInTaxPercent)
		if err != nil {
			return nil, errors.Wrap(errors.TypeConfig, "invalid baked_in_tax_percent", err)
		}
		table.BakedInTaxPercent = pct
	}

	for _, product := range raw.Products {
		kind, err := ParseProductKind(product.Kind)
		if err != nil {
			return nil, errors.Configf("rate table references unknown product %q", product.Kind)
		}

		tiers := make([]TierRange, 0, len(product.Tiers))
		for _, tier := range product.Tiers {
			unitCost, err := decimal.NewFromString(tier.UnitCost)
			if err != nil {
				return nil, errors.Configf("product %q tier %q: invalid unit_cost %q", product.Kind, tier.Label, tier.UnitCost)
			}
			r := TierRange{
				Label:    tier.Label,
				Min:      tier.Min,
				UnitCost: unitCost,
			}
			if tier.Max != nil {
				r.Max = *tier.Max
			}
			tiers = append(tiers, r)
		}
		table.Products[kind] = tiers
	}

	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}
