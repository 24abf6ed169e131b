package rates

import (
	"quotecalc/internal/errors"
)

// Validate enforces the tier schedule invariants. Run once at startup;
// a table that fails validation must never reach the pricer.
//
// Invariants per product:
//   - at least one range, first range starts at 1
//   - ranges are contiguous and non-overlapping (next.Min == prev.Max + 1)
//   - min <= max for every bounded range
//   - exactly one unbounded range, and it is last
//   - unit costs are non-negative
func (t *Table) Validate() error {
	if len(t.Products) == 0 {
		return errors.Config("rate table has no products")
	}
	if t.TaxInclusive && t.BakedInTaxPercent.IsNegative() {
		return errors.Configf("baked-in tax percent must be >= 0, got %s", t.BakedInTaxPercent)
	}

	for kind, tiers := range t.Products {
		if err := validateSchedule(kind, tiers); err != nil {
			return err
		}
	}
	return nil
}

func validateSchedule(kind ProductKind, tiers []TierRange) error {
	if len(tiers) == 0 {
		return errors.Configf("product %q has an empty tier schedule", kind)
	}
	if tiers[0].Min != 1 {
		return errors.Configf("product %q: first tier must start at 1, starts at %d", kind, tiers[0].Min)
	}

	unbounded := 0
	for i, tier := range tiers {
		if tier.UnitCost.IsNegative() {
			return errors.Configf("product %q tier %q: negative unit cost %s", kind, tier.Label, tier.UnitCost)
		}
		if tier.Unbounded() {
			unbounded++
			if i != len(tiers)-1 {
				return errors.Configf("product %q: unbounded tier %q must be last", kind, tier.Label)
			}
			continue
		}
		if tier.Min > tier.Max {
			return errors.Configf("product %q tier %q: min %d exceeds max %d", kind, tier.Label, tier.Min, tier.Max)
		}
		if i < len(tiers)-1 && tiers[i+1].Min != tier.Max+1 {
			return errors.Configf("product %q: gap or overlap between tier %q (max %d) and tier %q (min %d)",
				kind, tier.Label, tier.Max, tiers[i+1].Label, tiers[i+1].Min)
		}
	}

	if unbounded != 1 {
		return errors.Configf("product %q: schedule must have exactly one unbounded tier, has %d", kind, unbounded)
	}
	return nil
}
