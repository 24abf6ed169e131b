package rates

import (
	"quotecalc/internal/errors"
)

// ResolveTier maps a product and quantity to its tier range.
// Quantity must already be normalized to >= 1 by the caller (safe quantity);
// the resolver walks the ordered schedule and returns the first range that
// contains the quantity. A validated table always produces a match, but the
// walk is still checked so a malformed table surfaces as CONFIG_ERROR
// instead of a zero-cost tier.
func (t *Table) ResolveTier(kind ProductKind, quantity int) (TierRange, error) {
	if quantity < 1 {
		return TierRange{}, errors.Inputf("tier resolution requires quantity >= 1, got %d", quantity)
	}

	tiers, err := t.Tiers(kind)
	if err != nil {
		return TierRange{}, err
	}

	for _, tier := range tiers {
		if tier.Contains(quantity) {
			return tier, nil
		}
	}

	return TierRange{}, errors.Configf("no tier covers quantity %d for product %q", quantity, kind).
		WithContext("quantity", quantity).
		WithContext("product", string(kind))
}
