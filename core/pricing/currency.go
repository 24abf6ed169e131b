package pricing

import (
	"github.com/shopspring/decimal"

	"quotecalc/internal/errors"
)

// RateProvider supplies the base-to-display exchange rate. The interface
// admits providers that can fail (a live-rate lookup would surface
// CONVERSION_ERROR); the fixed-rate provider used today never does.
type RateProvider interface {
	Rate() (decimal.Decimal, error)
}

// FixedRate is a static exchange rate.
type FixedRate struct {
	rate decimal.Decimal
}

// NewFixedRate creates a fixed-rate provider
func NewFixedRate(rate decimal.Decimal) FixedRate {
	return FixedRate{rate: rate}
}

// Rate returns the configured rate; it cannot fail
func (f FixedRate) Rate() (decimal.Decimal, error) {
	return f.rate, nil
}

// Converter converts base-currency amounts to the display currency.
// Conversion is exact multiplication; no rounding happens here, so
// repeated conversions never accumulate rounding error and
// ToDisplay(a) + ToDisplay(b) == ToDisplay(a+b) holds exactly.
type Converter struct {
	provider RateProvider
}

// NewConverter creates a converter backed by the given rate provider
func NewConverter(provider RateProvider) *Converter {
	return &Converter{provider: provider}
}

// ToDisplay converts a base-currency amount to the display currency
func (c *Converter) ToDisplay(amount decimal.Decimal) (decimal.Decimal, error) {
	rate, err := c.provider.Rate()
	if err != nil {
		return decimal.Decimal{}, errors.Conversion("exchange rate unavailable", err)
	}
	return amount.Mul(rate), nil
}
