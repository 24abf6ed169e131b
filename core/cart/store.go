// Package cart - In-memory line item store
// Holds the ordered cart for a single session. Reads never mutate; every
// derived price is recomputed from current state, so there is no cached
// value to go stale. Not safe for concurrent use: the cart has exactly one
// logical reader and writer.
package cart

import (
	"math"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"quotecalc/core/pricing"
	"quotecalc/core/rates"
	"quotecalc/internal/errors"
)

// Field names a mutable line item field
type Field string

const (
	FieldQuantity Field = "quantity"
	FieldMarkup   Field = "markup"
	FieldTax      Field = "tax"
	FieldAnnual   Field = "annual"
)

// Store is the ordered collection of cart lines.
type Store struct {
	table *rates.Table
	lines []pricing.LineItem
}

// NewStore creates an empty cart bound to a rate table.
func NewStore(table *rates.Table) *Store {
	return &Store{table: table}
}

// Add appends a new line and returns it with a fresh id.
// The product must exist in the rate table; the quantity is stored exactly
// as supplied, even below 1.
func (s *Store) Add(product rates.ProductKind, quantity int, markup, tax decimal.Decimal, annual bool) (pricing.LineItem, error) {
	if !s.table.HasProduct(product) {
		return pricing.LineItem{}, errors.Inputf("product %q is not in the rate table", product)
	}
	if tax.IsNegative() {
		return pricing.LineItem{}, errors.Inputf("tax percent must be >= 0, got %s", tax)
	}

	line := pricing.LineItem{
		ID:            uuid.NewString(),
		Product:       product,
		Quantity:      quantity,
		MarkupPercent: markup,
		TaxPercent:    tax,
		Annual:        annual,
	}
	s.lines = append(s.lines, line)
	return line, nil
}

// Remove deletes the line with the given id.
func (s *Store) Remove(id string) error {
	for i, line := range s.lines {
		if line.ID == id {
			s.lines = append(s.lines[:i], s.lines[i+1:]...)
			return nil
		}
	}
	return errors.Inputf("no cart line with id %q", id)
}

// UpdateField mutates one field of an existing line. Values are coerced to
// the field's type; a value that does not coerce fails with INPUT_ERROR and
// leaves the line untouched - nothing non-numeric is ever stored.
func (s *Store) UpdateField(id string, field Field, value interface{}) error {
	idx := -1
	for i, line := range s.lines {
		if line.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return errors.Inputf("no cart line with id %q", id)
	}

	line := &s.lines[idx]
	switch field {
	case FieldQuantity:
		quantity, err := coerceInt(value)
		if err != nil {
			return err
		}
		line.Quantity = quantity
	case FieldMarkup:
		markup, err := coerceDecimal(value)
		if err != nil {
			return err
		}
		line.MarkupPercent = markup
	case FieldTax:
		tax, err := coerceDecimal(value)
		if err != nil {
			return err
		}
		if tax.IsNegative() {
			return errors.Inputf("tax percent must be >= 0, got %s", tax)
		}
		line.TaxPercent = tax
	case FieldAnnual:
		annual, err := coerceBool(value)
		if err != nil {
			return err
		}
		line.Annual = annual
	default:
		return errors.Inputf("unknown cart field %q", field)
	}
	return nil
}

// Len returns the number of lines.
func (s *Store) Len() int {
	return len(s.lines)
}

// Lines returns a copy of the current lines in insertion order.
func (s *Store) Lines() []pricing.LineItem {
	out := make([]pricing.LineItem, len(s.lines))
	copy(out, s.lines)
	return out
}

// Quote snapshots the cart into an immutable quote request.
func (s *Store) Quote(discountPercent decimal.Decimal, waiveFee bool) pricing.QuoteRequest {
	return pricing.QuoteRequest{
		Lines:           s.Lines(),
		DiscountPercent: discountPercent,
		WaiveFee:        waiveFee,
	}
}

func coerceInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return 0, errors.Inputf("not a whole number: %v", v)
		}
		return int(v), nil
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0, errors.Inputf("not a whole number: %q", v)
		}
		return n, nil
	default:
		return 0, errors.Inputf("cannot coerce %T to a quantity", value)
	}
}

func coerceDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Decimal{}, errors.Inputf("not a number: %v", v)
		}
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Decimal{}, errors.Inputf("not a number: %q", v)
		}
		return d, nil
	default:
		return decimal.Decimal{}, errors.Inputf("cannot coerce %T to a number", value)
	}
}

func coerceBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, errors.Inputf("not a boolean: %q", v)
		}
		return b, nil
	default:
		return false, errors.Inputf("cannot coerce %T to a boolean", value)
	}
}
