// Package output provides output formatting interfaces.
// Rounding to two decimal places happens here and only here; the engine
// hands over exact decimals.
package output

import (
	"io"

	"quotecalc/core/pricing"
	"quotecalc/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable table
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given result
	Render(w io.Writer, result *QuoteResult) error
}

// QuoteResult contains the complete quotation output
type QuoteResult struct {
	// Totals is the aggregated quote
	Totals pricing.QuoteTotals `json:"totals"`

	// GeneratedAt is when the quote was computed
	GeneratedAt string `json:"generated_at"`

	// ShowLines includes the per-line breakdown in rendered output
	ShowLines bool `json:"-"`
}

// New returns a formatter for the requested format
func New(format Format) (Formatter, error) {
	switch format {
	case FormatCLI:
		return &cliFormatter{}, nil
	case FormatJSON:
		return &jsonFormatter{}, nil
	default:
		return nil, errors.Inputf("unknown output format %q", format)
	}
}
