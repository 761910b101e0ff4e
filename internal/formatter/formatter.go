package formatter

import (
	"fmt"
	"strconv"

	"github.com/yildizm/HomeQuote/internal/estimator"
)

// Quote is a priced listing ready for output
type Quote struct {
	Request  estimator.Request
	Estimate estimator.Estimate
	Currency string
}

// Formatter renders command results
type Formatter interface {
	FormatQuote(q *Quote) ([]byte, error)
	FormatLocations(locations []string) ([]byte, error)
}

// New returns the formatter for text, json or markdown output
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "text", "":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s (use text, json or markdown)", format)
	}
}

// Price renders a scaled price the way the form displays it
func Price(currency string, price float64) string {
	return currency + strconv.FormatFloat(price, 'f', -1, 64)
}

func formatSqft(sqft float64) string {
	return strconv.FormatFloat(sqft, 'f', -1, 64)
}
