package formatter

import (
	"fmt"
	"strings"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) FormatQuote(q *Quote) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Price Estimate\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")
	fmt.Fprintf(&b, "| Location | %s |\n", escapeCell(q.Request.Location))
	fmt.Fprintf(&b, "| BHK | %d |\n", q.Request.BHK)
	fmt.Fprintf(&b, "| Bathrooms | %d |\n", q.Request.Bath)
	fmt.Fprintf(&b, "| Total Sqft | %s |\n", formatSqft(q.Request.Sqft))
	fmt.Fprintf(&b, "\n**Estimated Price:** %s\n", Price(q.Currency, q.Estimate.Price))

	return []byte(b.String()), nil
}

func (f *markdownFormatter) FormatLocations(locations []string) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Locations\n\n")
	if len(locations) == 0 {
		b.WriteString("_No locations available._\n")
	}
	for _, location := range locations {
		fmt.Fprintf(&b, "- %s\n", location)
	}

	return []byte(b.String()), nil
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
