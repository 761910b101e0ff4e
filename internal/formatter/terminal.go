package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/HomeQuote/internal/emoji"
	"github.com/yildizm/go-termfmt"
)

// terminalFormatter formats output as a tree for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) FormatQuote(q *Quote) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s Estimated Price: %s\n", emoji.GetEmoji("price"), Price(q.Currency, q.Estimate.Price))

	items := []termfmt.TreeItem{
		{Label: "Location", Value: q.Request.Location},
		{Label: "BHK", Value: strconv.Itoa(q.Request.BHK)},
		{Label: "Bathrooms", Value: strconv.Itoa(q.Request.Bath)},
		{Label: "Total Sqft", Value: formatSqft(q.Request.Sqft)},
		{Label: "Service Estimate", Value: strconv.FormatFloat(q.Estimate.Raw, 'f', -1, 64) + " lakh", Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts))
	b.WriteString("\n")

	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatLocations(locations []string) ([]byte, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %d locations\n", emoji.GetEmoji("location"), len(locations))
	for _, location := range locations {
		b.WriteString(location)
		b.WriteString("\n")
	}

	return []byte(b.String()), nil
}
