package formatter

import (
	"encoding/json"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// QuoteOutput is the JSON shape of a quote
type QuoteOutput struct {
	Location       string  `json:"location"`
	BHK            int     `json:"bhk"`
	Bath           int     `json:"bath"`
	Sqft           float64 `json:"sqft"`
	EstimatedPrice float64 `json:"estimated_price"`
	Price          float64 `json:"price"`
	Currency       string  `json:"currency,omitempty"`
}

// LocationsOutput is the JSON shape of the location list
type LocationsOutput struct {
	Locations []string `json:"locations"`
	Count     int      `json:"count"`
}

func (f *jsonFormatter) FormatQuote(q *Quote) ([]byte, error) {
	return json.MarshalIndent(&QuoteOutput{
		Location:       q.Request.Location,
		BHK:            q.Request.BHK,
		Bath:           q.Request.Bath,
		Sqft:           q.Request.Sqft,
		EstimatedPrice: q.Estimate.Raw,
		Price:          q.Estimate.Price,
		Currency:       q.Currency,
	}, "", "  ")
}

func (f *jsonFormatter) FormatLocations(locations []string) ([]byte, error) {
	if locations == nil {
		locations = []string{}
	}
	return json.MarshalIndent(&LocationsOutput{Locations: locations, Count: len(locations)}, "", "  ")
}
