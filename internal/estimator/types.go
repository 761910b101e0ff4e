package estimator

import (
	"net/url"
	"strconv"
)

// PriceScale converts the service's price unit (one lakh) into currency units
const PriceScale = 100000

// Request carries one listing to be priced
type Request struct {
	Location string  `json:"location" yaml:"location"`
	BHK      int     `json:"bhk" yaml:"bhk"`
	Bath     int     `json:"bath" yaml:"bath"`
	Sqft     float64 `json:"sqft" yaml:"sqft"`
}

// Values encodes the request with the field names the price service expects
func (r Request) Values() url.Values {
	v := url.Values{}
	v.Set("location", r.Location)
	v.Set("bhk", strconv.Itoa(r.BHK))
	v.Set("bath", strconv.Itoa(r.Bath))
	v.Set("sqft", strconv.FormatFloat(r.Sqft, 'f', -1, 64))
	return v
}

// Estimate is a priced listing
type Estimate struct {
	// Raw is the value reported by the service, in units of PriceScale
	Raw float64 `json:"estimated_price"`

	// Price is Raw * PriceScale
	Price float64 `json:"price"`
}

// LocationsResponse is the body of the locations endpoint
type LocationsResponse struct {
	Locations []string `json:"locations"`
}

// EstimateResponse is the body of the estimate endpoint. A pointer
// distinguishes a missing or null price from a legitimate zero.
type EstimateResponse struct {
	EstimatedPrice *float64 `json:"estimated_price"`
}
