package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/yildizm/HomeQuote/internal/estimator"
)

// Field identifies one input of the form
type Field int

const (
	FieldLocation Field = iota
	FieldBHK
	FieldBath
	FieldSqft
)

// Fields lists the inputs in display order
var Fields = []Field{FieldLocation, FieldBHK, FieldBath, FieldSqft}

func (f Field) String() string {
	switch f {
	case FieldLocation:
		return "location"
	case FieldBHK:
		return "bhk"
	case FieldBath:
		return "bath"
	case FieldSqft:
		return "sqft"
	default:
		return "unknown"
	}
}

// Label is the caption shown next to the input
func (f Field) Label() string {
	switch f {
	case FieldLocation:
		return "Location"
	case FieldBHK:
		return "BHK"
	case FieldBath:
		return "Bathrooms"
	case FieldSqft:
		return "Total Sqft"
	default:
		return ""
	}
}

// Numeric reports whether the field holds a number
func (f Field) Numeric() bool {
	return f != FieldLocation
}

// Input bounds carried over from the number inputs of the web form
const (
	MinBHK  = 1
	MaxBHK  = 10
	MinBath = 1
	MaxBath = 5
)

// State holds the raw text of every input until submission
type State struct {
	Location string `yaml:"location" json:"location"`
	BHK      string `yaml:"bhk" json:"bhk"`
	Bath     string `yaml:"bath" json:"bath"`
	Sqft     string `yaml:"sqft" json:"sqft"`
}

// Get returns the raw value of a field
func (s *State) Get(f Field) string {
	switch f {
	case FieldLocation:
		return s.Location
	case FieldBHK:
		return s.BHK
	case FieldBath:
		return s.Bath
	case FieldSqft:
		return s.Sqft
	default:
		return ""
	}
}

// Set replaces the raw value of a field
func (s *State) Set(f Field, value string) {
	switch f {
	case FieldLocation:
		s.Location = value
	case FieldBHK:
		s.BHK = value
	case FieldBath:
		s.Bath = value
	case FieldSqft:
		s.Sqft = value
	}
}

// ValidationError is a local input problem; no request is sent
type ValidationError struct {
	Field   Field
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// Validate checks every field is present and coerces the numeric ones
func (s *State) Validate() (estimator.Request, error) {
	for _, f := range Fields {
		if strings.TrimSpace(s.Get(f)) == "" {
			return estimator.Request{}, &ValidationError{Field: f, Message: MsgRequired}
		}
	}

	bhk, err := parseCount(FieldBHK, s.BHK, MinBHK, MaxBHK)
	if err != nil {
		return estimator.Request{}, err
	}

	bath, err := parseCount(FieldBath, s.Bath, MinBath, MaxBath)
	if err != nil {
		return estimator.Request{}, err
	}

	sqft, err := parseDecimal(s.Sqft)
	if err != nil {
		return estimator.Request{}, &ValidationError{Field: FieldSqft, Message: "Total Sqft must be a number."}
	}

	return estimator.Request{
		Location: strings.TrimSpace(s.Location),
		BHK:      bhk,
		Bath:     bath,
		Sqft:     sqft,
	}, nil
}

// parseDecimal accepts plain decimal text such as "1200" or "1450.5".
// ParseFloat alone would also take NaN, Inf and exponents.
func parseDecimal(raw string) (float64, error) {
	raw = strings.TrimSpace(raw)

	digits, dots := 0, 0
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return 0, fmt.Errorf("invalid decimal %q", raw)
		}
	}
	if digits == 0 || dots > 1 {
		return 0, fmt.Errorf("invalid decimal %q", raw)
	}

	return strconv.ParseFloat(raw, 64)
}

func parseCount(f Field, raw string, minValue, maxValue int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: f, Message: fmt.Sprintf("%s must be a whole number.", f.Label())}
	}
	if n < minValue || n > maxValue {
		return 0, &ValidationError{
			Field:   f,
			Message: fmt.Sprintf("%s must be between %d and %d.", f.Label(), minValue, maxValue),
		}
	}
	return n, nil
}
