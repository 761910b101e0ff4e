package form

import (
	"errors"
	"testing"

	"github.com/yildizm/HomeQuote/internal/estimator"
)

func filledForm() *Model {
	m := New()
	m.Apply(FieldChanged{Field: FieldLocation, Value: "Whitefield"})
	m.Apply(FieldChanged{Field: FieldBHK, Value: "2"})
	m.Apply(FieldChanged{Field: FieldBath, Value: "2"})
	m.Apply(FieldChanged{Field: FieldSqft, Value: "1200"})
	return m
}

func TestNew(t *testing.T) {
	m := New()

	if m.State != (State{}) {
		t.Errorf("Expected empty state, got %+v", m.State)
	}
	if m.Locations == nil || len(m.Locations) != 0 {
		t.Errorf("Expected empty location list, got %#v", m.Locations)
	}
	if m.HasEstimate || m.Err != "" || m.Loading {
		t.Error("Expected no result, no error and not loading")
	}
	if m.Phase() != PhaseIdle {
		t.Errorf("Expected idle phase, got %s", m.Phase())
	}
}

func TestBegin_RequiresAllFields(t *testing.T) {
	for _, missing := range Fields {
		t.Run(missing.String(), func(t *testing.T) {
			m := filledForm()
			m.Apply(FieldChanged{Field: missing, Value: ""})

			_, ok := m.Begin()
			if ok {
				t.Fatal("Expected Begin to refuse an incomplete form")
			}
			if m.Err != MsgRequired {
				t.Errorf("Expected %q, got %q", MsgRequired, m.Err)
			}
			if m.Loading {
				t.Error("Expected loading to stay false after a validation failure")
			}
		})
	}
}

func TestBegin_RangeAndFormat(t *testing.T) {
	tests := []struct {
		name  string
		field Field
		value string
		want  string
	}{
		{name: "bhk too low", field: FieldBHK, value: "0", want: "BHK must be between 1 and 10."},
		{name: "bhk too high", field: FieldBHK, value: "11", want: "BHK must be between 1 and 10."},
		{name: "bath too high", field: FieldBath, value: "6", want: "Bathrooms must be between 1 and 5."},
		{name: "bhk not a number", field: FieldBHK, value: "two", want: "BHK must be a whole number."},
		{name: "sqft not a number", field: FieldSqft, value: "big", want: "Total Sqft must be a number."},
		{name: "sqft NaN", field: FieldSqft, value: "NaN", want: "Total Sqft must be a number."},
		{name: "sqft Inf", field: FieldSqft, value: "Inf", want: "Total Sqft must be a number."},
		{name: "sqft signed Inf", field: FieldSqft, value: "+Inf", want: "Total Sqft must be a number."},
		{name: "sqft exponent", field: FieldSqft, value: "1e3", want: "Total Sqft must be a number."},
		{name: "sqft negative", field: FieldSqft, value: "-1200", want: "Total Sqft must be a number."},
		{name: "sqft two points", field: FieldSqft, value: "12.5.0", want: "Total Sqft must be a number."},
		{name: "sqft lone point", field: FieldSqft, value: ".", want: "Total Sqft must be a number."},
		{name: "blank location", field: FieldLocation, value: "   ", want: MsgRequired},
		{name: "blank bhk", field: FieldBHK, value: " ", want: MsgRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := filledForm()
			m.Apply(FieldChanged{Field: tt.field, Value: tt.value})

			if _, ok := m.Begin(); ok {
				t.Fatal("Expected Begin to fail")
			}
			if m.Err != tt.want {
				t.Errorf("Expected %q, got %q", tt.want, m.Err)
			}
		})
	}
}

func TestBegin_DecimalSqft(t *testing.T) {
	for _, value := range []string{"1450.5", " 1200 ", "1200.", ".5"} {
		t.Run(value, func(t *testing.T) {
			m := filledForm()
			m.Apply(FieldChanged{Field: FieldSqft, Value: value})

			if _, ok := m.Begin(); !ok {
				t.Errorf("Expected %q to be accepted, err=%q", value, m.Err)
			}
		})
	}
}

func TestBegin_TrimsLocation(t *testing.T) {
	m := filledForm()
	m.Apply(FieldChanged{Field: FieldLocation, Value: "  Whitefield "})

	req, ok := m.Begin()
	if !ok {
		t.Fatalf("Expected Begin to succeed, err=%q", m.Err)
	}
	if req.Location != "Whitefield" {
		t.Errorf("Expected trimmed location, got %q", req.Location)
	}
}

func TestBegin_Valid(t *testing.T) {
	m := filledForm()

	req, ok := m.Begin()
	if !ok {
		t.Fatalf("Expected Begin to succeed, err=%q", m.Err)
	}

	want := estimator.Request{Location: "Whitefield", BHK: 2, Bath: 2, Sqft: 1200}
	if req != want {
		t.Errorf("Expected %+v, got %+v", want, req)
	}
	if !m.Loading || m.Phase() != PhaseSubmitting {
		t.Error("Expected form to be submitting")
	}
	if m.CanSubmit() {
		t.Error("Expected submit to be disabled while loading")
	}
}

func TestBegin_IgnoredWhileLoading(t *testing.T) {
	m := filledForm()
	if _, ok := m.Begin(); !ok {
		t.Fatal("Expected first Begin to succeed")
	}

	if _, ok := m.Begin(); ok {
		t.Error("Expected second Begin to be refused while loading")
	}
	if !m.Loading {
		t.Error("Expected the first submission to still be in flight")
	}
}

func TestResolve_Success(t *testing.T) {
	m := filledForm()
	m.Begin()

	m.Resolve(&estimator.Estimate{Raw: 85.5, Price: 85.5 * estimator.PriceScale}, nil)

	if !m.HasEstimate || m.Estimate.Price != 8550000 {
		t.Errorf("Expected estimate 8550000, got %+v (has=%v)", m.Estimate, m.HasEstimate)
	}
	if m.Err != "" {
		t.Errorf("Expected no error, got %q", m.Err)
	}
	if m.Loading {
		t.Error("Expected loading to be cleared")
	}
}

func TestResolve_ZeroEstimateIsShown(t *testing.T) {
	m := filledForm()
	m.Begin()
	m.Resolve(&estimator.Estimate{}, nil)

	if !m.HasEstimate {
		t.Error("Expected a zero estimate to count as a result")
	}
}

func TestResolve_Failure(t *testing.T) {
	m := filledForm()
	m.Begin()

	m.Resolve(nil, errors.New("status 500"))

	if m.Err != MsgSubmitFailed {
		t.Errorf("Expected %q, got %q", MsgSubmitFailed, m.Err)
	}
	if m.HasEstimate {
		t.Error("Expected no estimate after failure")
	}
	if m.Loading {
		t.Error("Expected loading to be cleared after failure")
	}
}

func TestResubmitClearsPreviousOutcome(t *testing.T) {
	m := filledForm()

	m.Begin()
	m.Resolve(nil, errors.New("network"))
	if m.Err == "" {
		t.Fatal("Expected first attempt to fail")
	}

	if _, ok := m.Begin(); !ok {
		t.Fatal("Expected second Begin to succeed")
	}
	if m.Err != "" || m.HasEstimate {
		t.Errorf("Expected outcome cleared at start of second attempt, err=%q has=%v", m.Err, m.HasEstimate)
	}

	m.Resolve(&estimator.Estimate{Raw: 40, Price: 4000000}, nil)
	first := m.Estimate

	m.Begin()
	m.Resolve(&estimator.Estimate{Raw: 40, Price: 4000000}, nil)
	if m.Estimate != first {
		t.Errorf("Expected identical inputs to give identical results, got %+v and %+v", first, m.Estimate)
	}
}

func TestLocations(t *testing.T) {
	m := New()
	m.LocationsLoaded([]string{"Whitefield", "Indiranagar"})

	if len(m.Locations) != 2 || m.Locations[0] != "Whitefield" || m.Locations[1] != "Indiranagar" {
		t.Errorf("Expected locations in order, got %v", m.Locations)
	}

	m.LocationsLoaded([]string{"Other"})
	if len(m.Locations) != 2 {
		t.Error("Expected the location list to be immutable once populated")
	}
}

func TestLocationsNil(t *testing.T) {
	m := New()
	m.LocationsLoaded(nil)

	if m.Locations == nil {
		t.Error("Expected nil list to become empty")
	}
	if m.Err != "" {
		t.Errorf("Expected no error, got %q", m.Err)
	}
}

func TestLocationsFailed(t *testing.T) {
	m := New()
	m.LocationsFailed()

	if m.Err != MsgLoadFailed {
		t.Errorf("Expected %q, got %q", MsgLoadFailed, m.Err)
	}
	if len(m.Locations) != 0 {
		t.Errorf("Expected no locations, got %v", m.Locations)
	}

	// the load error is replaced by the next submission's outcome
	m.State = State{Location: "Whitefield", BHK: "2", Bath: "2"}
	m.Begin()
	if m.Err != MsgRequired {
		t.Errorf("Expected %q, got %q", MsgRequired, m.Err)
	}
}

func TestValidationErrorField(t *testing.T) {
	s := State{Location: "Whitefield", BHK: "2", Bath: "", Sqft: "900"}

	_, err := s.Validate()
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("Expected ValidationError, got %v", err)
	}
	if verr.Field != FieldBath {
		t.Errorf("Expected bath to be reported, got %s", verr.Field)
	}
}
