// Package form holds the price form's state and the transitions of its
// load and submit lifecycle. It performs no I/O: callers run the requests
// and feed the outcomes back in.
package form

import (
	"github.com/yildizm/HomeQuote/internal/estimator"
)

// User-facing messages
const (
	MsgRequired     = "All fields are required."
	MsgLoadFailed   = "Failed to load locations. Please try again."
	MsgSubmitFailed = "Failed to fetch estimated price. Please try again."
)

// Phase is the submitter's position in Idle -> Validating -> Submitting -> Idle.
// Validating is synchronous inside Begin and never observable.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
)

func (p Phase) String() string {
	if p == PhaseSubmitting {
		return "submitting"
	}
	return "idle"
}

// FieldChanged is dispatched for every edit of an input
type FieldChanged struct {
	Field Field
	Value string
}

// Model is one form instance
type Model struct {
	State     State
	Locations []string

	// Estimate is only meaningful when HasEstimate is set; zero is a valid price
	Estimate    estimator.Estimate
	HasEstimate bool

	Err     string
	Loading bool

	locationsDone bool
}

// New creates an empty form
func New() *Model {
	return &Model{Locations: []string{}}
}

// Apply records an input edit
func (m *Model) Apply(c FieldChanged) {
	m.State.Set(c.Field, c.Value)
}

// Phase reports whether a submission is in flight
func (m *Model) Phase() Phase {
	if m.Loading {
		return PhaseSubmitting
	}
	return PhaseIdle
}

// CanSubmit reports whether the submit control is enabled
func (m *Model) CanSubmit() bool {
	return !m.Loading
}

// LocationsLoaded stores the loader's result. Only the first outcome is kept.
func (m *Model) LocationsLoaded(locations []string) {
	if m.locationsDone {
		return
	}
	m.locationsDone = true
	m.Locations = append([]string{}, locations...)
}

// LocationsFailed records a failed load; the list stays empty
func (m *Model) LocationsFailed() {
	if m.locationsDone {
		return
	}
	m.locationsDone = true
	m.Err = MsgLoadFailed
}

// Begin starts a submission. It clears the previous outcome, validates,
// and on success enters PhaseSubmitting and returns the request to send.
// It returns false when a submission is already in flight (nothing changes)
// or when validation fails (Err is set and the form stays idle).
func (m *Model) Begin() (estimator.Request, bool) {
	if m.Loading {
		return estimator.Request{}, false
	}

	m.Err = ""
	m.Estimate = estimator.Estimate{}
	m.HasEstimate = false

	req, err := m.State.Validate()
	if err != nil {
		m.Err = err.Error()
		return estimator.Request{}, false
	}

	m.Loading = true
	return req, true
}

// Resolve finishes the in-flight submission with either an estimate or an
// error and always returns the form to PhaseIdle.
func (m *Model) Resolve(est *estimator.Estimate, err error) {
	defer func() { m.Loading = false }()

	if err != nil || est == nil {
		m.Err = MsgSubmitFailed
		return
	}

	m.Estimate = *est
	m.HasEstimate = true
}
