package monitor

import (
	"context"

	"github.com/yildizm/HomeQuote/internal/estimator"
)

// Estimator is the price service surface being measured
type Estimator interface {
	Locations(ctx context.Context) ([]string, error)
	Estimate(ctx context.Context, r estimator.Request) (*estimator.Estimate, error)
}

// TrackedEstimator records every call of the wrapped estimator
type TrackedEstimator struct {
	next      Estimator
	collector *Collector
}

// Track wraps next so its calls are recorded in collector
func Track(next Estimator, collector *Collector) *TrackedEstimator {
	return &TrackedEstimator{next: next, collector: collector}
}

// Locations implements Estimator
func (t *TrackedEstimator) Locations(ctx context.Context) ([]string, error) {
	var locations []string
	err := t.collector.Track(OperationLocations, func() error {
		var err error
		locations, err = t.next.Locations(ctx)
		return err
	})
	return locations, err
}

// Estimate implements Estimator
func (t *TrackedEstimator) Estimate(ctx context.Context, r estimator.Request) (*estimator.Estimate, error) {
	var estimate *estimator.Estimate
	err := t.collector.Track(OperationEstimate, func() error {
		var err error
		estimate, err = t.next.Estimate(ctx, r)
		return err
	})
	return estimate, err
}
