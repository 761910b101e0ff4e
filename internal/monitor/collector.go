package monitor

import (
	"fmt"
	"strings"
	"time"
)

// Collector times price service calls and counts their failures
type Collector struct {
	timers map[OperationType]*Timer
	errors map[OperationType]*Counter
}

// NewCollector creates a collector for every known operation
func NewCollector() *Collector {
	c := &Collector{
		timers: make(map[OperationType]*Timer, len(Operations)),
		errors: make(map[OperationType]*Counter, len(Operations)),
	}
	for _, op := range Operations {
		c.timers[op] = NewTimer(string(op) + ".duration")
		c.errors[op] = NewCounter(string(op) + ".errors")
	}
	return c
}

// Track runs fn and records its duration and outcome. Unknown operations
// run untracked.
func (c *Collector) Track(operation OperationType, fn func() error) error {
	start := time.Now()
	err := fn()
	duration := time.Since(start)

	if timer, ok := c.timers[operation]; ok {
		timer.Record(duration)
		if err != nil {
			c.errors[operation].Inc()
		}
	}

	return err
}

// Snapshot returns the current metrics
func (c *Collector) Snapshot() Snapshot {
	snapshot := Snapshot{
		Timestamp:  time.Now(),
		Operations: make([]OperationMetrics, 0, len(Operations)),
	}

	for _, op := range Operations {
		timer := c.timers[op]
		errCount := c.errors[op].Get()
		snapshot.Operations = append(snapshot.Operations, OperationMetrics{
			Operation:    op,
			Count:        timer.Count(),
			SuccessCount: timer.Count() - errCount,
			ErrorCount:   errCount,
			TotalTime:    timer.TotalTime(),
			MinTime:      timer.MinTime(),
			MaxTime:      timer.MaxTime(),
			AvgTime:      timer.AvgTime(),
		})
	}

	return snapshot
}

// Reset clears every metric
func (c *Collector) Reset() {
	for _, op := range Operations {
		c.timers[op].Reset()
		c.errors[op].Reset()
	}
}

// Summary renders one line per operation that was called at least once
func (s Snapshot) Summary() string {
	var b strings.Builder
	for _, op := range s.Operations {
		if op.Count == 0 {
			continue
		}
		fmt.Fprintf(&b, "%s: %d requests, %d failed, avg %s (min %s, max %s)\n",
			op.Operation, op.Count, op.ErrorCount,
			op.AvgTime.Round(time.Millisecond),
			op.MinTime.Round(time.Millisecond),
			op.MaxTime.Round(time.Millisecond))
	}
	return b.String()
}
