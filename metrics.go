package pangraph

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement it to integrate with monitoring systems like
// Prometheus; the query surface itself stays observability-free.
type MetricsCollector interface {
	// RecordLoad is called after each load attempt.
	RecordLoad(duration time.Duration, err error)

	// RecordProject is called after each coordinate projection.
	// hit is false when the path was unknown or pos out of range.
	RecordProject(duration time.Duration, hit bool)

	// RecordSnapshot is called after each snapshot write.
	RecordSnapshot(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordLoad(time.Duration, error)     {}
func (NoopMetricsCollector) RecordProject(time.Duration, bool)   {}
func (NoopMetricsCollector) RecordSnapshot(time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external
// dependencies.
type BasicMetricsCollector struct {
	LoadCount          atomic.Int64
	LoadErrors         atomic.Int64
	LoadTotalNanos     atomic.Int64
	ProjectCount       atomic.Int64
	ProjectMisses      atomic.Int64
	ProjectTotalNanos  atomic.Int64
	SnapshotCount      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(duration time.Duration, err error) {
	b.LoadCount.Add(1)
	b.LoadTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.LoadErrors.Add(1)
	}
}

// RecordProject implements MetricsCollector.
func (b *BasicMetricsCollector) RecordProject(duration time.Duration, hit bool) {
	b.ProjectCount.Add(1)
	b.ProjectTotalNanos.Add(duration.Nanoseconds())
	if !hit {
		b.ProjectMisses.Add(1)
	}
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(duration time.Duration, err error) {
	b.SnapshotCount.Add(1)
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
	}
}
