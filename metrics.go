package strintern

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Implementations must be safe for concurrent use when the interner is
// shared through Synced.
type MetricsCollector interface {
	// RecordIntern is called after each get-or-intern. hit is true when the
	// string was already present.
	RecordIntern(hit bool)

	// RecordGrow is called whenever the span sequence or the hash index
	// reallocates. capacity is the new capacity.
	RecordGrow(component string, capacity int)

	// RecordSnapshot is called after each snapshot save ("save") or load
	// ("load"). size is the encoded size in bytes.
	RecordSnapshot(op string, size int64, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordIntern(bool)                                  {}
func (NoopMetricsCollector) RecordGrow(string, int)                             {}
func (NoopMetricsCollector) RecordSnapshot(string, int64, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InternHits         atomic.Int64
	InternMisses       atomic.Int64
	GrowCount          atomic.Int64
	SnapshotSaves      atomic.Int64
	SnapshotLoads      atomic.Int64
	SnapshotErrors     atomic.Int64
	SnapshotBytes      atomic.Int64
	SnapshotTotalNanos atomic.Int64
}

// RecordIntern implements MetricsCollector.
func (b *BasicMetricsCollector) RecordIntern(hit bool) {
	if hit {
		b.InternHits.Add(1)
	} else {
		b.InternMisses.Add(1)
	}
}

// RecordGrow implements MetricsCollector.
func (b *BasicMetricsCollector) RecordGrow(string, int) {
	b.GrowCount.Add(1)
}

// RecordSnapshot implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSnapshot(op string, size int64, duration time.Duration, err error) {
	switch op {
	case "save":
		b.SnapshotSaves.Add(1)
	case "load":
		b.SnapshotLoads.Add(1)
	}
	b.SnapshotTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.SnapshotErrors.Add(1)
		return
	}
	b.SnapshotBytes.Add(size)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	hits, misses := b.InternHits.Load(), b.InternMisses.Load()
	return BasicMetricsStats{
		InternHits:       hits,
		InternMisses:     misses,
		HitRate:          hitRate(hits, misses),
		GrowCount:        b.GrowCount.Load(),
		SnapshotSaves:    b.SnapshotSaves.Load(),
		SnapshotLoads:    b.SnapshotLoads.Load(),
		SnapshotErrors:   b.SnapshotErrors.Load(),
		SnapshotBytes:    b.SnapshotBytes.Load(),
		SnapshotAvgNanos: b.getAvgSnapshotNanos(),
	}
}

func hitRate(hits, misses int64) float64 {
	if hits+misses == 0 {
		return 0
	}
	return float64(hits) / float64(hits+misses)
}

func (b *BasicMetricsCollector) getAvgSnapshotNanos() int64 {
	count := b.SnapshotSaves.Load() + b.SnapshotLoads.Load()
	if count == 0 {
		return 0
	}
	return b.SnapshotTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InternHits       int64
	InternMisses     int64
	HitRate          float64
	GrowCount        int64
	SnapshotSaves    int64
	SnapshotLoads    int64
	SnapshotErrors   int64
	SnapshotBytes    int64
	SnapshotAvgNanos int64
}
