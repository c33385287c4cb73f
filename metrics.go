package cavegen

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    smoothHistogram  prometheus.Histogram
//	    extractHistogram prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordSmooth(iterations int, duration time.Duration) {
//	    p.smoothHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordFill is called after each grid fill.
	// err is nil if successful.
	RecordFill(duration time.Duration, err error)

	// RecordSmooth is called after each smoothing run.
	// iterations is the number of generations stepped, duration the total
	// time taken.
	RecordSmooth(iterations int, duration time.Duration)

	// RecordExtract is called after each mesh extraction.
	// faces is the number of triangles or segments produced, err is nil if
	// successful.
	RecordExtract(faces int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordFill(time.Duration, error)         {}
func (NoopMetricsCollector) RecordSmooth(int, time.Duration)         {}
func (NoopMetricsCollector) RecordExtract(int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	FillCount         atomic.Int64
	FillErrors        atomic.Int64
	SmoothCount       atomic.Int64
	SmoothIterations  atomic.Int64
	SmoothTotalNanos  atomic.Int64
	ExtractCount      atomic.Int64
	ExtractErrors     atomic.Int64
	ExtractFaces      atomic.Int64
	ExtractTotalNanos atomic.Int64
}

// RecordFill implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFill(duration time.Duration, err error) {
	b.FillCount.Add(1)
	if err != nil {
		b.FillErrors.Add(1)
	}
}

// RecordSmooth implements MetricsCollector.
func (b *BasicMetricsCollector) RecordSmooth(iterations int, duration time.Duration) {
	b.SmoothCount.Add(1)
	b.SmoothIterations.Add(int64(iterations))
	b.SmoothTotalNanos.Add(duration.Nanoseconds())
}

// RecordExtract implements MetricsCollector.
func (b *BasicMetricsCollector) RecordExtract(faces int, duration time.Duration, err error) {
	b.ExtractCount.Add(1)
	b.ExtractTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.ExtractErrors.Add(1)
	} else {
		b.ExtractFaces.Add(int64(faces))
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		FillCount:        b.FillCount.Load(),
		FillErrors:       b.FillErrors.Load(),
		SmoothCount:      b.SmoothCount.Load(),
		SmoothIterations: b.SmoothIterations.Load(),
		SmoothAvgNanos:   b.getAvgSmoothNanos(),
		ExtractCount:     b.ExtractCount.Load(),
		ExtractErrors:    b.ExtractErrors.Load(),
		ExtractFaces:     b.ExtractFaces.Load(),
		ExtractAvgNanos:  b.getAvgExtractNanos(),
	}
}

func (b *BasicMetricsCollector) getAvgSmoothNanos() int64 {
	count := b.SmoothCount.Load()
	if count == 0 {
		return 0
	}
	return b.SmoothTotalNanos.Load() / count
}

func (b *BasicMetricsCollector) getAvgExtractNanos() int64 {
	count := b.ExtractCount.Load()
	if count == 0 {
		return 0
	}
	return b.ExtractTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	FillCount        int64
	FillErrors       int64
	SmoothCount      int64
	SmoothIterations int64
	SmoothAvgNanos   int64
	ExtractCount     int64
	ExtractErrors    int64
	ExtractFaces     int64
	ExtractAvgNanos  int64
}
