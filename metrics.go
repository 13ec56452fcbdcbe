package fpstore

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    buildCounter    prometheus.Counter
//	    queryHistogram  prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordQuery(doc string, hits int, duration time.Duration, err error) {
//	    p.queryHistogram.Observe(duration.Seconds())
//	}
type MetricsCollector interface {
	// RecordBuild is called after each document build.
	// entries is the number of fingerprints in the document, err is nil if
	// successful.
	RecordBuild(doc string, entries int, duration time.Duration, err error)

	// RecordLoad is called once Open has loaded the registry.
	RecordLoad(documents, failed int, duration time.Duration)

	// RecordQuery is called after each similarity query.
	// hits is the number of entries at or above the cutoff.
	RecordQuery(doc string, hits int, duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordBuild(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordLoad(int, int, time.Duration)            {}
func (NoopMetricsCollector) RecordQuery(string, int, time.Duration, error) {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	BuildCount      atomic.Int64
	BuildErrors     atomic.Int64
	BuildEntries    atomic.Int64
	BuildTotalNanos atomic.Int64
	LoadCount       atomic.Int64
	LoadDocuments   atomic.Int64
	LoadFailed      atomic.Int64
	QueryCount      atomic.Int64
	QueryErrors     atomic.Int64
	QueryHits       atomic.Int64
	QueryTotalNanos atomic.Int64
}

// RecordBuild implements MetricsCollector.
func (b *BasicMetricsCollector) RecordBuild(_ string, entries int, duration time.Duration, err error) {
	b.BuildCount.Add(1)
	b.BuildTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.BuildErrors.Add(1)
		return
	}
	b.BuildEntries.Add(int64(entries))
}

// RecordLoad implements MetricsCollector.
func (b *BasicMetricsCollector) RecordLoad(documents, failed int, _ time.Duration) {
	b.LoadCount.Add(1)
	b.LoadDocuments.Add(int64(documents))
	b.LoadFailed.Add(int64(failed))
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(_ string, hits int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
		return
	}
	b.QueryHits.Add(int64(hits))
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		BuildCount:    b.BuildCount.Load(),
		BuildErrors:   b.BuildErrors.Load(),
		BuildEntries:  b.BuildEntries.Load(),
		BuildAvgNanos: avg(b.BuildTotalNanos.Load(), b.BuildCount.Load()),
		LoadCount:     b.LoadCount.Load(),
		LoadDocuments: b.LoadDocuments.Load(),
		LoadFailed:    b.LoadFailed.Load(),
		QueryCount:    b.QueryCount.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryHits:     b.QueryHits.Load(),
		QueryAvgNanos: avg(b.QueryTotalNanos.Load(), b.QueryCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	BuildCount    int64
	BuildErrors   int64
	BuildEntries  int64
	BuildAvgNanos int64
	LoadCount     int64
	LoadDocuments int64
	LoadFailed    int64
	QueryCount    int64
	QueryErrors   int64
	QueryHits     int64
	QueryAvgNanos int64
}
