package fpstore

import (
	"log/slog"

	"github.com/hupe1980/fpstore/blobstore"
	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/registry"
	"github.com/hupe1980/fpstore/resource"
)

type options struct {
	generator        fingerprint.Generator
	metricsCollector MetricsCollector
	logger           *Logger
	resources        *resource.Controller
	router           *blobstore.Router
	skipFailed       bool
	parallelism      int
	queryCacheSize   int
	registryOptions  []registry.Option
}

// Option configures Open.
type Option func(*options)

// WithGenerator sets the fingerprint generator used both to build documents
// and to fingerprint query structures. Required by Open.
//
// Example with an external toolkit:
//
//	db, err := fpstore.Open(ctx, specs,
//	    fpstore.WithGenerator(generator.NewExec("obabel-fp")))
func WithGenerator(gen fingerprint.Generator) Option {
	return func(o *options) {
		o.generator = gen
	}
}

// WithMetricsCollector configures a metrics collector for monitoring operations.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &fpstore.BasicMetricsCollector{}
//	db, _ := fpstore.Open(ctx, specs, fpstore.WithMetricsCollector(metrics))
//	// ... use db ...
//	stats := metrics.GetStats()
//	fmt.Printf("Queries: %d, Avg latency: %dns\n", stats.QueryCount, stats.QueryAvgNanos)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for operations.
// Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithResources bounds concurrent builds, document memory and the
// generation rate during Open.
func WithResources(rc *resource.Controller) Option {
	return func(o *options) {
		o.resources = rc
	}
}

// WithBlobRouter sets the router resolving corpus locators. The default
// router serves local paths and file:// locators; register s3:// or
// minio:// stores on a custom router to load from object storage.
func WithBlobRouter(r *blobstore.Router) Option {
	return func(o *options) {
		o.router = r
	}
}

// WithSkipFailed makes Open keep the documents that built successfully when
// others fail. Open then returns the DB together with the joined build
// errors.
func WithSkipFailed(skip bool) Option {
	return func(o *options) {
		o.skipFailed = skip
	}
}

// WithQueryParallelism splits every query scan across up to n goroutines.
func WithQueryParallelism(n int) Option {
	return func(o *options) {
		o.parallelism = n
	}
}

// WithQueryCache memoizes up to size query fingerprints, so repeated
// queries for the same structure skip generation.
func WithQueryCache(size int) Option {
	return func(o *options) {
		o.queryCacheSize = size
	}
}

// WithRegistryOptions passes options through to registry.Load, e.g.
// registry.WithLoader or registry.WithDocumentOptions.
func WithRegistryOptions(opts ...registry.Option) Option {
	return func(o *options) {
		o.registryOptions = append(o.registryOptions, opts...)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
