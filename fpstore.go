package fpstore

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/fpstore/document"
	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/generator"
	"github.com/hupe1980/fpstore/registry"
	"github.com/hupe1980/fpstore/search"
)

// DB answers similarity queries against a loaded document registry.
// It is safe for concurrent use.
type DB struct {
	reg         *registry.Registry
	gen         fingerprint.Generator
	logger      *Logger
	metrics     MetricsCollector
	parallelism int
}

// Open loads every spec into a registry and returns a DB over it.
//
// Without WithSkipFailed any failing document fails Open. With it, Open
// returns the DB holding the documents that did load, together with the
// joined errors of those that did not.
func Open(ctx context.Context, specs []registry.Spec, optFns ...Option) (*DB, error) {
	o := applyOptions(optFns)
	if o.generator == nil {
		return nil, ErrNoGenerator
	}

	regOpts := []registry.Option{
		registry.WithLogger(o.logger.Logger),
		registry.WithResources(o.resources),
		registry.WithRouter(o.router),
		registry.WithSkipFailed(o.skipFailed),
		registry.WithBuildHook(func(name string, entries int, elapsed time.Duration, err error) {
			o.metricsCollector.RecordBuild(name, entries, elapsed, err)
		}),
	}
	regOpts = append(regOpts, o.registryOptions...)

	start := time.Now()
	reg, err := registry.Load(ctx, o.generator, specs, regOpts...)
	elapsed := time.Since(start)

	documents := 0
	if reg != nil {
		documents = reg.Len()
	}
	failed := countFailed(specs, reg)
	o.metricsCollector.RecordLoad(documents, failed, elapsed)
	o.logger.LogLoad(ctx, documents, failed, elapsed, err)

	if reg == nil {
		return nil, err
	}
	return newDB(reg, o), err
}

// New returns a DB over an already loaded registry. gen fingerprints query
// structures.
func New(reg *registry.Registry, gen fingerprint.Generator, optFns ...Option) *DB {
	o := applyOptions(optFns)
	o.generator = gen
	return newDB(reg, o)
}

func newDB(reg *registry.Registry, o options) *DB {
	gen := o.generator
	if o.queryCacheSize > 0 && gen != nil {
		gen = generator.NewCached(gen, o.queryCacheSize)
	}
	return &DB{
		reg:         reg,
		gen:         gen,
		logger:      o.logger,
		metrics:     o.metricsCollector,
		parallelism: o.parallelism,
	}
}

// countFailed counts distinct spec names missing from reg.
func countFailed(specs []registry.Spec, reg *registry.Registry) int {
	seen := make(map[string]bool, len(specs))
	failed := 0
	for _, s := range specs {
		if seen[s.Name] {
			continue
		}
		seen[s.Name] = true
		if reg == nil {
			failed++
			continue
		}
		if _, ok := reg.Get(s.Name); !ok {
			failed++
		}
	}
	return failed
}

// Query fingerprints structure with the kind of the named document and
// returns every entry scoring at least cutoff.
//
// An unknown document name yields an empty result and a nil error.
func (db *DB) Query(ctx context.Context, docName, structure string, cutoff float32) (search.Result, error) {
	doc, ok := db.reg.Get(docName)
	if !ok {
		return search.Result{}, nil
	}
	if db.gen == nil {
		return nil, ErrNoGenerator
	}

	start := time.Now()
	res, err := search.QueryByStructure(ctx, db.gen, structure, doc, cutoff, db.searchOptions()...)
	db.record(ctx, docName, cutoff, res, time.Since(start), err)
	return res, err
}

// QueryFingerprint is like Query for a precomputed fingerprint, which must
// match the document's width.
func (db *DB) QueryFingerprint(ctx context.Context, docName string, fp fingerprint.Fingerprint, cutoff float32) (search.Result, error) {
	doc, ok := db.reg.Get(docName)
	if !ok {
		return search.Result{}, nil
	}

	start := time.Now()
	res, err := search.Query(fp, doc, cutoff, db.searchOptions()...)
	db.record(ctx, docName, cutoff, res, time.Since(start), err)
	return res, err
}

func (db *DB) searchOptions(extra ...search.Option) []search.Option {
	opts := make([]search.Option, 0, len(extra)+1)
	if db.parallelism > 1 {
		opts = append(opts, search.WithParallelism(db.parallelism))
	}
	return append(opts, extra...)
}

func (db *DB) record(ctx context.Context, doc string, cutoff float32, res search.Result, elapsed time.Duration, err error) {
	db.metrics.RecordQuery(doc, len(res), elapsed, err)
	db.logger.LogQuery(ctx, doc, cutoff, len(res), err)
}

// Document returns the named document, or an error wrapping
// ErrDocumentNotFound.
func (db *DB) Document(name string) (*document.Document, error) {
	doc, ok := db.reg.Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrDocumentNotFound, name)
	}
	return doc, nil
}

// Names returns the loaded document names.
func (db *DB) Names() []string {
	return db.reg.Names()
}

// Describe renders the document table of the registry.
func (db *DB) Describe() string {
	return db.reg.Describe()
}

// Registry returns the underlying registry.
func (db *DB) Registry() *registry.Registry {
	return db.reg
}

// Close releases the resources reserved for the loaded documents.
func (db *DB) Close() error {
	if db == nil || db.reg == nil {
		return nil
	}
	return db.reg.Close()
}
