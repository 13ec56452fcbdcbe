package registry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/fpstore/document"
	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/generator"
	"github.com/hupe1980/fpstore/resource"
	"golang.org/x/sync/errgroup"
)

// Registry maps document names to immutable documents.
type Registry struct {
	docs  map[string]*document.Document
	names []string

	rc        *resource.Controller
	reserved  int64
	closeOnce sync.Once
}

// New returns a registry holding docs, named in sorted order.
func New(docs map[string]*document.Document) *Registry {
	r := &Registry{docs: make(map[string]*document.Document, len(docs))}
	for name, doc := range docs {
		if doc == nil {
			continue
		}
		r.docs[name] = doc
		r.names = append(r.names, name)
	}
	slices.Sort(r.names)
	return r
}

// Get returns the document registered under name.
func (r *Registry) Get(name string) (*document.Document, bool) {
	doc, ok := r.docs[name]
	return doc, ok
}

// Names returns the document names in spec order.
func (r *Registry) Names() []string {
	return slices.Clone(r.names)
}

// Len returns the number of documents.
func (r *Registry) Len() int {
	return len(r.docs)
}

// Describe renders a table with one row per document:
//
//	Doc		Entries		FP Type
//	==================================================
//	chembl		2		OpenBabelECFP4/2048
func (r *Registry) Describe() string {
	var b strings.Builder
	b.WriteString("Doc\t\tEntries\t\tFP Type\n")
	b.WriteString(strings.Repeat("=", 50))
	for _, name := range r.names {
		b.WriteString("\n")
		b.WriteString(name)
		b.WriteString("\t\t")
		b.WriteString(r.docs[name].Describe())
	}
	return b.String()
}

// Close returns the document memory reserved by Load to the resource
// controller. Documents stay readable.
func (r *Registry) Close() error {
	r.closeOnce.Do(func() {
		r.rc.ReleaseMemory(r.reserved)
	})
	return nil
}

type buildResult struct {
	doc *document.Document
	err error
}

// Load validates specs, builds all documents concurrently and returns the
// registry.
//
// Invalid specs fail with *ConfigError before any corpus is read. By default
// any failed build fails the whole load and every build error is joined into
// the returned error. With WithSkipFailed the failed documents are omitted
// and the registry is returned together with the joined error.
//
// When several specs share a name the last one wins.
func Load(ctx context.Context, gen fingerprint.Generator, specs []Spec, optFns ...Option) (*Registry, error) {
	if gen == nil {
		return nil, ErrNilGenerator
	}
	opts := applyOptions(optFns)

	plan := make([]resolved, len(specs))
	for i, s := range specs {
		r, err := s.resolve(i)
		if err != nil {
			return nil, err
		}
		plan[i] = r
	}

	// Only the last spec of each name is published, so earlier duplicates
	// are not built at all.
	last := make(map[string]int, len(plan))
	for i, p := range plan {
		last[p.name] = i
	}

	if opts.Resources != nil && opts.Resources.Config().GenerationsPerSecond > 0 {
		gen = generator.NewRateLimited(gen, opts.Resources)
	}

	results := make([]buildResult, len(plan))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range plan {
		if last[p.name] != i {
			opts.Logger.Debug("document spec superseded", slog.String("doc", p.name), slog.Int("spec", i))
			continue
		}
		g.Go(func() error {
			doc, err := buildOne(gctx, gen, p, opts)
			results[i] = buildResult{doc: doc, err: err}
			if err != nil && !opts.SkipFailed {
				return err
			}
			return nil
		})
	}
	_ = g.Wait()

	reg := &Registry{
		docs: make(map[string]*document.Document, len(last)),
		rc:   opts.Resources,
	}

	var errs []error
	var failed bool
	for i, res := range results {
		if res.doc != nil {
			reg.docs[plan[i].name] = res.doc
			reg.names = append(reg.names, plan[i].name)
			reg.reserved += res.doc.WordBytes()
			continue
		}
		if res.err == nil {
			continue
		}
		failed = true
		// Builds canceled because a sibling failed add nothing.
		if errors.Is(res.err, context.Canceled) && ctx.Err() == nil && !opts.SkipFailed {
			continue
		}
		errs = append(errs, res.err)
	}

	if failed && !opts.SkipFailed {
		_ = reg.Close()
		if err := ctx.Err(); err != nil && len(errs) == 0 {
			return nil, err
		}
		return nil, errors.Join(errs...)
	}

	opts.Logger.Info("documents loaded", slog.Int("documents", reg.Len()), slog.Int("failed", len(errs)))
	return reg, errors.Join(errs...)
}

func buildOne(ctx context.Context, gen fingerprint.Generator, p resolved, opts Options) (*document.Document, error) {
	start := time.Now()
	logger := opts.Logger.With(slog.String("doc", p.name))

	doc, err := build(ctx, gen, p, opts, logger)
	entries := 0
	if doc != nil {
		entries = doc.Len()
	}
	if opts.OnBuild != nil {
		opts.OnBuild(p.name, entries, time.Since(start), err)
	}
	if err != nil {
		logger.Error("document build failed", slog.Any("error", err))
		return nil, &LoadError{Name: p.name, Err: err}
	}

	logger.Info("document built",
		slog.Int("entries", doc.Len()),
		slog.Int("skipped", doc.Skipped()),
		slog.String("kind", p.kind.String()),
		slog.Duration("elapsed", time.Since(start)),
	)
	return doc, nil
}

func build(ctx context.Context, gen fingerprint.Generator, p resolved, opts Options, logger *slog.Logger) (*document.Document, error) {
	loader, ok := opts.Loaders[p.source]
	if !ok || loader == nil {
		return nil, &UnsupportedSourceError{Name: p.name, Source: p.source}
	}

	if err := opts.Resources.AcquireBuild(ctx); err != nil {
		return nil, err
	}
	defer opts.Resources.ReleaseBuild()

	logger.Debug("building document", slog.String("source", p.source.String()), slog.String("locator", p.ref.Locator))

	docOpts := append([]document.Option{document.WithProgress(func(done int) {
		logger.Debug("build progress", slog.Int("done", done))
	})}, opts.DocOptions...)
	doc, err := document.BuildFrom(ctx, gen, p.kind, loader.Load(ctx, p.ref), docOpts...)
	if err != nil {
		return nil, err
	}

	if err := opts.Resources.ReserveMemory(doc.WordBytes()); err != nil {
		return nil, fmt.Errorf("%d entries: %w", doc.Len(), err)
	}
	return doc, nil
}
