package fpstore

import (
	"context"
	"errors"
	"iter"
	"time"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/search"
)

var (
	// ErrNoQuery is returned when a search has neither a structure nor a
	// fingerprint.
	ErrNoQuery = errors.New("search needs a structure or a fingerprint")

	// ErrNoHits is returned by First when nothing reaches the cutoff.
	ErrNoHits = errors.New("no hits")
)

// Search creates a new fluent search builder for the named document.
//
// Example:
//
//	hits, err := db.Search("chembl").
//	    Structure("c1ccccc1O").
//	    Cutoff(0.6).
//	    Top(10).
//	    Execute(ctx)
//
//	// Or with streaming:
//	for hit, err := range db.Search("chembl").Structure(smiles).Stream(ctx) {
//	    if err != nil { break }
//	    process(hit)
//	}
func (db *DB) Search(docName string) *SearchBuilder {
	return &SearchBuilder{
		db:      db,
		docName: docName,
		cutoff:  0.7,
		top:     -1,
	}
}

// SearchBuilder is a fluent builder for constructing similarity queries.
type SearchBuilder struct {
	db        *DB
	docName   string
	structure string
	fp        fingerprint.Fingerprint
	cutoff    float32
	top       int

	filter      *roaring.Bitmap
	parallelism int
}

// Structure sets the query structure, fingerprinted with the document's kind.
func (sb *SearchBuilder) Structure(structure string) *SearchBuilder {
	sb.structure = structure
	sb.fp = nil
	return sb
}

// Fingerprint sets a precomputed query fingerprint.
func (sb *SearchBuilder) Fingerprint(fp fingerprint.Fingerprint) *SearchBuilder {
	sb.fp = fp
	sb.structure = ""
	return sb
}

// Cutoff sets the inclusive minimum Tanimoto score. Default 0.7.
func (sb *SearchBuilder) Cutoff(cutoff float32) *SearchBuilder {
	sb.cutoff = cutoff
	return sb
}

// Top limits the result to the k best hits. Negative means unlimited.
func (sb *SearchBuilder) Top(k int) *SearchBuilder {
	sb.top = k
	return sb
}

// Rows restricts the scan to the given document row indexes.
func (sb *SearchBuilder) Rows(rows *roaring.Bitmap) *SearchBuilder {
	sb.filter = rows
	return sb
}

// Parallelism overrides the DB's scan parallelism for this query.
func (sb *SearchBuilder) Parallelism(n int) *SearchBuilder {
	sb.parallelism = n
	return sb
}

// Result runs the search and returns the unordered score map.
func (sb *SearchBuilder) Result(ctx context.Context) (search.Result, error) {
	doc, ok := sb.db.reg.Get(sb.docName)
	if !ok {
		return search.Result{}, nil
	}

	var opts []search.Option
	if sb.filter != nil {
		opts = append(opts, search.WithFilter(sb.filter))
	}
	if sb.parallelism > 0 {
		opts = append(opts, search.WithParallelism(sb.parallelism))
	}
	opts = sb.db.searchOptions(opts...)

	start := time.Now()
	var (
		res search.Result
		err error
	)
	switch {
	case sb.fp != nil:
		res, err = search.Query(sb.fp, doc, sb.cutoff, opts...)
	case sb.structure != "":
		if sb.db.gen == nil {
			return nil, ErrNoGenerator
		}
		res, err = search.QueryByStructure(ctx, sb.db.gen, sb.structure, doc, sb.cutoff, opts...)
	default:
		return nil, ErrNoQuery
	}
	sb.db.record(ctx, sb.docName, sb.cutoff, res, time.Since(start), err)
	return res, err
}

// Execute runs the search and returns the hits ordered by descending score.
func (sb *SearchBuilder) Execute(ctx context.Context) ([]search.Hit, error) {
	res, err := sb.Result(ctx)
	if err != nil {
		return nil, err
	}
	return res.Top(sb.top), nil
}

// MustExecute runs the search, panicking on error.
// Use this only in tests or when you're certain the query is valid.
func (sb *SearchBuilder) MustExecute(ctx context.Context) []search.Hit {
	hits, err := sb.Execute(ctx)
	if err != nil {
		panic(err)
	}
	return hits
}

// Stream returns an iterator over the ordered hits.
// The iterator supports early termination by breaking from the loop.
func (sb *SearchBuilder) Stream(ctx context.Context) iter.Seq2[search.Hit, error] {
	return func(yield func(search.Hit, error) bool) {
		hits, err := sb.Execute(ctx)
		if err != nil {
			yield(search.Hit{}, err)
			return
		}
		for _, h := range hits {
			if !yield(h, nil) {
				return
			}
		}
	}
}

// First returns only the best hit, or ErrNoHits.
func (sb *SearchBuilder) First(ctx context.Context) (search.Hit, error) {
	sb.top = 1
	hits, err := sb.Execute(ctx)
	if err != nil {
		return search.Hit{}, err
	}
	if len(hits) == 0 {
		return search.Hit{}, ErrNoHits
	}
	return hits[0], nil
}

// Count executes the search and returns the number of hits.
func (sb *SearchBuilder) Count(ctx context.Context) (int, error) {
	res, err := sb.Result(ctx)
	if err != nil {
		return 0, err
	}
	return len(res), nil
}

// Exists checks if at least one entry reaches the cutoff.
func (sb *SearchBuilder) Exists(ctx context.Context) (bool, error) {
	n, err := sb.Count(ctx)
	return n > 0, err
}
