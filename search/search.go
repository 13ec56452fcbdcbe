package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/hupe1980/fpstore/document"
	"github.com/hupe1980/fpstore/fingerprint"
	"golang.org/x/sync/errgroup"
)

// ErrNilDocument is returned when a query is run against a nil document.
var ErrNilDocument = errors.New("search: nil document")

// Query scans every entry of doc and returns the identifiers whose Tanimoto
// score against q is >= cutoff.
//
// q must have doc.Span() words, otherwise a *fingerprint.WidthMismatchError
// is returned.
func Query(q fingerprint.Fingerprint, doc *document.Document, cutoff float32, optFns ...Option) (Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	if err := fingerprint.CheckWidth(doc.Span(), q); err != nil {
		return nil, err
	}

	opts := applyOptions(optFns)
	s := scanner{
		q:      q,
		words:  doc.Words(),
		ids:    doc.IDs(),
		span:   doc.Span(),
		cutoff: cutoff,
	}

	var rows []uint32
	n := doc.Len()
	if opts.Filter != nil {
		rows = selectRows(opts, n)
		n = len(rows)
	}

	workers := 1
	if opts.Parallelism > 1 {
		workers = min(opts.Parallelism, n/minRowsPerWorker)
	}

	var hits []match
	if workers <= 1 {
		hits = s.scan(rows, 0, n, nil)
	} else {
		hits = s.scanParallel(rows, n, workers)
	}

	res := make(Result, len(hits))
	for _, h := range hits {
		res[s.ids[h.row]] = h.score
	}
	return res, nil
}

// QueryByStructure generates the query fingerprint for structure with the
// document's kind, so widths always match, then runs Query.
func QueryByStructure(ctx context.Context, gen fingerprint.Generator, structure string, doc *document.Document, cutoff float32, optFns ...Option) (Result, error) {
	if doc == nil {
		return nil, ErrNilDocument
	}
	q, err := gen.Generate(ctx, doc.Kind(), structure)
	if err != nil {
		return nil, fmt.Errorf("generate query fingerprint for %q: %w", structure, err)
	}
	return Query(q, doc, cutoff, optFns...)
}

func selectRows(opts Options, n int) []uint32 {
	rows := make([]uint32, 0, min(int(opts.Filter.GetCardinality()), n))
	it := opts.Filter.Iterator()
	for it.HasNext() {
		row := it.Next()
		if int(row) >= n {
			break
		}
		rows = append(rows, row)
	}
	return rows
}

type match struct {
	row   int
	score float32
}

type scanner struct {
	q      fingerprint.Fingerprint
	words  []uint32
	ids    []string
	span   int
	cutoff float32
}

// scan scores positions [from, to). A position is a row index, or an index
// into rows when rows is non-nil.
func (s *scanner) scan(rows []uint32, from, to int, dst []match) []match {
	for pos := from; pos < to; pos++ {
		row := pos
		if rows != nil {
			row = int(rows[pos])
		}
		start := row * s.span
		score := fingerprint.Tanimoto(s.q, s.words[start:start+s.span])
		if score >= s.cutoff {
			dst = append(dst, match{row: row, score: score})
		}
	}
	return dst
}

// scanParallel splits [0, n) into contiguous ranges and concatenates the
// per-range matches in range order, so the merge equals a sequential scan.
func (s *scanner) scanParallel(rows []uint32, n, workers int) []match {
	parts := make([][]match, workers)
	chunk := (n + workers - 1) / workers

	var g errgroup.Group
	for w := range workers {
		from := w * chunk
		to := min(from+chunk, n)
		if from >= to {
			continue
		}
		g.Go(func() error {
			parts[w] = s.scan(rows, from, to, nil)
			return nil
		})
	}
	_ = g.Wait()

	var total int
	for _, p := range parts {
		total += len(p)
	}
	hits := make([]match, 0, total)
	for _, p := range parts {
		hits = append(hits, p...)
	}
	return hits
}
