package document

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/source"
)

// Build generates one fingerprint per structure and packs them in input
// order. structures[i] is identified by ids[i]; duplicates are kept.
//
// Build fails with ErrLengthMismatch before any generation when the two
// slices differ in length, and with a *GenerationError when the generator
// fails or returns a fingerprint of the wrong width (unless WithSkipInvalid).
func Build(ctx context.Context, gen fingerprint.Generator, kind fingerprint.Kind, structures, ids []string, optFns ...Option) (*Document, error) {
	if len(structures) != len(ids) {
		return nil, fmt.Errorf("%w: %d structures, %d identifiers", ErrLengthMismatch, len(structures), len(ids))
	}

	return BuildFrom(ctx, gen, kind, func(yield func(source.Pair, error) bool) {
		for i := range structures {
			if !yield(source.Pair{ID: ids[i], Structure: structures[i]}, nil) {
				return
			}
		}
	}, optFns...)
}

// BuildFrom is like Build but consumes (identifier, structure) pairs from a
// corpus loader, preserving the loader's order. An error yielded by pairs
// aborts the build and is returned as is.
func BuildFrom(ctx context.Context, gen fingerprint.Generator, kind fingerprint.Kind, pairs iter.Seq2[source.Pair, error], optFns ...Option) (*Document, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	if gen == nil {
		return nil, fmt.Errorf("document: nil generator")
	}

	b := &builder{
		gen:  gen,
		kind: kind,
		span: kind.Span(),
		opts: applyOptions(optFns),
	}

	for p, err := range pairs {
		if err != nil {
			return nil, err
		}
		b.pending = append(b.pending, p)
		if len(b.pending) >= b.opts.BatchSize {
			if err := b.flush(ctx); err != nil {
				return nil, err
			}
		}
	}
	if err := b.flush(ctx); err != nil {
		return nil, err
	}

	return &Document{
		kind:    kind,
		span:    b.span,
		ids:     slices.Clip(b.ids),
		data:    slices.Clip(b.data),
		skipped: b.skipped,
	}, nil
}

// FromWords builds a document from already packed fingerprints: words holds
// len(ids)*kind.Span() words in row-major order. words is copied.
func FromWords(kind fingerprint.Kind, ids []string, words []uint32) (*Document, error) {
	if err := kind.Validate(); err != nil {
		return nil, err
	}
	span := kind.Span()
	if len(ids)*span != len(words) {
		return nil, fmt.Errorf("%w: %d identifiers need %d words, got %d", ErrLengthMismatch, len(ids), len(ids)*span, len(words))
	}
	return &Document{
		kind: kind,
		span: span,
		ids:  slices.Clone(ids),
		data: slices.Clone(words),
	}, nil
}

type builder struct {
	gen     fingerprint.Generator
	kind    fingerprint.Kind
	span    int
	opts    Options
	pending []source.Pair
	ids     []string
	data    []uint32
	seen    int
	skipped int
}

// flush generates fingerprints for the pending pairs and appends them.
func (b *builder) flush(ctx context.Context) error {
	if len(b.pending) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if bg, ok := b.gen.(fingerprint.BatchGenerator); ok && len(b.pending) > 1 {
		if b.flushBatch(ctx, bg) {
			b.advance()
			return nil
		}
		// Fall through and generate one by one to pinpoint the failing entry.
	}

	for i, p := range b.pending {
		fp, err := b.gen.Generate(ctx, b.kind, p.Structure)
		if err == nil {
			err = fingerprint.CheckWidth(b.span, fp)
		}
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			if b.opts.SkipInvalid {
				b.skipped++
				continue
			}
			return &GenerationError{Index: b.seen + i, ID: p.ID, Structure: p.Structure, cause: err}
		}
		b.append(p.ID, fp)
	}
	b.advance()
	return nil
}

// flushBatch reports whether the whole batch was generated and appended.
func (b *builder) flushBatch(ctx context.Context, bg fingerprint.BatchGenerator) bool {
	structures := make([]string, len(b.pending))
	for i, p := range b.pending {
		structures[i] = p.Structure
	}

	fps, err := bg.GenerateBatch(ctx, b.kind, structures)
	if err != nil || len(fps) != len(structures) {
		return false
	}
	for _, fp := range fps {
		if fingerprint.CheckWidth(b.span, fp) != nil {
			return false
		}
	}
	for i, fp := range fps {
		b.append(b.pending[i].ID, fp)
	}
	return true
}

func (b *builder) append(id string, fp fingerprint.Fingerprint) {
	b.ids = append(b.ids, id)
	b.data = append(b.data, fp...)
}

func (b *builder) advance() {
	b.seen += len(b.pending)
	b.pending = b.pending[:0]
	if b.opts.Progress != nil {
		b.opts.Progress(b.seen)
	}
}
