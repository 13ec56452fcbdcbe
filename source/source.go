package source

import (
	"context"
	"errors"
	"iter"
)

var (
	// ErrChecksumMismatch is returned when a corpus blob does not match its
	// configured checksum.
	ErrChecksumMismatch = errors.New("corpus checksum mismatch")

	// ErrMalformed is returned when a corpus file cannot be parsed.
	ErrMalformed = errors.New("malformed corpus")
)

// Pair is one corpus entry.
type Pair struct {
	ID        string
	Structure string
}

// Ref points at a corpus blob.
type Ref struct {
	// Locator is resolved by a blobstore.Router, or used as a file path by
	// loaders that need direct file access.
	Locator string

	// Checksum is an optional hex encoded BLAKE3-256 digest of the raw blob.
	Checksum string
}

// Loader yields the pairs of a corpus in loader-defined order.
// Iteration stops at the first error.
type Loader interface {
	Load(ctx context.Context, ref Ref) iter.Seq2[Pair, error]
}

// LoaderFunc adapts an ordinary function to the Loader interface.
type LoaderFunc func(ctx context.Context, ref Ref) iter.Seq2[Pair, error]

// Load calls f(ctx, ref).
func (f LoaderFunc) Load(ctx context.Context, ref Ref) iter.Seq2[Pair, error] {
	return f(ctx, ref)
}

// Slice returns a Loader that ignores the ref and yields pairs.
func Slice(pairs []Pair) Loader {
	return LoaderFunc(func(context.Context, Ref) iter.Seq2[Pair, error] {
		return func(yield func(Pair, error) bool) {
			for _, p := range pairs {
				if !yield(p, nil) {
					return
				}
			}
		}
	})
}

// Collect drains a sequence into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Pair, error]) ([]Pair, error) {
	var pairs []Pair
	for p, err := range seq {
		if err != nil {
			return pairs, err
		}
		pairs = append(pairs, p)
	}
	return pairs, nil
}
