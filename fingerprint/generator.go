package fingerprint

import "context"

// Generator turns a structure description (e.g. a SMILES string) into a
// fingerprint of kind.Span() words.
type Generator interface {
	Generate(ctx context.Context, kind Kind, structure string) (Fingerprint, error)
}

// BatchGenerator is an optional interface for generators that amortize
// per-call overhead over many structures. The returned slice must have the
// same length and order as structures.
type BatchGenerator interface {
	Generator
	GenerateBatch(ctx context.Context, kind Kind, structures []string) ([]Fingerprint, error)
}

// GeneratorFunc adapts an ordinary function to the Generator interface.
type GeneratorFunc func(ctx context.Context, kind Kind, structure string) (Fingerprint, error)

// Generate calls f(ctx, kind, structure).
func (f GeneratorFunc) Generate(ctx context.Context, kind Kind, structure string) (Fingerprint, error) {
	return f(ctx, kind, structure)
}
