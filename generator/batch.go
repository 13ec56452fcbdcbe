package generator

import (
	"context"

	"github.com/hupe1980/fpstore/fingerprint"
)

// generateBatch runs structures through gen, batched when possible.
func generateBatch(ctx context.Context, gen fingerprint.Generator, kind fingerprint.Kind, structures []string) ([]fingerprint.Fingerprint, error) {
	if bg, ok := gen.(fingerprint.BatchGenerator); ok {
		return bg.GenerateBatch(ctx, kind, structures)
	}
	out := make([]fingerprint.Fingerprint, len(structures))
	for i, s := range structures {
		fp, err := gen.Generate(ctx, kind, s)
		if err != nil {
			return nil, err
		}
		out[i] = fp
	}
	return out, nil
}
