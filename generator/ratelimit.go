package generator

import (
	"context"

	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/resource"
)

// RateLimited throttles generation through a resource.Controller. Every
// structure counts as one call, whether generated alone or in a batch.
type RateLimited struct {
	gen fingerprint.Generator
	rc  *resource.Controller
}

// NewRateLimited wraps gen. A nil rc imposes no limit.
func NewRateLimited(gen fingerprint.Generator, rc *resource.Controller) *RateLimited {
	return &RateLimited{gen: gen, rc: rc}
}

// Generate implements fingerprint.Generator.
func (r *RateLimited) Generate(ctx context.Context, kind fingerprint.Kind, structure string) (fingerprint.Fingerprint, error) {
	if err := r.rc.AcquireGenerations(ctx, 1); err != nil {
		return nil, err
	}
	return r.gen.Generate(ctx, kind, structure)
}

// GenerateBatch implements fingerprint.BatchGenerator.
func (r *RateLimited) GenerateBatch(ctx context.Context, kind fingerprint.Kind, structures []string) ([]fingerprint.Fingerprint, error) {
	if err := r.rc.AcquireGenerations(ctx, len(structures)); err != nil {
		return nil, err
	}
	return generateBatch(ctx, r.gen, kind, structures)
}
