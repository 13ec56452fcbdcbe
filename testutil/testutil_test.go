package testutil

import (
	"context"
	"testing"

	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFingerprints(t *testing.T) {
	rng := NewRNG(4711)

	fps := rng.Fingerprints(8, 4, 0.5)
	assert.Len(t, fps, 8)
	for _, fp := range fps {
		assert.Len(t, fp, 4)
	}

	assert.Equal(t, 0, rng.Fingerprint(4, 0).PopCount())
	assert.Equal(t, 128, rng.Fingerprint(4, 1).PopCount())
}

func TestMutate(t *testing.T) {
	rng := NewRNG(4711)
	fp := rng.Fingerprint(8, 0.2)

	same := rng.Mutate(fp, 0)
	assert.Equal(t, fp, same)

	mutated := rng.Mutate(fp, 1)
	assert.NotEqual(t, fp, mutated)
	assert.Equal(t, 1, fingerprint.UnionCount(fp, mutated)-fingerprint.IntersectionCount(fp, mutated))
}

func TestHashGenerator(t *testing.T) {
	kind := fingerprint.MustParseKind("ECFP4", 1024)
	gen := &HashGenerator{Fail: map[string]bool{"bad": true}}
	ctx := context.Background()

	a, err := gen.Generate(ctx, kind, "c1ccccc1")
	require.NoError(t, err)
	assert.Len(t, a, kind.Span())
	assert.Positive(t, a.PopCount())

	b, err := gen.Generate(ctx, kind, "c1ccccc1")
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := gen.Generate(ctx, kind, "c1ccccc1CCN")
	require.NoError(t, err)
	sim := fingerprint.Tanimoto(a, c)
	assert.Greater(t, sim, float32(0.2))
	assert.Less(t, sim, float32(1))

	_, err = gen.Generate(ctx, kind, "bad")
	assert.Error(t, err)
	assert.Equal(t, int64(4), gen.Calls.Load())
}

func TestExactQuery(t *testing.T) {
	fps := []fingerprint.Fingerprint{{0b1100}, {0b1010}}
	ids := []string{"x1", "x2"}

	got := ExactQuery(fingerprint.Fingerprint{0b1100}, ids, fps, 0.2)
	assert.Len(t, got, 2)
	assert.InDelta(t, 1.0/3.0, got["x2"], 1e-6)

	got = ExactQuery(fingerprint.Fingerprint{0b1100}, ids, fps, 1)
	assert.Equal(t, map[string]float32{"x1": 1}, got)
}
