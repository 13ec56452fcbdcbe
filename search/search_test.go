package search

import (
	"context"
	"errors"
	"testing"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/hupe1980/fpstore/document"
	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoEntryDoc(t *testing.T) *document.Document {
	t.Helper()
	doc, err := document.FromWords(fingerprint.MustParseKind("ECFP4", 32), []string{"x1", "x2"}, []uint32{0b1100, 0b1010})
	require.NoError(t, err)
	return doc
}

func randomDoc(t testing.TB, rng *testutil.RNG, n, span int) (*document.Document, []string, []fingerprint.Fingerprint) {
	t.Helper()
	fps := rng.Fingerprints(n, span, 0.3)
	ids := testutil.IDs("id", n)
	doc, err := document.FromWords(fingerprint.MustParseKind("ECFP4", span*fingerprint.WordBits), ids, testutil.Flatten(fps))
	require.NoError(t, err)
	return doc, ids, fps
}

func TestQueryTwoEntries(t *testing.T) {
	doc := twoEntryDoc(t)
	q := fingerprint.Fingerprint{0b1100}

	res, err := Query(q, doc, 1.0)
	require.NoError(t, err)
	assert.Equal(t, Result{"x1": 1.0}, res)

	res, err = Query(q, doc, 0.2)
	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, float32(1.0), res["x1"])
	assert.InDelta(t, 1.0/3.0, res["x2"], 1e-6)
}

func TestQueryCutoffIsInclusive(t *testing.T) {
	doc := twoEntryDoc(t)
	res, err := Query(fingerprint.Fingerprint{0b1100}, doc, float32(1)/float32(3))
	require.NoError(t, err)
	assert.Contains(t, res, "x2")
}

func TestQueryZeroCutoffReturnsEverything(t *testing.T) {
	doc, err := document.FromWords(fingerprint.MustParseKind("ECFP4", 32), []string{"a", "b", "c"}, []uint32{0, 0b1, 0b10})
	require.NoError(t, err)

	res, err := Query(fingerprint.Fingerprint{0b1}, doc, 0)
	require.NoError(t, err)
	assert.Equal(t, Result{"a": 0, "b": 1, "c": 0}, res)
}

func TestQueryEmptyDocument(t *testing.T) {
	doc, err := document.FromWords(fingerprint.MustParseKind("ECFP4", 64), nil, nil)
	require.NoError(t, err)

	res, err := Query(fingerprint.Fingerprint{1, 2}, doc, 0)
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Empty(t, res)
}

func TestQueryWidthMismatch(t *testing.T) {
	doc := twoEntryDoc(t)

	_, err := Query(fingerprint.Fingerprint{1, 2}, doc, 0.5)
	require.Error(t, err)
	assert.ErrorIs(t, err, fingerprint.ErrWidthMismatch)

	var wm *fingerprint.WidthMismatchError
	require.ErrorAs(t, err, &wm)
	assert.Equal(t, 1, wm.Expected)
	assert.Equal(t, 2, wm.Actual)
}

func TestQueryNilDocument(t *testing.T) {
	_, err := Query(fingerprint.Fingerprint{1}, nil, 0.5)
	assert.ErrorIs(t, err, ErrNilDocument)
}

func TestQueryDuplicateIDsLastWins(t *testing.T) {
	doc, err := document.FromWords(fingerprint.MustParseKind("ECFP4", 32), []string{"dup", "dup"}, []uint32{0b1100, 0b1000})
	require.NoError(t, err)

	res, err := Query(fingerprint.Fingerprint{0b1100}, doc, 0)
	require.NoError(t, err)
	assert.Equal(t, Result{"dup": 0.5}, res)
}

func TestQueryMatchesExactScan(t *testing.T) {
	rng := testutil.NewRNG(7)
	doc, ids, fps := randomDoc(t, rng, 500, 4)

	for _, cutoff := range []float32{0, 0.1, 0.25, 0.5, 1} {
		q := rng.Mutate(fps[rng.Intn(len(fps))], 8)
		res, err := Query(q, doc, cutoff)
		require.NoError(t, err)
		assert.Equal(t, Result(testutil.ExactQuery(q, ids, fps, cutoff)), res, "cutoff %v", cutoff)
	}
}

func TestQueryMonotonicCutoff(t *testing.T) {
	rng := testutil.NewRNG(11)
	doc, _, fps := randomDoc(t, rng, 300, 2)
	q := rng.Mutate(fps[0], 4)

	prev, err := Query(q, doc, 0)
	require.NoError(t, err)
	for _, cutoff := range []float32{0.1, 0.2, 0.3, 0.5, 0.8, 1} {
		cur, err := Query(q, doc, cutoff)
		require.NoError(t, err)
		for id, score := range cur {
			assert.Contains(t, prev, id)
			assert.Equal(t, prev[id], score)
			assert.GreaterOrEqual(t, score, cutoff)
		}
		prev = cur
	}
}

func TestQueryParallelMatchesSequential(t *testing.T) {
	rng := testutil.NewRNG(23)
	doc, _, fps := randomDoc(t, rng, 5000, 8)
	q := rng.Mutate(fps[42], 16)

	seq, err := Query(q, doc, 0.2)
	require.NoError(t, err)

	for _, p := range []int{2, 3, 4, 16} {
		par, err := Query(q, doc, 0.2, WithParallelism(p))
		require.NoError(t, err)
		assert.Equal(t, seq, par, "parallelism %d", p)
	}
}

func TestQueryFilter(t *testing.T) {
	rng := testutil.NewRNG(5)
	doc, ids, fps := randomDoc(t, rng, 100, 2)
	q := fps[10]

	filter := roaring.BitmapOf(1, 10, 50, 99, 1000)
	res, err := Query(q, doc, 0, WithFilter(filter))
	require.NoError(t, err)

	assert.Len(t, res, 4)
	for _, row := range []int{1, 10, 50, 99} {
		assert.Contains(t, res, ids[row])
	}
	assert.Equal(t, float32(1), res[ids[10]])

	empty, err := Query(q, doc, 0, WithFilter(roaring.New()))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestQueryFilterParallel(t *testing.T) {
	rng := testutil.NewRNG(9)
	doc, _, fps := randomDoc(t, rng, 8000, 2)
	q := fps[3]

	filter := roaring.New()
	filter.AddRange(0, 8000)
	filter.Remove(3)

	seq, err := Query(q, doc, 0.1, WithFilter(filter))
	require.NoError(t, err)
	par, err := Query(q, doc, 0.1, WithFilter(filter), WithParallelism(4))
	require.NoError(t, err)

	assert.Equal(t, seq, par)
	assert.NotContains(t, seq, "id3")
}

func TestQueryByStructure(t *testing.T) {
	ctx := context.Background()
	gen := &testutil.HashGenerator{}
	kind := fingerprint.MustParseKind("ECFP4", 256)

	structures := []string{"CCO", "c1ccccc1", "CCN"}
	doc, err := document.Build(ctx, gen, kind, structures, []string{"ethanol", "benzene", "ethylamine"})
	require.NoError(t, err)

	res, err := QueryByStructure(ctx, gen, "c1ccccc1", doc, 1.0)
	require.NoError(t, err)
	assert.Equal(t, Result{"benzene": 1.0}, res)
}

func TestQueryByStructureGeneratorError(t *testing.T) {
	ctx := context.Background()
	doc := twoEntryDoc(t)
	boom := errors.New("boom")
	gen := fingerprint.GeneratorFunc(func(context.Context, fingerprint.Kind, string) (fingerprint.Fingerprint, error) {
		return nil, boom
	})

	_, err := QueryByStructure(ctx, gen, "CCO", doc, 0.5)
	assert.ErrorIs(t, err, boom)
}

func TestResultSorted(t *testing.T) {
	res := Result{"b": 0.5, "a": 0.5, "c": 0.9, "d": 0.1}

	assert.Equal(t, []Hit{
		{ID: "c", Score: 0.9},
		{ID: "a", Score: 0.5},
		{ID: "b", Score: 0.5},
		{ID: "d", Score: 0.1},
	}, res.Sorted())

	assert.Len(t, res.Top(2), 2)
	assert.Len(t, res.Top(10), 4)
	assert.Empty(t, Result{}.Sorted())
}

func BenchmarkQuery(b *testing.B) {
	rng := testutil.NewRNG(1)
	doc, _, fps := randomDoc(b, rng, 100_000, 64)
	q := fps[0]

	b.Run("Sequential", func(b *testing.B) {
		for b.Loop() {
			_, _ = Query(q, doc, 0.7)
		}
	})
	b.Run("Parallel", func(b *testing.B) {
		for b.Loop() {
			_, _ = Query(q, doc, 0.7, WithParallelism(8))
		}
	})
}
