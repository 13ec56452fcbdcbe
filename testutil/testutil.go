package testutil

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/fpstore/fingerprint"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Fingerprint returns a random fingerprint of span words where each bit is
// set with probability density.
func (r *RNG) Fingerprint(span int, density float64) fingerprint.Fingerprint {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fingerprintLocked(span, density)
}

func (r *RNG) fingerprintLocked(span int, density float64) fingerprint.Fingerprint {
	fp := make(fingerprint.Fingerprint, span)
	for i := range fp {
		var w uint32
		for bit := range fingerprint.WordBits {
			if r.rand.Float64() < density {
				w |= 1 << bit
			}
		}
		fp[i] = w
	}
	return fp
}

// Fingerprints returns num random fingerprints.
func (r *RNG) Fingerprints(num, span int, density float64) []fingerprint.Fingerprint {
	r.mu.Lock()
	defer r.mu.Unlock()

	fps := make([]fingerprint.Fingerprint, num)
	for i := range fps {
		fps[i] = r.fingerprintLocked(span, density)
	}
	return fps
}

// Mutate returns a copy of fp with flips random bits toggled.
func (r *RNG) Mutate(fp fingerprint.Fingerprint, flips int) fingerprint.Fingerprint {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := slices.Clone(fp)
	nbits := len(out) * fingerprint.WordBits
	for range flips {
		bit := r.rand.Intn(nbits)
		out[bit/fingerprint.WordBits] ^= 1 << (bit % fingerprint.WordBits)
	}
	return out
}

// Flatten packs fingerprints row-major.
func Flatten(fps []fingerprint.Fingerprint) []uint32 {
	var words []uint32
	for _, fp := range fps {
		words = append(words, fp...)
	}
	return words
}

// IDs returns n identifiers "<prefix><i>".
func IDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%d", prefix, i)
	}
	return ids
}

// ExactQuery computes the reference result of a threshold scan.
func ExactQuery(query fingerprint.Fingerprint, ids []string, fps []fingerprint.Fingerprint, cutoff float32) map[string]float32 {
	out := make(map[string]float32)
	for i, fp := range fps {
		inter := fingerprint.IntersectionCount(query, fp)
		union := fingerprint.UnionCount(query, fp)
		var score float32
		if union > 0 {
			score = float32(inter) / float32(union)
		}
		if score >= cutoff {
			out[ids[i]] = score
		}
	}
	return out
}

// HashGenerator is a deterministic fingerprint.Generator. Every character
// n-gram of the structure with n <= radius+1 sets one bit chosen by an FNV-1a
// hash of the n-gram and the kind's variant.
//
// Structures listed in Fail produce an error. Calls counts every Generate call.
type HashGenerator struct {
	Fail  map[string]bool
	Calls atomic.Int64
}

// Generate implements fingerprint.Generator.
func (g *HashGenerator) Generate(ctx context.Context, kind fingerprint.Kind, structure string) (fingerprint.Fingerprint, error) {
	g.Calls.Add(1)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if g.Fail[structure] {
		return nil, fmt.Errorf("cannot parse structure %q", structure)
	}
	return Hash(kind, structure), nil
}

// Hash computes the HashGenerator fingerprint of structure.
func Hash(kind fingerprint.Kind, structure string) fingerprint.Fingerprint {
	fp := make(fingerprint.Fingerprint, kind.Span())
	if kind.NBits <= 0 {
		return fp
	}

	maxN := kind.Variant.Radius() + 1
	for n := 1; n <= maxN; n++ {
		for i := 0; i+n <= len(structure); i++ {
			h := fnv.New32a()
			_, _ = h.Write([]byte{byte(kind.Variant)})
			_, _ = h.Write([]byte(structure[i : i+n]))
			bit := int(h.Sum32() % uint32(kind.NBits))
			fp[bit/fingerprint.WordBits] |= 1 << (bit % fingerprint.WordBits)
		}
	}
	return fp
}

// BatchHashGenerator wraps HashGenerator with fingerprint.BatchGenerator
// support. Batches counts GenerateBatch calls.
type BatchHashGenerator struct {
	HashGenerator
	Batches atomic.Int64
}

// GenerateBatch implements fingerprint.BatchGenerator. A batch containing a
// failing structure fails as a whole.
func (g *BatchHashGenerator) GenerateBatch(ctx context.Context, kind fingerprint.Kind, structures []string) ([]fingerprint.Fingerprint, error) {
	g.Batches.Add(1)
	out := make([]fingerprint.Fingerprint, len(structures))
	for i, s := range structures {
		if g.Fail[s] {
			return nil, fmt.Errorf("batch: cannot parse structure %q", s)
		}
		out[i] = Hash(kind, s)
	}
	return out, nil
}

// WidthGenerator returns fingerprints of a fixed number of words regardless
// of the requested kind.
type WidthGenerator int

// Generate implements fingerprint.Generator.
func (w WidthGenerator) Generate(context.Context, fingerprint.Kind, string) (fingerprint.Fingerprint, error) {
	return make(fingerprint.Fingerprint, int(w)), nil
}
