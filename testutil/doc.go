// Package testutil provides testing utilities for fpstore.
//
// This package is intended for use in tests and benchmarks only.
//
// # Random Fingerprints
//
//	rng := testutil.NewRNG(seed)
//	fps := rng.Fingerprints(1000, 64, 0.1) // 1000 x 2048-bit, ~10% bits set
//	near := rng.Mutate(fps[0], 16)         // flip 16 bits
//
// # Generators
//
// HashGenerator is a deterministic stand-in for a cheminformatics toolkit:
// it hashes the character n-grams of a structure string into bit positions,
// so structures sharing substrings share bits.
//
// # Ground Truth
//
//	want := testutil.ExactQuery(query, ids, fps, cutoff)
package testutil
