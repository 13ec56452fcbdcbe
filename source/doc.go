// Package source loads (identifier, structure) pairs from corpus files.
//
// Loaders stream pairs in file order through iter.Seq2. Corpus blobs are
// located through a blobstore.Router and decompressed transparently based on
// the locator suffix (.gz, .zst, .lz4, .xz). When a Ref carries a checksum,
// the raw blob is hashed with BLAKE3 while it is read and a mismatch is
// reported as the final error of the sequence.
package source
