// Package document implements the fingerprint document: an immutable,
// append-built collection of identifier -> fingerprint associations.
//
// Fingerprints are packed row-major into one flat []uint32 rather than N
// separate allocations. Entry i occupies words [i*span, (i+1)*span) where
// span = kind.NBits / 32. A built Document is never mutated, so a single
// *Document can be shared by any number of concurrent readers.
//
// # Construction
//
//	doc, err := document.Build(ctx, gen, kind, structures, ids)
//	doc, err := document.BuildFrom(ctx, gen, kind, loader.Load(ctx, ref))
//	doc, err := document.FromWords(kind, ids, words)
package document
