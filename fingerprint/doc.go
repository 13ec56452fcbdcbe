// Package fingerprint provides packed bit-vector fingerprints and the
// Tanimoto overlap arithmetic used to compare them.
//
// A fingerprint of NBits bits is stored as NBits/32 uint32 words. Two
// fingerprints are only comparable when they share the same span (number of
// words), which is guaranteed within one document by construction.
//
// # Usage
//
//	kind, err := fingerprint.ParseKind("ECFP4", 2048)
//	score := fingerprint.Tanimoto(a, b)
//
// Conversion of a structure description into a fingerprint is owned by an
// external capability modelled by the Generator interface.
package fingerprint
