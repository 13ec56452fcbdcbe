// Package search implements the exhaustive Tanimoto threshold scan.
//
// Query compares a query fingerprint against every entry of a document and
// keeps the entries whose score is at least the cutoff. There is no index,
// no early termination and no approximation: the scan costs
// O(entries * span) word operations and is exact.
//
// Scans can optionally be restricted to a Roaring bitmap of row indexes and
// split across goroutines; both produce the same result as the plain scan
// over the selected rows.
package search
