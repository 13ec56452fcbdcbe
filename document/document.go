package document

import (
	"fmt"

	"github.com/hupe1980/fpstore/fingerprint"
)

// Document is an immutable collection of (identifier, fingerprint) entries
// sharing one fingerprint Kind. The zero value is not usable; construct
// documents with Build, BuildFrom or FromWords.
type Document struct {
	kind    fingerprint.Kind
	span    int
	ids     []string
	data    []uint32 // len(ids) * span words, row-major
	skipped int
}

// Len returns the number of entries.
func (d *Document) Len() int {
	return len(d.ids)
}

// Kind returns the fingerprint kind shared by every entry.
func (d *Document) Kind() fingerprint.Kind {
	return d.kind
}

// Span returns the number of words per fingerprint.
func (d *Document) Span() int {
	return d.span
}

// FingerprintAt returns the fingerprint of entry i.
// The returned slice aliases the document and must not be modified.
func (d *Document) FingerprintAt(i int) (fingerprint.Fingerprint, error) {
	if i < 0 || i >= len(d.ids) {
		return nil, &IndexOutOfRangeError{Index: i, Len: len(d.ids)}
	}
	start := i * d.span
	end := start + d.span
	return fingerprint.Fingerprint(d.data[start:end:end]), nil
}

// IDAt returns the identifier of entry i.
func (d *Document) IDAt(i int) (string, error) {
	if i < 0 || i >= len(d.ids) {
		return "", &IndexOutOfRangeError{Index: i, Len: len(d.ids)}
	}
	return d.ids[i], nil
}

// Words returns the packed row-major word matrix (Len()*Span() words).
// The returned slice aliases the document and must not be modified.
func (d *Document) Words() []uint32 {
	return d.data[:len(d.data):len(d.data)]
}

// IDs returns the identifiers in build order.
// The returned slice aliases the document and must not be modified.
func (d *Document) IDs() []string {
	return d.ids[:len(d.ids):len(d.ids)]
}

// WordBytes returns the size of the packed word matrix in bytes.
func (d *Document) WordBytes() int64 {
	return int64(len(d.data)) * (fingerprint.WordBits / 8)
}

// Skipped returns the number of input entries dropped during a build with
// WithSkipInvalid.
func (d *Document) Skipped() int {
	return d.skipped
}

// Describe returns a "{entries}\t{kind}" summary for diagnostics.
func (d *Document) Describe() string {
	return fmt.Sprintf("%d\t%s", d.Len(), d.kind)
}

func (d *Document) String() string {
	return d.Describe()
}
