package registry

import (
	"fmt"

	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/source"
)

// SourceKind identifies a corpus format.
type SourceKind int

const (
	Chembl SourceKind = iota
	ChemblSQLite
	SMILES
	Zinc
)

var sourceNames = [...]string{
	Chembl:       "Chembl",
	ChemblSQLite: "ChemblSQLite",
	SMILES:       "SMILES",
	Zinc:         "Zinc",
}

func (k SourceKind) String() string {
	if k >= 0 && int(k) < len(sourceNames) {
		return sourceNames[k]
	}
	return fmt.Sprintf("SourceKind(%d)", int(k))
}

// ParseSourceKind parses a case-sensitive source tag.
func ParseSourceKind(tag string) (SourceKind, error) {
	for i, name := range sourceNames {
		if tag == name {
			return SourceKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown source tag %q", tag)
}

// Spec describes one document to load.
type Spec struct {
	// Name is the document name used for lookups.
	Name string `json:"name"`

	// Kind is a fingerprint kind tag such as "ECFP4".
	Kind string `json:"kind"`

	// NBits is the fingerprint width; a positive multiple of 32.
	NBits int `json:"nbits"`

	// Locator points at the corpus blob, e.g. "/data/chembl.tsv.gz" or
	// "s3://bucket/chembl_33.sqlite".
	Locator string `json:"locator"`

	// Source is the corpus format tag, e.g. "Chembl".
	Source string `json:"source"`

	// Checksum is an optional hex BLAKE3-256 digest of the raw blob.
	Checksum string `json:"checksum,omitempty"`
}

// resolved is a validated Spec.
type resolved struct {
	index  int
	name   string
	kind   fingerprint.Kind
	source SourceKind
	ref    source.Ref
}

func (s Spec) resolve(index int) (resolved, error) {
	if s.Name == "" {
		return resolved{}, &ConfigError{Index: index, Field: "name", Reason: "must not be empty"}
	}
	kind, err := fingerprint.ParseKind(s.Kind, s.NBits)
	if err != nil {
		return resolved{}, &ConfigError{Index: index, Name: s.Name, Field: "kind", Reason: "invalid fingerprint kind", cause: err}
	}
	if s.Locator == "" {
		return resolved{}, &ConfigError{Index: index, Name: s.Name, Field: "locator", Reason: "must not be empty"}
	}
	src, err := ParseSourceKind(s.Source)
	if err != nil {
		return resolved{}, &ConfigError{Index: index, Name: s.Name, Field: "source", Reason: err.Error()}
	}
	return resolved{
		index:  index,
		name:   s.Name,
		kind:   kind,
		source: src,
		ref:    source.Ref{Locator: s.Locator, Checksum: s.Checksum},
	}, nil
}
