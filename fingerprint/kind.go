package fingerprint

import (
	"fmt"
	"strings"
)

// WordBits is the number of bits packed into one fingerprint word.
const WordBits = 32

// Family identifies the fingerprint generation toolkit.
type Family uint8

const (
	// FamilyOpenBabel selects the Open Babel extended-connectivity fingerprints.
	FamilyOpenBabel Family = iota
)

func (f Family) String() string {
	switch f {
	case FamilyOpenBabel:
		return "OpenBabel"
	default:
		return fmt.Sprintf("Family(%d)", f)
	}
}

// Variant identifies the algorithm within a family.
type Variant uint8

const (
	ECFP0 Variant = iota
	ECFP2
	ECFP4
	ECFP6
	ECFP8
	ECFP10
)

var variantNames = [...]string{"ECFP0", "ECFP2", "ECFP4", "ECFP6", "ECFP8", "ECFP10"}

func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// Radius returns the atom environment radius of an ECFP variant (ECFP4 -> 2).
func (v Variant) Radius() int {
	return int(v)
}

// Kind describes how fingerprints are generated: toolkit family, algorithm
// variant and bit width. All fingerprints of one document share a Kind.
type Kind struct {
	Family  Family
	Variant Variant
	NBits   int
}

// ParseKind parses a case-sensitive kind tag such as "ECFP4" or
// "OpenBabelECFP4" together with its bit width.
func ParseKind(tag string, nbits int) (Kind, error) {
	family := FamilyOpenBabel
	rest := tag
	if after, ok := strings.CutPrefix(tag, FamilyOpenBabel.String()); ok {
		rest = after
	}

	for i, name := range variantNames {
		if rest == name {
			k := Kind{Family: family, Variant: Variant(i), NBits: nbits}
			if err := k.Validate(); err != nil {
				return Kind{}, err
			}
			return k, nil
		}
	}

	return Kind{}, &InvalidKindError{Tag: tag, NBits: nbits, Reason: "unknown kind tag"}
}

// MustParseKind is like ParseKind but panics on error.
// Intended for tests and static initialization.
func MustParseKind(tag string, nbits int) Kind {
	k, err := ParseKind(tag, nbits)
	if err != nil {
		panic(err)
	}
	return k
}

// Validate checks that NBits is a positive multiple of WordBits and that
// family and variant are known.
func (k Kind) Validate() error {
	if k.Family != FamilyOpenBabel {
		return &InvalidKindError{Tag: k.Tag(), NBits: k.NBits, Reason: "unknown family"}
	}
	if int(k.Variant) >= len(variantNames) {
		return &InvalidKindError{Tag: k.Tag(), NBits: k.NBits, Reason: "unknown variant"}
	}
	if k.NBits <= 0 || k.NBits%WordBits != 0 {
		return &InvalidKindError{
			Tag:    k.Tag(),
			NBits:  k.NBits,
			Reason: fmt.Sprintf("nbits must be a positive multiple of %d", WordBits),
		}
	}
	return nil
}

// Span returns the number of words per fingerprint.
func (k Kind) Span() int {
	return k.NBits / WordBits
}

// Tag returns the family qualified tag, e.g. "OpenBabelECFP4".
func (k Kind) Tag() string {
	return k.Family.String() + k.Variant.String()
}

// String renders the kind as "OpenBabelECFP4/2048".
func (k Kind) String() string {
	return fmt.Sprintf("%s/%d", k.Tag(), k.NBits)
}
