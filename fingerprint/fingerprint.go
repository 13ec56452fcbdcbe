package fingerprint

import (
	"encoding/hex"
	"fmt"
	"math/bits"
	"strings"
)

// Fingerprint is a fixed-width bit vector packed into 32-bit words.
type Fingerprint []uint32

// PopCount returns the number of set bits.
func (f Fingerprint) PopCount() int {
	count := 0
	i := 0
	for ; i+4 <= len(f); i += 4 {
		count += bits.OnesCount32(f[i])
		count += bits.OnesCount32(f[i+1])
		count += bits.OnesCount32(f[i+2])
		count += bits.OnesCount32(f[i+3])
	}
	for ; i < len(f); i++ {
		count += bits.OnesCount32(f[i])
	}
	return count
}

// Hex encodes the fingerprint as 8 lowercase hex digits per word, first word first.
func (f Fingerprint) Hex() string {
	var sb strings.Builder
	sb.Grow(len(f) * 8)
	for _, w := range f {
		fmt.Fprintf(&sb, "%08x", w)
	}
	return sb.String()
}

// ParseHex decodes a fingerprint produced by Hex.
func ParseHex(s string) (Fingerprint, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s)%8 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a positive multiple of 8", ErrInvalidHex, len(s))
	}
	raw, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHex, err)
	}
	fp := make(Fingerprint, len(raw)/4)
	for i := range fp {
		b := raw[i*4 : i*4+4]
		fp[i] = uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
	}
	return fp, nil
}

// IntersectionCount returns the popcount of a AND b.
// Assumes a and b have the same length (caller's responsibility).
func IntersectionCount(a, b []uint32) int {
	count := 0
	i := 0
	for ; i+4 <= len(a); i += 4 {
		count += bits.OnesCount32(a[i] & b[i])
		count += bits.OnesCount32(a[i+1] & b[i+1])
		count += bits.OnesCount32(a[i+2] & b[i+2])
		count += bits.OnesCount32(a[i+3] & b[i+3])
	}
	for ; i < len(a); i++ {
		count += bits.OnesCount32(a[i] & b[i])
	}
	return count
}

// UnionCount returns the popcount of a OR b.
// Assumes a and b have the same length (caller's responsibility).
func UnionCount(a, b []uint32) int {
	count := 0
	i := 0
	for ; i+4 <= len(a); i += 4 {
		count += bits.OnesCount32(a[i] | b[i])
		count += bits.OnesCount32(a[i+1] | b[i+1])
		count += bits.OnesCount32(a[i+2] | b[i+2])
		count += bits.OnesCount32(a[i+3] | b[i+3])
	}
	for ; i < len(a); i++ {
		count += bits.OnesCount32(a[i] | b[i])
	}
	return count
}

// Tanimoto returns |a AND b| / |a OR b|, or 0 when both are all-zero.
// Assumes a and b have the same length (caller's responsibility).
func Tanimoto(a, b []uint32) float32 {
	var and, or int
	for i := range a {
		x, y := a[i], b[i]
		and += bits.OnesCount32(x & y)
		or += bits.OnesCount32(x | y)
	}
	if or == 0 {
		return 0
	}
	return float32(and) / float32(or)
}
