package search

import (
	"cmp"
	"slices"
)

// Result maps matching identifiers to their Tanimoto score. An absent key
// means the entry scored below the cutoff. When a document holds duplicate
// identifiers the score of the last matching row wins.
type Result map[string]float32

// Hit is one scored identifier.
type Hit struct {
	ID    string  `json:"id"`
	Score float32 `json:"score"`
}

// Sorted returns the hits ordered by descending score, ties broken by
// identifier.
func (r Result) Sorted() []Hit {
	hits := make([]Hit, 0, len(r))
	for id, score := range r {
		hits = append(hits, Hit{ID: id, Score: score})
	}
	slices.SortFunc(hits, func(a, b Hit) int {
		if c := cmp.Compare(b.Score, a.Score); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return hits
}

// Top returns at most k hits of Sorted.
func (r Result) Top(k int) []Hit {
	hits := r.Sorted()
	if k >= 0 && k < len(hits) {
		hits = hits[:k]
	}
	return hits
}
