package generator

import (
	"container/list"
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/hupe1980/fpstore/fingerprint"
)

type cacheKey struct {
	kind      fingerprint.Kind
	structure string
}

type entry struct {
	key   cacheKey
	value fingerprint.Fingerprint
}

// Cached memoizes fingerprints of another generator in an LRU holding at
// most capacity entries. Errors are not cached.
type Cached struct {
	gen fingerprint.Generator

	mu        sync.Mutex
	capacity  int
	items     map[cacheKey]*list.Element
	evictList *list.List

	hits   atomic.Int64
	misses atomic.Int64
}

// NewCached wraps gen with an LRU of the given capacity. A capacity <= 0
// disables caching.
func NewCached(gen fingerprint.Generator, capacity int) *Cached {
	return &Cached{
		gen:       gen,
		capacity:  capacity,
		items:     make(map[cacheKey]*list.Element),
		evictList: list.New(),
	}
}

// Generate implements fingerprint.Generator.
func (c *Cached) Generate(ctx context.Context, kind fingerprint.Kind, structure string) (fingerprint.Fingerprint, error) {
	key := cacheKey{kind, structure}
	if fp, ok := c.get(key); ok {
		return fp, nil
	}

	fp, err := c.gen.Generate(ctx, kind, structure)
	if err != nil {
		return nil, err
	}
	c.set(key, fp)
	return slices.Clone(fp), nil
}

// GenerateBatch implements fingerprint.BatchGenerator. Only the misses are
// forwarded, as one batch.
func (c *Cached) GenerateBatch(ctx context.Context, kind fingerprint.Kind, structures []string) ([]fingerprint.Fingerprint, error) {
	out := make([]fingerprint.Fingerprint, len(structures))

	var missing []string
	var missingIdx []int
	for i, s := range structures {
		if fp, ok := c.get(cacheKey{kind, s}); ok {
			out[i] = fp
			continue
		}
		missing = append(missing, s)
		missingIdx = append(missingIdx, i)
	}
	if len(missing) == 0 {
		return out, nil
	}

	fps, err := generateBatch(ctx, c.gen, kind, missing)
	if err != nil {
		return nil, err
	}
	for j, fp := range fps {
		if j >= len(missingIdx) {
			break
		}
		c.set(cacheKey{kind, missing[j]}, fp)
		out[missingIdx[j]] = slices.Clone(fp)
	}
	return out, nil
}

// Stats returns the cache hit and miss counts.
func (c *Cached) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Len returns the number of cached fingerprints.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.evictList.Len()
}

// get returns a copy so callers cannot corrupt the cached value.
func (c *Cached) get(key cacheKey) (fingerprint.Fingerprint, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.hits.Add(1)
		c.evictList.MoveToFront(ent)
		return slices.Clone(ent.Value.(*entry).value), true
	}
	c.misses.Add(1)
	return nil, false
}

func (c *Cached) set(key cacheKey, fp fingerprint.Fingerprint) {
	if c.capacity <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if ent, ok := c.items[key]; ok {
		c.evictList.MoveToFront(ent)
		ent.Value.(*entry).value = slices.Clone(fp)
		return
	}

	for c.evictList.Len() >= c.capacity {
		c.removeElement(c.evictList.Back())
	}
	c.items[key] = c.evictList.PushFront(&entry{key: key, value: slices.Clone(fp)})
}

func (c *Cached) removeElement(e *list.Element) {
	c.evictList.Remove(e)
	delete(c.items, e.Value.(*entry).key)
}
