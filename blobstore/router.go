package blobstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
)

// ErrNoStore is returned when no store is registered for a locator.
var ErrNoStore = errors.New("no blob store registered for locator")

// Router resolves locators to a Store and a blob name by longest matching
// registered prefix. Locators without a scheme ("://") are opened from the
// local file system.
type Router struct {
	mu       sync.RWMutex
	prefixes []string
	stores   map[string]Store
	local    Store
}

// NewRouter returns a Router that serves schemeless locators and "file://"
// locators from the local file system.
func NewRouter() *Router {
	local := NewLocalStore("")
	r := &Router{
		stores: make(map[string]Store),
		local:  local,
	}
	r.Register("file://", local)
	return r
}

// Register routes every locator starting with prefix to store. The remainder
// of the locator after prefix becomes the blob name. Registering an existing
// prefix replaces its store.
func (r *Router) Register(prefix string, store Store) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.stores[prefix]; !ok {
		r.prefixes = append(r.prefixes, prefix)
		sort.Slice(r.prefixes, func(i, j int) bool {
			return len(r.prefixes[i]) > len(r.prefixes[j])
		})
	}
	r.stores[prefix] = store
}

// Resolve returns the store and blob name for locator.
func (r *Router) Resolve(locator string) (Store, string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, prefix := range r.prefixes {
		if name, ok := strings.CutPrefix(locator, prefix); ok {
			return r.stores[prefix], name, nil
		}
	}
	if !strings.Contains(locator, "://") && locator != "" {
		return r.local, locator, nil
	}
	return nil, "", fmt.Errorf("%w: %q", ErrNoStore, locator)
}

// Open resolves locator and opens the blob.
func (r *Router) Open(ctx context.Context, locator string) (Blob, error) {
	store, name, err := r.Resolve(locator)
	if err != nil {
		return nil, err
	}
	return store.Open(ctx, name)
}
