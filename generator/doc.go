// Package generator provides fingerprint.Generator implementations and
// decorators.
//
// Exec delegates generation to an external program, which is how a native
// cheminformatics toolkit is plugged in. Cached memoizes fingerprints in an
// LRU and RateLimited throttles calls through a resource.Controller. The
// decorators preserve batching: they implement fingerprint.BatchGenerator
// and forward whole batches when the wrapped generator supports it.
package generator
