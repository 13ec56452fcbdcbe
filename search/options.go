package search

import "github.com/RoaringBitmap/roaring/v2"

// minRowsPerWorker keeps tiny scans on one goroutine.
const minRowsPerWorker = 1024

// Options configures a scan.
type Options struct {
	// Filter restricts the scan to the given row indexes. Indexes beyond
	// the document length are ignored. Nil scans every row.
	Filter *roaring.Bitmap

	// Parallelism is the maximum number of goroutines used for one scan.
	// Values <= 1 scan sequentially.
	Parallelism int
}

// Option configures Options.
type Option func(*Options)

// WithFilter sets Options.Filter.
func WithFilter(filter *roaring.Bitmap) Option {
	return func(o *Options) { o.Filter = filter }
}

// WithParallelism sets Options.Parallelism.
func WithParallelism(n int) Option {
	return func(o *Options) { o.Parallelism = n }
}

func applyOptions(optFns []Option) Options {
	var o Options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	return o
}
