package document

// DefaultBatchSize is the number of structures passed to a BatchGenerator per call.
const DefaultBatchSize = 256

// Options configures document construction.
type Options struct {
	// BatchSize is the number of structures handed to a BatchGenerator at
	// once. Ignored for plain generators.
	BatchSize int

	// SkipInvalid drops entries whose generation fails instead of aborting
	// the whole build. Skipped entries are counted in Document.Skipped.
	SkipInvalid bool

	// Progress, if set, is called after every batch with the number of
	// entries processed so far.
	Progress func(done int)
}

// Option configures Options.
type Option func(*Options)

// WithBatchSize sets Options.BatchSize.
func WithBatchSize(n int) Option {
	return func(o *Options) { o.BatchSize = n }
}

// WithSkipInvalid sets Options.SkipInvalid.
func WithSkipInvalid(skip bool) Option {
	return func(o *Options) { o.SkipInvalid = skip }
}

// WithProgress sets Options.Progress.
func WithProgress(fn func(done int)) Option {
	return func(o *Options) { o.Progress = fn }
}

func applyOptions(optFns []Option) Options {
	o := Options{BatchSize: DefaultBatchSize}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
	return o
}
