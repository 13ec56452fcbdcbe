package registry

import (
	"log/slog"
	"time"

	"github.com/hupe1980/fpstore/blobstore"
	"github.com/hupe1980/fpstore/document"
	"github.com/hupe1980/fpstore/resource"
	"github.com/hupe1980/fpstore/source"
)

// BuildHook observes every finished document build. err is nil on success.
type BuildHook func(name string, entries int, elapsed time.Duration, err error)

// Options configures Load.
type Options struct {
	Logger     *slog.Logger
	Resources  *resource.Controller
	Router     *blobstore.Router
	Loaders    map[SourceKind]source.Loader
	SkipFailed bool
	DocOptions []document.Option
	OnBuild    BuildHook
}

// Option configures Options.
type Option func(*Options)

// WithLogger sets the logger. Default discards.
func WithLogger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

// WithResources bounds build concurrency, document memory and generation
// rate.
func WithResources(rc *resource.Controller) Option {
	return func(o *Options) { o.Resources = rc }
}

// WithRouter sets the blob router used by the built-in loaders.
func WithRouter(r *blobstore.Router) Option {
	return func(o *Options) { o.Router = r }
}

// WithLoader installs or replaces the loader for a source kind.
func WithLoader(kind SourceKind, l source.Loader) Option {
	return func(o *Options) {
		if o.Loaders == nil {
			o.Loaders = make(map[SourceKind]source.Loader)
		}
		o.Loaders[kind] = l
	}
}

// WithSkipFailed makes Load omit documents that fail to build instead of
// failing as a whole.
func WithSkipFailed(skip bool) Option {
	return func(o *Options) { o.SkipFailed = skip }
}

// WithDocumentOptions passes options to every document build.
func WithDocumentOptions(opts ...document.Option) Option {
	return func(o *Options) { o.DocOptions = append(o.DocOptions, opts...) }
}

// WithBuildHook sets a callback invoked after every document build.
func WithBuildHook(h BuildHook) Option {
	return func(o *Options) { o.OnBuild = h }
}

func applyOptions(optFns []Option) Options {
	var o Options
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Router == nil {
		o.Router = blobstore.NewRouter()
	}

	loaders := map[SourceKind]source.Loader{
		Chembl:       source.NewChembl(o.Router),
		ChemblSQLite: source.NewSQLite(o.Router),
		SMILES:       source.NewSMILES(o.Router),
	}
	for k, l := range o.Loaders {
		loaders[k] = l
	}
	o.Loaders = loaders
	return o
}
