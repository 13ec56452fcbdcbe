package fpstore

import (
	"errors"

	"github.com/hupe1980/fpstore/document"
	"github.com/hupe1980/fpstore/fingerprint"
	"github.com/hupe1980/fpstore/registry"
	"github.com/hupe1980/fpstore/resource"
	"github.com/hupe1980/fpstore/source"
)

var (
	// ErrDocumentNotFound is returned by DB.Document for unknown names.
	ErrDocumentNotFound = errors.New("document not found")

	// ErrNoGenerator is returned by Open without WithGenerator.
	ErrNoGenerator = errors.New("no fingerprint generator configured")
)

// Sentinels of the underlying packages, matched with errors.Is.
var (
	ErrConfiguration     = registry.ErrConfiguration
	ErrUnsupportedSource = registry.ErrUnsupportedSource
	ErrGeneration        = document.ErrGeneration
	ErrLengthMismatch    = document.ErrLengthMismatch
	ErrIndexOutOfRange   = document.ErrIndexOutOfRange
	ErrWidthMismatch     = fingerprint.ErrWidthMismatch
	ErrInvalidKind       = fingerprint.ErrInvalidKind
	ErrChecksumMismatch  = source.ErrChecksumMismatch
	ErrMemoryLimit       = resource.ErrMemoryLimit
)
