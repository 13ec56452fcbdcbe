package registry

import (
	"errors"
	"fmt"
)

var (
	// ErrConfiguration is matched by every *ConfigError.
	ErrConfiguration = errors.New("invalid document configuration")

	// ErrUnsupportedSource is matched by every *UnsupportedSourceError.
	ErrUnsupportedSource = errors.New("unsupported source")

	// ErrNilGenerator is returned by Load when no generator is given.
	ErrNilGenerator = errors.New("registry: nil generator")
)

// ConfigError reports an invalid Spec.
type ConfigError struct {
	Index  int
	Name   string
	Field  string
	Reason string
	cause  error
}

func (e *ConfigError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("document spec #%d: %s: %s", e.Index, e.Field, e.Reason)
	}
	if e.cause != nil {
		return fmt.Sprintf("document %q: %s: %s: %v", e.Name, e.Field, e.Reason, e.cause)
	}
	return fmt.Sprintf("document %q: %s: %s", e.Name, e.Field, e.Reason)
}

func (e *ConfigError) Unwrap() error { return e.cause }

func (e *ConfigError) Is(target error) bool { return target == ErrConfiguration }

// UnsupportedSourceError reports a recognized source kind without a loader.
type UnsupportedSourceError struct {
	Name   string
	Source SourceKind
}

func (e *UnsupportedSourceError) Error() string {
	return fmt.Sprintf("document %q: source %s is not supported", e.Name, e.Source)
}

func (e *UnsupportedSourceError) Is(target error) bool { return target == ErrUnsupportedSource }

// LoadError wraps the failure to build one document.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load document %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }
