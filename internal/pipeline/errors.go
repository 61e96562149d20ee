package pipeline

import (
	"errors"
	"fmt"
)

// ErrNoKeywords is the pipeline's only terminal error: without keywords no
// provider can be queried, so the caller must report failure to the user.
var ErrNoKeywords = errors.New("no usable keywords extracted from input")

// ProviderError wraps a failed upstream call. It is recovered locally: the
// affected section of the report degrades to empty values and processing
// continues.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// GenerationError wraps a failed narrative generation. The report is still
// assembled with a diagnostic placeholder narrative.
type GenerationError struct {
	Err error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("narrative generation: %v", e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// PersistenceError wraps a failed document-store write. The computed report
// is still returned to the caller.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("report persistence: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
