package domain

import "fmt"

// ConfigurationError reports an unusable provider selection or missing
// credentials. It is detected before any network call and is fatal to the
// affected item only.
type ConfigurationError struct {
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "configuration error: " + e.Reason
}

// ProviderError reports a network or vendor-side failure from an LLM call.
// The batch continues with the next resume.
type ProviderError struct {
	Vendor string
	Err    error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s provider error: %v", e.Vendor, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// PersistenceError reports a storage failure. Unlike per-item errors it
// terminates the whole batch run: results that cannot be saved are lost work.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure in %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ExtractionError reports that no usable text could be read from an uploaded
// document.
type ExtractionError struct {
	FileName string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("text extraction failed for %s: %v", e.FileName, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
