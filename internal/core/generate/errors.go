package generate

import (
	"errors"
	"fmt"

	"scopegen/internal/core/scopedoc"
)

// ErrMissingCredential is wrapped by backends that have no API key
var ErrMissingCredential = errors.New("missing generation backend credential")

// ConfigurationError means the backend is unconfigured or unreachable. It is never retried.
type ConfigurationError struct {
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("generation backend unavailable: %v", e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// EmptyResponseError means no usable text came back after the length retry
type EmptyResponseError struct {
	Reason   CompletionReason
	Attempts int
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("empty backend response after %d attempts (completion=%s)", e.Attempts, e.Reason)
}

// MalformedOutputError means the backend text is not JSON
type MalformedOutputError struct {
	Err      error
	Attempts int
}

func (e *MalformedOutputError) Error() string {
	return fmt.Sprintf("backend did not return valid JSON: %v", e.Err)
}

func (e *MalformedOutputError) Unwrap() error { return e.Err }

// SchemaValidationError carries every violation from the most recent attempt
type SchemaValidationError struct {
	Violations []scopedoc.Violation
	Attempts   int
}

func (e *SchemaValidationError) Error() string {
	if len(e.Violations) == 0 {
		return "scope document failed validation"
	}
	return fmt.Sprintf("scope document failed validation with %d violations, first: %s",
		len(e.Violations), e.Violations[0])
}
