package oaserrors

import (
	"errors"
	"fmt"

	"github.com/erraggy/apinorm/internal/issues"
)

// Sentinel errors for use with errors.Is().
// These allow quick checks without type assertions.
var (
	// ErrAcquisition indicates a document could not be acquired.
	ErrAcquisition = errors.New("acquisition error")

	// ErrMalformedDocument indicates a document with an unusable top-level shape.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrCycle indicates a structural cycle in the document tree.
	ErrCycle = errors.New("structural cycle")

	// ErrValidation indicates structural validation failed.
	ErrValidation = errors.New("validation error")

	// ErrResourceLimit indicates a resource limit was exceeded.
	ErrResourceLimit = errors.New("resource limit exceeded")

	// ErrConfig indicates an invalid configuration.
	ErrConfig = errors.New("configuration error")

	// ErrPublish indicates a normalized document could not be uploaded.
	ErrPublish = errors.New("publish error")
)

// AcquisitionError represents a failure to obtain a document before the
// engine runs: a non-success remote response, a missing or unparseable
// envelope field, or a missing or invalid local file.
type AcquisitionError struct {
	// Source is the URL or file path the document was read from
	Source string
	// StatusCode is the HTTP status for remote sources (0 otherwise)
	StatusCode int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *AcquisitionError) Error() string {
	msg := "acquisition error"
	if e.Source != "" {
		msg += " for " + e.Source
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *AcquisitionError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *AcquisitionError) Is(target error) bool {
	return target == ErrAcquisition
}

// MalformedDocumentError represents a document whose shape prevents any
// further processing: an unrecognized or ambiguous kind, or a cycle.
type MalformedDocumentError struct {
	// Path is the locator of the offending node ("" for the root)
	Path string
	// IsCycle is true if the tree revisits a container
	IsCycle bool
	// Message describes the problem
	Message string
	// Violations holds the top-level violation when the kind was not recognized
	Violations []issues.Issue
}

// Error returns a human-readable error message.
func (e *MalformedDocumentError) Error() string {
	msg := "malformed document"
	if e.IsCycle {
		msg = "structural cycle"
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
// Matches ErrMalformedDocument, and also ErrCycle when IsCycle is set.
func (e *MalformedDocumentError) Is(target error) bool {
	if target == ErrMalformedDocument {
		return true
	}
	return target == ErrCycle && e.IsCycle
}

// ValidationError carries every structural violation found in one pass.
type ValidationError struct {
	// Source identifies the document (file path, URL, or a label)
	Source string
	// Kind is the document kind that was validated
	Kind string
	// Violations holds all violations, in discovery order
	Violations []issues.Issue
}

// Error returns a human-readable error message.
func (e *ValidationError) Error() string {
	msg := "validation error"
	if e.Source != "" {
		msg += " in " + e.Source
	}
	if e.Kind != "" {
		msg += " (" + e.Kind + ")"
	}
	switch len(e.Violations) {
	case 0:
	case 1:
		msg += ": " + e.Violations[0].Locator() + ": " + e.Violations[0].Message
	default:
		msg += fmt.Sprintf(": %d violations, first: %s: %s", len(e.Violations), e.Violations[0].Locator(), e.Violations[0].Message)
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ResourceLimitError represents a resource exhaustion condition.
type ResourceLimitError struct {
	// ResourceType identifies what limit was exceeded, e.g. "walk_depth"
	ResourceType string
	// Limit is the configured maximum value
	Limit int64
	// Actual is the value that exceeded the limit (may be 0 if unknown)
	Actual int64
	// Message provides additional context
	Message string
}

// Error returns a human-readable error message.
func (e *ResourceLimitError) Error() string {
	msg := "resource limit exceeded"
	if e.ResourceType != "" {
		msg += ": " + e.ResourceType
	}
	if e.Limit > 0 {
		msg += fmt.Sprintf(" (limit: %d", e.Limit)
		if e.Actual > 0 {
			msg += fmt.Sprintf(", actual: %d", e.Actual)
		}
		msg += ")"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	return msg
}

// Is reports whether target matches this error type.
func (e *ResourceLimitError) Is(target error) bool {
	return target == ErrResourceLimit
}

// ConfigError represents an invalid configuration or input.
type ConfigError struct {
	// Option is the name of the problematic configuration option
	Option string
	// Value is the invalid value that was provided (may be nil)
	Value any
	// Message describes the configuration error
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *ConfigError) Error() string {
	msg := "configuration error"
	if e.Option != "" {
		msg += " for " + e.Option
	}
	if e.Value != nil {
		msg += fmt.Sprintf(" (value: %v)", e.Value)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *ConfigError) Is(target error) bool {
	return target == ErrConfig
}

// PublishError represents a failed upload of a normalized document.
type PublishError struct {
	// Target is the endpoint the document was sent to
	Target string
	// Name is the collection or environment name, when known
	Name string
	// StatusCode is the HTTP status returned (0 if the request never completed)
	StatusCode int
	// Message describes the failure
	Message string
	// Cause is the underlying error, if any
	Cause error
}

// Error returns a human-readable error message.
func (e *PublishError) Error() string {
	msg := "publish error"
	if e.Name != "" {
		msg += " for " + e.Name
	}
	if e.Target != "" {
		msg += " to " + e.Target
	}
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap returns the underlying cause for error chaining.
func (e *PublishError) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error type.
func (e *PublishError) Is(target error) bool {
	return target == ErrPublish
}
