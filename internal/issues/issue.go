// Package issues provides the violation type shared by the validator and the
// pipeline.
package issues

import "fmt"

// Severity indicates how serious an issue is.
type Severity int

const (
	// SeverityError indicates a structural defect that rejects the document.
	SeverityError Severity = iota

	// SeverityWarning indicates a finding that does not block processing,
	// such as a remote schema mismatch.
	SeverityWarning
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue represents a single problem found in a document.
type Issue struct {
	// Path is the dotted locator of the node holding the problem
	// (e.g., "item[2].item[0].request"); empty for the root
	Path string
	// Field is the key within that node that is missing or mis-shaped
	Field string
	// Message is a human-readable description of the issue
	Message string
	// Severity indicates the severity level of the issue
	Severity Severity
	// Value is the offending value, when there is one
	Value any
}

// Locator joins Path and Field into a single dotted locator.
// The root document itself is reported as "document".
func (i Issue) Locator() string {
	switch {
	case i.Path == "" && i.Field == "":
		return "document"
	case i.Path == "":
		return i.Field
	case i.Field == "":
		return i.Path
	default:
		return i.Path + "." + i.Field
	}
}

// IsError reports whether the issue blocks the document.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// String returns a formatted string representation of the issue.
// Uses "✗" for errors and "⚠" for warnings.
func (i Issue) String() string {
	symbol := "?"
	switch i.Severity {
	case SeverityError:
		symbol = "✗"
	case SeverityWarning:
		symbol = "⚠"
	}
	return fmt.Sprintf("%s %s: %s", symbol, i.Locator(), i.Message)
}

// CountErrors returns the number of error-severity issues in list.
func CountErrors(list []Issue) int {
	n := 0
	for _, i := range list {
		if i.IsError() {
			n++
		}
	}
	return n
}
