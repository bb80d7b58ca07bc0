package validator

import (
	"github.com/erraggy/apinorm/internal/issues"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
)

// Severity indicates the severity level of a validation issue
type Severity = issues.Severity

const (
	// SeverityError indicates a violation that makes the document invalid
	SeverityError = issues.SeverityError
	// SeverityWarning indicates a recommendation that does not block processing
	SeverityWarning = issues.SeverityWarning
)

// Schema URLs of the Postman export formats checked in strict mode.
const (
	CollectionSchemaURL  = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"
	EnvironmentSchemaURL = "https://schema.getpostman.com/json/environment/v1.0.0/environment.json"
)

const (
	// defaultErrorCapacity is the initial capacity for error slices
	defaultErrorCapacity = 10
)

// Violation is a single structural problem found in a document.
type Violation = issues.Issue

// ValidationResult contains the results of validating one document.
type ValidationResult struct {
	// Kind is the kind the document was validated as
	Kind DocumentKind
	// Valid is true if no errors were found (warnings are allowed)
	Valid bool
	// Errors contains all violations with error severity, in discovery order
	Errors []Violation
	// Warnings contains all violations with warning severity
	Warnings []Violation
	// ErrorCount is the total number of errors
	ErrorCount int
	// WarningCount is the total number of warnings
	WarningCount int
}

// Violations returns errors followed by warnings.
func (r *ValidationResult) Violations() []Violation {
	out := make([]Violation, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}

// Err returns a *oaserrors.ValidationError carrying every error when the
// document is invalid, and nil otherwise.
func (r *ValidationResult) Err(source string) error {
	if r.Valid {
		return nil
	}
	return &oaserrors.ValidationError{
		Source:     source,
		Kind:       r.Kind.String(),
		Violations: r.Errors,
	}
}

// Validator handles structural validation of Postman and OpenAPI documents.
type Validator struct {
	// StrictMode enables the additional checks of the stricter export format
	StrictMode bool
	// IncludeWarnings determines whether warnings are reported
	IncludeWarnings bool
}

// New creates a new Validator instance with default settings
func New() *Validator {
	return &Validator{
		IncludeWarnings: true,
	}
}

// Validate validates doc with the default settings and returns every
// violation, errors first.
func Validate(doc *node.Node, kind DocumentKind) []Violation {
	return New().Validate(doc, kind).Violations()
}

// Validate validates doc as the given kind. KindAuto detects the kind
// first; an unrecognized document yields exactly one violation and no
// further checks. An explicit kind is validated by that kind's rules even
// when the document's other discriminators are missing.
func (v *Validator) Validate(doc *node.Node, kind DocumentKind) *ValidationResult {
	result := &ValidationResult{
		Kind:   kind,
		Errors: make([]Violation, 0, defaultErrorCapacity),
	}

	if kind == KindAuto {
		detected, err := DetectKind(doc)
		if err != nil {
			if mde, ok := err.(*oaserrors.MalformedDocumentError); ok {
				result.Errors = append(result.Errors, mde.Violations...)
			}
			return v.finish(result)
		}
		kind = detected
		result.Kind = detected
	}

	switch kind {
	case KindCollection:
		v.validateCollection(doc, result)
	case KindEnvironment:
		v.validateEnvironment(doc, result)
	case KindOpenAPI:
		result.Errors = append(result.Errors, ValidateOpenAPI(doc)...)
	default:
		v.addError(result, "", "unsupported document kind "+kind.String(), withField("document"))
	}
	return v.finish(result)
}

func (v *Validator) finish(result *ValidationResult) *ValidationResult {
	result.ErrorCount = len(result.Errors)
	result.WarningCount = len(result.Warnings)
	result.Valid = result.ErrorCount == 0
	if !v.IncludeWarnings {
		result.Warnings = nil
		result.WarningCount = 0
	}
	return result
}

// addError appends an error-severity violation.
func (v *Validator) addError(result *ValidationResult, path, message string, opts ...func(*Violation)) {
	err := Violation{
		Path:     path,
		Message:  message,
		Severity: SeverityError,
	}
	for _, opt := range opts {
		opt(&err)
	}
	result.Errors = append(result.Errors, err)
}

// addWarning appends a warning-severity violation.
func (v *Validator) addWarning(result *ValidationResult, path, message string, opts ...func(*Violation)) {
	warn := Violation{
		Path:     path,
		Message:  message,
		Severity: SeverityWarning,
	}
	for _, opt := range opts {
		opt(&warn)
	}
	result.Warnings = append(result.Warnings, warn)
}

// withField sets the Field on a Violation.
func withField(field string) func(*Violation) {
	return func(e *Violation) { e.Field = field }
}

// withValue sets the Value on a Violation.
func withValue(value any) func(*Violation) {
	return func(e *Violation) { e.Value = value }
}

// requireString checks that obj carries a string under field.
func (v *Validator) requireString(result *ValidationResult, obj *node.Node, path, field string) {
	val, ok := obj.Get(field)
	if !ok {
		v.addError(result, path, "missing required field", withField(field))
		return
	}
	if _, isString := val.StringValue(); !isString {
		v.addError(result, path, "must be a string, got "+describe(val), withField(field), withValue(val.ToValue()))
	}
}

// requireArray checks that obj carries an array under field and returns it.
func (v *Validator) requireArray(result *ValidationResult, obj *node.Node, path, field string) (*node.Node, bool) {
	val, ok := obj.Get(field)
	if !ok {
		v.addError(result, path, "missing required field", withField(field))
		return nil, false
	}
	if !val.IsArray() {
		v.addError(result, path, "must be an array, got "+describe(val), withField(field))
		return nil, false
	}
	return val, true
}
