package fixer

import (
	"fmt"

	"github.com/erraggy/apinorm/logging"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/stripper"
)

// FixType identifies the type of fix applied
type FixType string

const (
	// FixTypeRemovedRequestBody indicates a requestBody was removed from a get or delete operation
	FixTypeRemovedRequestBody FixType = "removed-request-body"
	// FixTypePinnedServers indicates the servers array was replaced with the preferred server
	FixTypePinnedServers FixType = "pinned-servers"
	// FixTypeAddedOperationID indicates a missing operationId was synthesized
	FixTypeAddedOperationID FixType = "added-operation-id"
	// FixTypeCoercedParameters indicates a non-array parameters value was replaced with an empty array
	FixTypeCoercedParameters FixType = "coerced-parameters"
	// FixTypeStrippedParameterMetadata indicates metadata keys were removed from a parameter
	FixTypeStrippedParameterMetadata FixType = "stripped-parameter-metadata"
	// FixTypeAddedParameterSchema indicates a string schema was added to a parameter
	FixTypeAddedParameterSchema FixType = "added-parameter-schema"
	// FixTypeRequiredPathParameter indicates a path parameter was marked required
	FixTypeRequiredPathParameter FixType = "required-path-parameter"
	// FixTypeWrappedRequestExample indicates a request example was moved into a new schema
	FixTypeWrappedRequestExample FixType = "wrapped-request-example"
	// FixTypeAddedRequestSchema indicates a permissive schema was added to a request body
	FixTypeAddedRequestSchema FixType = "added-request-schema"
	// FixTypeAddedResponseSchema indicates a permissive schema was added to a response
	FixTypeAddedResponseSchema FixType = "added-response-schema"
)

// AllFixTypes returns every fix type in application order.
func AllFixTypes() []FixType {
	return []FixType{
		FixTypeRemovedRequestBody,
		FixTypePinnedServers,
		FixTypeAddedOperationID,
		FixTypeCoercedParameters,
		FixTypeStrippedParameterMetadata,
		FixTypeAddedParameterSchema,
		FixTypeRequiredPathParameter,
		FixTypeWrappedRequestExample,
		FixTypeAddedRequestSchema,
		FixTypeAddedResponseSchema,
	}
}

// ParseFixType returns the FixType named s.
func ParseFixType(s string) (FixType, error) {
	for _, ft := range AllFixTypes() {
		if string(ft) == s {
			return ft, nil
		}
	}
	return "", &oaserrors.ConfigError{Option: "fix type", Value: s, Message: "unknown fix type"}
}

// DefaultServerDescription is the description given to the pinned server
// when none is configured.
const DefaultServerDescription = "Primary API server"

// Fix represents a single fix applied to the document
type Fix struct {
	// Type identifies the category of fix
	Type FixType
	// Path is the locator of the fixed location (e.g., "paths./users/{id}.get.parameters[0]")
	Path string
	// Description is a human-readable description of the fix
	Description string
	// Before is the state before the fix (nil if adding new element)
	Before any
	// After is the value that was added or changed (nil if removing)
	After any
}

// String returns the fix as a single log line.
func (f Fix) String() string {
	return fmt.Sprintf("[%s] %s: %s", f.Type, f.Path, f.Description)
}

// FixResult contains the results of a fix operation
type FixResult struct {
	// Document is the fixed document (the same tree that was passed in)
	Document *node.Node
	// Fixes contains all fixes applied, in application order
	Fixes []Fix
	// FixCount is the total number of fixes applied
	FixCount int
}

// HasFixes returns true if any fixes were applied
func (r *FixResult) HasFixes() bool {
	return r.FixCount > 0
}

// CountByType returns the number of fixes of each type.
func (r *FixResult) CountByType() map[FixType]int {
	counts := make(map[FixType]int)
	for _, f := range r.Fixes {
		counts[f.Type]++
	}
	return counts
}

// Fixer applies the patch rules to OpenAPI-shaped documents.
// A Fixer is immutable after construction and safe for concurrent use on
// different documents.
type Fixer struct {
	// PreferredServer replaces the servers array when set.
	// Server pinning is skipped when empty.
	PreferredServer string
	// ServerDescription is the description of the pinned server.
	ServerDescription string
	// MetadataKeys are removed from every parameter object.
	MetadataKeys []string
	// EnabledFixes specifies which fix types to apply.
	// If nil or empty, all fix types are enabled.
	EnabledFixes []FixType
	// Logger receives one debug record per applied fix.
	Logger logging.Logger
}

// Option is a function that configures a Fixer
type Option func(*fixConfig) error

// fixConfig holds configuration for a Fixer
type fixConfig struct {
	preferredServer   string
	serverDescription string
	metadataKeys      []string
	enabledFixes      []FixType
	logger            logging.Logger
}

// New creates a Fixer. Without options every fix is enabled, servers are
// left alone, and parameters are cleaned of the OpenAPI metadata preset.
func New(opts ...Option) (*Fixer, error) {
	cfg := &fixConfig{
		serverDescription: DefaultServerDescription,
		metadataKeys:      stripper.OpenAPIMetadataKeys(),
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("fixer: invalid options: %w", err)
		}
	}
	return &Fixer{
		PreferredServer:   cfg.preferredServer,
		ServerDescription: cfg.serverDescription,
		MetadataKeys:      cfg.metadataKeys,
		EnabledFixes:      cfg.enabledFixes,
		Logger:            logging.OrNop(cfg.logger),
	}, nil
}

// WithPreferredServer sets the URL the servers array is pinned to.
func WithPreferredServer(url string) Option {
	return func(cfg *fixConfig) error {
		cfg.preferredServer = url
		return nil
	}
}

// WithServerDescription sets the description of the pinned server.
func WithServerDescription(desc string) Option {
	return func(cfg *fixConfig) error {
		cfg.serverDescription = desc
		return nil
	}
}

// WithMetadataKeys sets the keys removed from parameter objects.
func WithMetadataKeys(keys ...string) Option {
	return func(cfg *fixConfig) error {
		cfg.metadataKeys = append([]string(nil), keys...)
		return nil
	}
}

// WithEnabledFixes specifies which fix types to apply
func WithEnabledFixes(fixes ...FixType) Option {
	return func(cfg *fixConfig) error {
		for _, ft := range fixes {
			if _, err := ParseFixType(string(ft)); err != nil {
				return err
			}
		}
		cfg.enabledFixes = append([]FixType(nil), fixes...)
		return nil
	}
}

// WithLogger sets the logger that records applied fixes.
func WithLogger(l logging.Logger) Option {
	return func(cfg *fixConfig) error {
		cfg.logger = l
		return nil
	}
}

// Fix applies every enabled rule to doc in order and returns the fixes.
// The document is modified in place. Only a non-object root is an error;
// everything else the rules cannot use is skipped.
func (f *Fixer) Fix(doc *node.Node) (*FixResult, error) {
	if !doc.IsObject() {
		return nil, &oaserrors.MalformedDocumentError{Message: "OpenAPI document root must be an object"}
	}

	r := &run{f: f, log: logging.OrNop(f.Logger), result: &FixResult{Document: doc, Fixes: make([]Fix, 0)}}
	r.removeBodies(doc)
	r.pinServers(doc)
	r.repairOperations(doc)

	r.result.FixCount = len(r.result.Fixes)
	return r.result, nil
}

// isFixEnabled checks if a fix type is enabled.
func (f *Fixer) isFixEnabled(fixType FixType) bool {
	if len(f.EnabledFixes) == 0 {
		return true // all fixes enabled by default
	}
	for _, ft := range f.EnabledFixes {
		if ft == fixType {
			return true
		}
	}
	return false
}

// run carries the state of one Fix call.
type run struct {
	f      *Fixer
	log    logging.Logger
	result *FixResult
}

func (r *run) record(fix Fix) {
	r.result.Fixes = append(r.result.Fixes, fix)
	r.log.Debug("applied fix", "type", string(fix.Type), "path", fix.Path)
}
