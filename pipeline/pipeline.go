package pipeline

import (
	"fmt"

	"github.com/erraggy/apinorm/fixer"
	"github.com/erraggy/apinorm/logging"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/stripper"
	"github.com/erraggy/apinorm/validator"
)

// Logger is the logging interface accepted by WithLogger.
type Logger = logging.Logger

// Stage names the pipeline step that produced a change.
type Stage string

const (
	// StageRename overwrites the collection or environment display name
	StageRename Stage = "rename"
	// StageFix applies the patch rules to OpenAPI documents
	StageFix Stage = "fix"
	// StageStrip removes metadata keys
	StageStrip Stage = "strip"
)

// Change is one entry of the change log.
type Change struct {
	Stage       Stage
	Path        string
	Description string
}

// String returns the change as a single log line.
func (c Change) String() string {
	path := c.Path
	if path == "" {
		path = "document"
	}
	return fmt.Sprintf("[%s] %s: %s", c.Stage, path, c.Description)
}

// Result is the outcome of a successful Normalize call.
type Result struct {
	// Document is the normalized tree (the same tree that was passed in)
	Document *node.Node
	// Kind is the resolved document kind
	Kind validator.DocumentKind
	// Warnings holds non-blocking validation findings
	Warnings []validator.Violation
	// Fixes holds the patch rules applied (OpenAPI only)
	Fixes []fixer.Fix
	// Strip reports the removed metadata keys
	Strip *stripper.Report
	// Changes lists every change in application order
	Changes []Change
}

// Changed reports whether the run modified the document.
func (r *Result) Changed() bool {
	return len(r.Changes) > 0
}

// ChangeLog renders one line per change.
func (r *Result) ChangeLog() []string {
	lines := make([]string, len(r.Changes))
	for i, c := range r.Changes {
		lines[i] = c.String()
	}
	return lines
}

// Pipeline normalizes Postman and OpenAPI documents.
type Pipeline struct {
	validator       *validator.Validator
	fixer           *fixer.Fixer
	metadataKeys    []string
	collectionName  string
	environmentName string
	preserveSchema  bool
	logger          Logger
}

// New creates a Pipeline from options.
func New(opts ...Option) (*Pipeline, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: invalid options: %w", err)
	}

	fixOpts := []fixer.Option{
		fixer.WithPreferredServer(cfg.preferredServer),
		fixer.WithLogger(cfg.logger.With("stage", string(StageFix))),
	}
	if cfg.serverDescription != "" {
		fixOpts = append(fixOpts, fixer.WithServerDescription(cfg.serverDescription))
	}
	if cfg.metadataKeys != nil {
		fixOpts = append(fixOpts, fixer.WithMetadataKeys(cfg.metadataKeys...))
	}
	if len(cfg.enabledFixes) > 0 {
		fixOpts = append(fixOpts, fixer.WithEnabledFixes(cfg.enabledFixes...))
	}
	f, err := fixer.New(fixOpts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}

	v := validator.New()
	v.StrictMode = cfg.strictMode

	return &Pipeline{
		validator:       v,
		fixer:           f,
		metadataKeys:    cfg.metadataKeys,
		collectionName:  cfg.collectionName,
		environmentName: cfg.environmentName,
		preserveSchema:  cfg.preserveSchema,
		logger:          cfg.logger,
	}, nil
}

// Validate runs the structural validator with the pipeline's settings and
// returns every violation, errors first.
func (p *Pipeline) Validate(doc *node.Node, kind validator.DocumentKind) []validator.Violation {
	return p.validator.Validate(doc, kind).Violations()
}

// Normalize runs the full pipeline on doc, modifying it in place.
//
// Postman documents that fail validation return *oaserrors.ValidationError
// carrying every violation and are left untouched. A document whose kind
// cannot be resolved returns *oaserrors.MalformedDocumentError.
func (p *Pipeline) Normalize(doc *node.Node, kind validator.DocumentKind) (*Result, error) {
	if doc == nil {
		return nil, &oaserrors.MalformedDocumentError{Message: "nil document"}
	}
	if kind == validator.KindAuto {
		detected, err := validator.DetectKind(doc)
		if err != nil {
			return nil, err
		}
		kind = detected
	}
	log := p.logger.With("kind", kind.String())
	res := &Result{Document: doc, Kind: kind}

	switch kind {
	case validator.KindCollection, validator.KindEnvironment:
		vr := p.validator.Validate(doc, kind)
		for _, w := range vr.Warnings {
			log.Warn("validation warning", "at", w.Locator(), "message", w.Message)
		}
		if !vr.Valid {
			log.Debug("validation failed", "errors", vr.ErrorCount)
			return nil, vr.Err("")
		}
		res.Warnings = vr.Warnings
		p.rename(doc, kind, res)
	case validator.KindOpenAPI:
		fr, err := p.fixer.Fix(doc)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		res.Fixes = fr.Fixes
		for _, f := range fr.Fixes {
			res.Changes = append(res.Changes, Change{Stage: StageFix, Path: f.Path, Description: f.Description})
		}
		log.Debug("patch rules applied", "fixes", fr.FixCount)
	default:
		return nil, &oaserrors.ConfigError{Option: "kind", Value: kind.String(), Message: "unsupported document kind"}
	}

	report, err := p.strip(doc, kind)
	if err != nil {
		return nil, err
	}
	res.Strip = report
	for _, rm := range report.Removed {
		res.Changes = append(res.Changes, Change{Stage: StageStrip, Path: rm.String(), Description: "removed " + rm.Key})
	}
	log.Debug("metadata stripped", "removed", report.Count())
	return res, nil
}

// rename overwrites the display name when one is configured for the kind.
func (p *Pipeline) rename(doc *node.Node, kind validator.DocumentKind, res *Result) {
	target, path := doc, "name"
	name := p.environmentName
	if kind == validator.KindCollection {
		target, path = doc.Lookup("info"), "info.name"
		name = p.collectionName
	}
	if name == "" {
		return
	}
	if current, _ := target.Lookup("name").StringValue(); current == name {
		return
	}
	target.Set("name", node.String(name))
	res.Changes = append(res.Changes, Change{Stage: StageRename, Path: path, Description: fmt.Sprintf("set name to %q", name)})
}

func (p *Pipeline) strip(doc *node.Node, kind validator.DocumentKind) (*stripper.Report, error) {
	keys := p.metadataKeys
	if keys == nil {
		keys = DefaultMetadataKeys(kind)
	}
	var opts []stripper.Option
	if p.preserveSchema {
		opts = append(opts, stripper.WithPreserved("info.schema", "schema"))
	}
	report, err := stripper.Strip(doc, keys, opts...)
	if err != nil {
		return nil, fmt.Errorf("pipeline: %w", err)
	}
	return report, nil
}

// DefaultMetadataKeys returns the strip preset used for kind when no keys
// are configured: the Postman export keys for collections and
// environments, and the smaller OpenAPI set otherwise.
func DefaultMetadataKeys(kind validator.DocumentKind) []string {
	switch kind {
	case validator.KindCollection, validator.KindEnvironment:
		return stripper.PostmanMetadataKeys()
	default:
		return stripper.OpenAPIMetadataKeys()
	}
}
