package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"

	json "github.com/goccy/go-json"

	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/postman"
	"github.com/erraggy/apinorm/validator"
)

// ValidateFlags contains flags for the validate command
type ValidateFlags struct {
	commonFlags
	Kind       string
	Strict     bool
	Schema     bool
	NoWarnings bool
	Format     string
}

// SetupValidateFlags creates and configures a FlagSet for the validate command.
// Returns the FlagSet and a ValidateFlags struct with bound flag variables.
func SetupValidateFlags() (*flag.FlagSet, *ValidateFlags) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	flags := &ValidateFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Kind, "kind", "auto", "document kind: auto, collection, environment or openapi")
	fs.BoolVar(&flags.Strict, "strict", false, "enable strict validation (default: $APINORM_STRICT)")
	fs.BoolVar(&flags.Schema, "schema", false, "also check Postman documents against their published JSON Schema (warnings only)")
	fs.BoolVar(&flags.NoWarnings, "no-warnings", false, "suppress warnings")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text or json")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apinorm validate [flags] <dir|file|->...\n\n")
		cliutil.Writef(fs.Output(), "Structurally validate Postman collections, Postman environments and\n")
		cliutil.Writef(fs.Output(), "normalized OpenAPI documents. Every violation is reported in one pass.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apinorm validate postman/\n")
		cliutil.Writef(fs.Output(), "  apinorm validate --strict --schema demo.postman_collection.json\n")
		cliutil.Writef(fs.Output(), "  apinorm fix -q openapi.yml | apinorm validate --kind openapi -\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    All documents valid (warnings allowed)\n")
		cliutil.Writef(fs.Output(), "  1    One or more documents invalid or unreadable\n")
	}

	return fs, flags
}

// validateReport is the JSON output for one document.
type validateReport struct {
	File     string   `json:"file"`
	Kind     string   `json:"kind"`
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// HandleValidate executes the validate command
func HandleValidate(args []string) error {
	fs, flags := SetupValidateFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("validate command requires at least one directory, file, or '-' for stdin")
	}
	if err := ValidateOutputFormat(flags.Format, FormatText, FormatJSON); err != nil {
		return err
	}
	kind, err := validator.ParseKind(flags.Kind)
	if err != nil {
		return err
	}
	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	v := validator.New()
	v.StrictMode = flags.Strict || cfg.StrictMode
	v.IncludeWarnings = !flags.NoWarnings

	var files []postman.File
	var paths []string
	for _, arg := range fs.Args() {
		if arg == StdinFilePath {
			files = append(files, postman.File{Path: StdinFilePath, Kind: kind})
			continue
		}
		paths = append(paths, arg)
	}
	found, err := collectFiles(paths)
	if err != nil {
		return err
	}
	files = append(files, found...)

	ctx, cancel := commandContext()
	defer cancel()
	schemas := map[string][]byte{}

	b := &batch{}
	var reports []validateReport
	for _, f := range files {
		b.total++
		docKind := kind
		if docKind == validator.KindAuto {
			docKind = f.Kind
		}
		doc, err := loadForValidation(f.Path)
		if err != nil {
			b.fail(stderr, FormatSpecPath(f.Path), err)
			reports = append(reports, validateReport{File: f.Path, Kind: docKind.String(), Errors: []string{err.Error()}})
			continue
		}

		result := v.Validate(doc, docKind)
		if flags.Schema && !flags.NoWarnings {
			warnings, err := schemaWarnings(ctx, doc, result.Kind, schemas)
			if err != nil {
				cliutil.Writef(stderr, "⚠ %s: schema check skipped: %v\n", FormatSpecPath(f.Path), err)
			}
			result.Warnings = append(result.Warnings, warnings...)
			result.WarningCount = len(result.Warnings)
		}
		if !result.Valid {
			b.failed++
		}

		if flags.Format == FormatJSON {
			reports = append(reports, toReport(f.Path, result))
			continue
		}
		switch {
		case !result.Valid:
			printViolations(stdout, "✗ "+FormatSpecPath(f.Path)+" ("+result.Kind.String()+")", result.Violations())
		case !flags.Quiet:
			cliutil.Writef(stdout, "✓ %s (%s)\n", FormatSpecPath(f.Path), result.Kind)
			for _, w := range result.Warnings {
				cliutil.Writef(stdout, "  %s\n", w)
			}
		}
	}

	if flags.Format == FormatJSON {
		data, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling report: %w", err)
		}
		cliutil.Writef(stdout, "%s\n", data)
	} else if !flags.Quiet {
		cliutil.Writef(stdout, "\n%s\n", b.summary())
	}
	return b.err()
}

// loadForValidation reads a file as JSON, or stdin as JSON or YAML.
func loadForValidation(path string) (*node.Node, error) {
	if path != StdinFilePath {
		return postman.LoadFile(path)
	}
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}
	return node.Decode(data)
}

// schemaWarnings checks a Postman document against its published schema.
// Downloaded schemas are reused for the rest of the run.
func schemaWarnings(ctx context.Context, doc *node.Node, kind validator.DocumentKind, cache map[string][]byte) ([]validator.Violation, error) {
	var schemaURL string
	switch kind {
	case validator.KindCollection:
		schemaURL, _ = doc.Lookup("info", "schema").StringValue()
		if schemaURL == "" {
			schemaURL = validator.CollectionSchemaURL
		}
	case validator.KindEnvironment:
		schemaURL = validator.EnvironmentSchemaURL
	default:
		return nil, nil
	}

	schema, ok := cache[schemaURL]
	if !ok {
		data, err := postman.FetchSchema(ctx, schemaURL)
		if err != nil {
			return nil, err
		}
		cache[schemaURL] = data
		schema = data
	}
	return validator.CheckSchema(doc, schema)
}

func toReport(path string, r *validator.ValidationResult) validateReport {
	rep := validateReport{File: path, Kind: r.Kind.String(), Valid: r.Valid}
	for _, e := range r.Errors {
		rep.Errors = append(rep.Errors, e.String())
	}
	for _, w := range r.Warnings {
		rep.Warnings = append(rep.Warnings, w.String())
	}
	return rep
}
