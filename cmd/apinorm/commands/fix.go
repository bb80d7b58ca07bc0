package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/apinorm/fixer"
	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/internal/fileutil"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/pipeline"
	"github.com/erraggy/apinorm/validator"
)

// FixFlags contains flags for the fix command
type FixFlags struct {
	commonFlags
	Output            string
	Server            string
	ServerDescription string
	Fixes             string
	Keys              string
	Format            string
	Check             bool
}

// SetupFixFlags creates and configures a FlagSet for the fix command.
// Returns the FlagSet and a FixFlags struct with bound flag variables.
func SetupFixFlags() (*flag.FlagSet, *FixFlags) {
	fs := flag.NewFlagSet("fix", flag.ContinueOnError)
	flags := &FixFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Output, "o", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: stdout)")
	fs.StringVar(&flags.Server, "server", "", "pin the servers array to this URL (default: $APINORM_PREFERRED_SERVER)")
	fs.StringVar(&flags.ServerDescription, "server-description", "", "description of the pinned server")
	fs.StringVar(&flags.Fixes, "fixes", "", "comma-separated fix types to apply (default: all)")
	fs.StringVar(&flags.Keys, "keys", "", "comma-separated metadata keys to strip (default: _postman_id,_exporter_id)")
	fs.StringVar(&flags.Format, "format", "", "output format: json or yaml (default: same as input)")
	fs.BoolVar(&flags.Check, "check", false, "verify the repaired document and fail on any remaining defect")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apinorm fix [flags] <file|->\n\n")
		cliutil.Writef(fs.Output(), "Repair an OpenAPI document generated from a Postman collection.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nFix Types (applied in this order):\n")
		for _, ft := range fixer.AllFixTypes() {
			cliutil.Writef(fs.Output(), "  - %s\n", ft)
		}
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apinorm fix openapi.yml\n")
		cliutil.Writef(fs.Output(), "  apinorm fix -o fixed.json openapi.json\n")
		cliutil.Writef(fs.Output(), "  cat openapi.yml | apinorm fix -q - > fixed.yml\n")
		cliutil.Writef(fs.Output(), "  apinorm fix --fixes removed-request-body,added-operation-id openapi.yml\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Fixes applied successfully (or no fixes needed)\n")
		cliutil.Writef(fs.Output(), "  1    Failed to read, repair or write the document, or --check found defects\n")
	}

	return fs, flags
}

// HandleFix executes the fix command
func HandleFix(args []string) error {
	fs, flags := SetupFixFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return fmt.Errorf("fix command requires exactly one file path or '-' for stdin")
	}
	if flags.Format != "" {
		if err := ValidateOutputFormat(flags.Format, FormatJSON, FormatYAML); err != nil {
			return err
		}
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}

	specPath := fs.Arg(0)
	data, err := readInput(specPath)
	if err != nil {
		return err
	}
	doc, err := node.Decode(data)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", FormatSpecPath(specPath), err)
	}
	format := flags.Format
	if format == "" {
		format = FormatYAML
		if isJSON(data) {
			format = FormatJSON
		}
	}

	opts := []pipeline.Option{
		pipeline.WithPreferredServer(firstNonEmpty(flags.Server, cfg.PreferredServer)),
		pipeline.WithLogger(flags.logger()),
	}
	if desc := firstNonEmpty(flags.ServerDescription, cfg.ServerDescription); desc != "" {
		opts = append(opts, pipeline.WithServerDescription(desc))
	}
	if keys := splitList(flags.Keys); len(keys) > 0 {
		opts = append(opts, pipeline.WithMetadataKeys(keys...))
	}
	if names := splitList(flags.Fixes); len(names) > 0 {
		types := make([]fixer.FixType, 0, len(names))
		for _, name := range names {
			ft, err := fixer.ParseFixType(name)
			if err != nil {
				return err
			}
			types = append(types, ft)
		}
		opts = append(opts, pipeline.WithEnabledFixes(types...))
	}
	p, err := pipeline.New(opts...)
	if err != nil {
		return err
	}

	result, err := p.Normalize(doc, validator.KindOpenAPI)
	if err != nil {
		return fmt.Errorf("fixing %s: %w", FormatSpecPath(specPath), err)
	}

	// Diagnostics go to stderr to keep stdout clean for pipelining
	if !flags.Quiet {
		cliutil.Writef(stderr, "Document: %s\n", FormatSpecPath(specPath))
		cliutil.WriteList(stderr, "Changes", result.Changes)
		if result.Changed() {
			cliutil.Writef(stderr, "✓ Applied %s\n", cliutil.Count(len(result.Changes), "change", "changes"))
		} else {
			cliutil.Writef(stderr, "✓ No fixes needed\n")
		}
	}

	if flags.Check {
		if violations := validator.ValidateOpenAPI(result.Document); len(violations) > 0 {
			printViolations(stderr, "✗ "+FormatSpecPath(specPath), violations)
			return &oaserrors.ValidationError{Source: FormatSpecPath(specPath), Kind: validator.KindOpenAPI.String(), Violations: violations}
		}
	}

	out, err := MarshalDocument(result.Document, format)
	if err != nil {
		return fmt.Errorf("marshaling fixed document: %w", err)
	}
	if flags.Output != "" {
		if err := fileutil.WriteFile(flags.Output, out, fileutil.ReadableByAll); err != nil {
			return err
		}
		if !flags.Quiet {
			cliutil.Writef(stderr, "Output written to: %s\n", flags.Output)
		}
		return nil
	}
	if _, err := stdout.Write(out); err != nil {
		return fmt.Errorf("writing fixed document to stdout: %w", err)
	}
	return nil
}
