package commands

import (
	"bytes"
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/internal/fileutil"
	"github.com/erraggy/apinorm/pipeline"
	"github.com/erraggy/apinorm/postman"
)

// SanitizeFlags contains flags for the sanitize command
type SanitizeFlags struct {
	commonFlags
	Strict          bool
	KeepSchema      bool
	CollectionName  string
	EnvironmentName string
	Keys            string
	DryRun          bool
}

// SetupSanitizeFlags creates and configures a FlagSet for the sanitize command.
// Returns the FlagSet and a SanitizeFlags struct with bound flag variables.
func SetupSanitizeFlags() (*flag.FlagSet, *SanitizeFlags) {
	fs := flag.NewFlagSet("sanitize", flag.ContinueOnError)
	flags := &SanitizeFlags{}

	flags.register(fs)
	fs.BoolVar(&flags.Strict, "strict", false, "enable strict validation (default: $APINORM_STRICT)")
	fs.BoolVar(&flags.KeepSchema, "keep-schema", false, "keep the collection schema URL even if stripped keys include \"schema\"")
	fs.StringVar(&flags.CollectionName, "collection-name", "", "overwrite info.name of collections (default: $APINORM_COLLECTION_NAME)")
	fs.StringVar(&flags.EnvironmentName, "environment-name", "", "overwrite name of environments (default: $APINORM_ENVIRONMENT_NAME)")
	fs.StringVar(&flags.Keys, "keys", "", "comma-separated metadata keys to strip (default: Postman export keys)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "report changes without rewriting files")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apinorm sanitize [flags] <dir|file>...\n\n")
		cliutil.Writef(fs.Output(), "Validate Postman collections and environments and strip export metadata\n")
		cliutil.Writef(fs.Output(), "in place. Directories are searched recursively for *%s and\n", ".postman_collection.json")
		cliutil.Writef(fs.Output(), "*%s files. A file is rewritten only when its content changes.\n\n", ".postman_environment.json")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apinorm sanitize postman/\n")
		cliutil.Writef(fs.Output(), "  apinorm sanitize --dry-run --collection-name \"Public API\" postman/\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    All documents valid (and rewritten where needed)\n")
		cliutil.Writef(fs.Output(), "  1    One or more documents failed; the others were still processed\n")
	}

	return fs, flags
}

// HandleSanitize executes the sanitize command
func HandleSanitize(args []string) error {
	fs, flags := SetupSanitizeFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("sanitize command requires at least one directory or file")
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	opts := []pipeline.Option{
		pipeline.WithStrictMode(flags.Strict || cfg.StrictMode),
		pipeline.WithPreserveSchema(flags.KeepSchema),
		pipeline.WithCollectionName(firstNonEmpty(flags.CollectionName, cfg.CollectionName)),
		pipeline.WithEnvironmentName(firstNonEmpty(flags.EnvironmentName, cfg.EnvironmentName)),
		pipeline.WithLogger(flags.logger()),
	}
	if keys := splitList(flags.Keys); len(keys) > 0 {
		opts = append(opts, pipeline.WithMetadataKeys(keys...))
	}
	p, err := pipeline.New(opts...)
	if err != nil {
		return err
	}

	files, err := collectFiles(fs.Args())
	if err != nil {
		return err
	}

	b := &batch{}
	for _, f := range files {
		b.total++
		changes, wrote, err := sanitizeFile(p, f, flags.DryRun)
		if err != nil {
			b.fail(stderr, f.Path, err)
			continue
		}
		if flags.Quiet {
			continue
		}
		switch {
		case wrote:
			cliutil.Writef(stdout, "✓ %s: %s\n", f.Path, cliutil.Count(len(changes), "change", "changes"))
		case len(changes) > 0:
			cliutil.Writef(stdout, "~ %s: %s (not written)\n", f.Path, cliutil.Count(len(changes), "change", "changes"))
		default:
			cliutil.Writef(stdout, "✓ %s: unchanged\n", f.Path)
		}
		for _, c := range changes {
			cliutil.Writef(stdout, "    %s\n", c)
		}
	}

	if !flags.Quiet {
		cliutil.Writef(stdout, "\n%s\n", b.summary())
	}
	return b.err()
}

// sanitizeFile normalizes one file and rewrites it when the serialized
// result differs from the serialized original.
func sanitizeFile(p *pipeline.Pipeline, f postman.File, dryRun bool) ([]pipeline.Change, bool, error) {
	doc, err := postman.LoadFile(f.Path)
	if err != nil {
		return nil, false, err
	}
	before, err := MarshalDocument(doc, FormatJSON)
	if err != nil {
		return nil, false, err
	}

	result, err := p.Normalize(doc, f.Kind)
	if err != nil {
		return nil, false, err
	}
	after, err := MarshalDocument(result.Document, FormatJSON)
	if err != nil {
		return nil, false, err
	}
	if dryRun || bytes.Equal(before, after) {
		return result.Changes, false, nil
	}
	wrote, err := fileutil.WriteIfChanged(f.Path, after, fileutil.OwnerReadWrite)
	if err != nil {
		return nil, false, err
	}
	return result.Changes, wrote, nil
}
