package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/internal/issues"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/pipeline"
	"github.com/erraggy/apinorm/postman"
	"github.com/erraggy/apinorm/validator"
)

// PublishFlags contains flags for the publish command
type PublishFlags struct {
	commonFlags
	WorkspaceID string
	Normalize   bool
	Strict      bool
	DryRun      bool
}

// SetupPublishFlags creates and configures a FlagSet for the publish command.
// Returns the FlagSet and a PublishFlags struct with bound flag variables.
func SetupPublishFlags() (*flag.FlagSet, *PublishFlags) {
	fs := flag.NewFlagSet("publish", flag.ContinueOnError)
	flags := &PublishFlags{}

	flags.register(fs)
	fs.StringVar(&flags.WorkspaceID, "workspace", "", "target workspace ID (default: $POSTMAN_WORKSPACE_ID)")
	fs.BoolVar(&flags.Normalize, "normalize", false, "normalize each document in memory before uploading")
	fs.BoolVar(&flags.Strict, "strict", false, "enable strict validation (default: $APINORM_STRICT)")
	fs.BoolVar(&flags.DryRun, "dry-run", false, "validate and report without uploading")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apinorm publish [flags] <dir|file>...\n\n")
		cliutil.Writef(fs.Output(), "Upload Postman collections and environments to a workspace. Collections are\n")
		cliutil.Writef(fs.Output(), "published before environments. Documents that fail validation are skipped.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nEnvironment:\n")
		cliutil.Writef(fs.Output(), "  POSTMAN_API_KEY (required), POSTMAN_WORKSPACE_ID (required), POSTMAN_API_BASE\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apinorm publish postman/\n")
		cliutil.Writef(fs.Output(), "  apinorm publish --normalize --dry-run postman/\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    All documents published\n")
		cliutil.Writef(fs.Output(), "  1    One or more documents failed; the others were still published\n")
	}

	return fs, flags
}

// HandlePublish executes the publish command
func HandlePublish(args []string) error {
	fs, flags := SetupPublishFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("publish command requires at least one directory or file")
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if flags.WorkspaceID != "" {
		cfg.Postman.WorkspaceID = flags.WorkspaceID
	}
	if err := cfg.RequirePublish(); err != nil {
		return err
	}
	log := flags.logger()

	opts := append(cfg.PipelineOptions(),
		pipeline.WithStrictMode(flags.Strict || cfg.StrictMode),
		pipeline.WithLogger(log),
	)
	p, err := pipeline.New(opts...)
	if err != nil {
		return err
	}
	client, err := postman.NewClient(cfg.Postman.APIKey,
		postman.WithBaseURL(cfg.Postman.BaseURL),
		postman.WithLogger(log),
	)
	if err != nil {
		return err
	}

	files, err := collectFiles(fs.Args())
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()

	b := &batch{}
	for _, f := range files {
		b.total++
		doc, err := postman.LoadFile(f.Path)
		if err != nil {
			b.fail(stderr, f.Path, err)
			continue
		}

		kind := f.Kind
		if flags.Normalize {
			result, err := p.Normalize(doc, kind)
			if err != nil {
				b.fail(stderr, f.Path, err)
				continue
			}
			kind = result.Kind
		} else {
			if kind == validator.KindAuto {
				if kind, err = validator.DetectKind(doc); err != nil {
					b.fail(stderr, f.Path, err)
					continue
				}
			}
			if violations := p.Validate(doc, kind); issues.CountErrors(violations) > 0 {
				b.fail(stderr, f.Path, &oaserrors.ValidationError{Source: f.Path, Kind: kind.String(), Violations: violations})
				continue
			}
		}

		if flags.DryRun {
			if !flags.Quiet {
				cliutil.Writef(stdout, "~ %s: would publish %s\n", f.Path, kind)
			}
			continue
		}
		res, err := client.Publish(ctx, kind, doc, cfg.Postman.WorkspaceID)
		if err != nil {
			b.fail(stderr, f.Path, err)
			continue
		}
		if !flags.Quiet {
			cliutil.Writef(stdout, "✓ %s: published %s %q (uid %s)\n", f.Path, kind, res.Name, res.UID)
		}
	}

	if !flags.Quiet {
		cliutil.Writef(stdout, "\n%s\n", b.summary())
	}
	return b.err()
}
