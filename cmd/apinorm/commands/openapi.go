package commands

import (
	"errors"
	"flag"
	"fmt"

	"github.com/erraggy/apinorm"
	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/internal/fileutil"
	"github.com/erraggy/apinorm/pipeline"
	"github.com/erraggy/apinorm/postman"
	"github.com/erraggy/apinorm/validator"
)

// OpenAPIFlags contains flags for the openapi command
type OpenAPIFlags struct {
	commonFlags
	Output            string
	CollectionID      string
	Server            string
	ServerDescription string
	Format            string
}

// SetupOpenAPIFlags creates and configures a FlagSet for the openapi command.
// Returns the FlagSet and an OpenAPIFlags struct with bound flag variables.
func SetupOpenAPIFlags() (*flag.FlagSet, *OpenAPIFlags) {
	fs := flag.NewFlagSet("openapi", flag.ContinueOnError)
	flags := &OpenAPIFlags{}

	flags.register(fs)
	fs.StringVar(&flags.Output, "o", "", "output file path (default: $APINORM_OPENAPI_OUTPUT or spec/openapi.yml)")
	fs.StringVar(&flags.Output, "output", "", "output file path (default: $APINORM_OPENAPI_OUTPUT or spec/openapi.yml)")
	fs.StringVar(&flags.CollectionID, "collection", "", "collection ID (default: $POSTMAN_COLLECTION_ID)")
	fs.StringVar(&flags.Server, "server", "", "pin the servers array to this URL (default: $APINORM_PREFERRED_SERVER)")
	fs.StringVar(&flags.ServerDescription, "server-description", "", "description of the pinned server")
	fs.StringVar(&flags.Format, "format", FormatYAML, "output format: yaml or json")

	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apinorm openapi [flags]\n\n")
		cliutil.Writef(fs.Output(), "Fetch the OpenAPI document Postman generates from a collection, repair it\n")
		cliutil.Writef(fs.Output(), "and write it to a file.\n\n")
		cliutil.Writef(fs.Output(), "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(fs.Output(), "\nEnvironment:\n")
		cliutil.Writef(fs.Output(), "  POSTMAN_API_KEY (required), POSTMAN_COLLECTION_ID, POSTMAN_API_BASE,\n")
		cliutil.Writef(fs.Output(), "  APINORM_PREFERRED_SERVER, APINORM_SERVER_DESCRIPTION, APINORM_OPENAPI_OUTPUT\n")
		cliutil.Writef(fs.Output(), "\nExamples:\n")
		cliutil.Writef(fs.Output(), "  apinorm openapi\n")
		cliutil.Writef(fs.Output(), "  apinorm openapi --collection 1234-abcd -o api/openapi.yml\n")
		cliutil.Writef(fs.Output(), "  apinorm openapi --server https://api.example.com --format json -o openapi.json\n")
		cliutil.Writef(fs.Output(), "\nExit Codes:\n")
		cliutil.Writef(fs.Output(), "  0    Document written\n")
		cliutil.Writef(fs.Output(), "  1    Missing configuration, fetch failure or write failure\n")
	}

	return fs, flags
}

// HandleOpenAPI executes the openapi command
func HandleOpenAPI(args []string) error {
	fs, flags := SetupOpenAPIFlags()

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if fs.NArg() != 0 {
		fs.Usage()
		return fmt.Errorf("openapi command takes no arguments")
	}
	if err := ValidateOutputFormat(flags.Format, FormatYAML, FormatJSON); err != nil {
		return err
	}

	cfg, err := flags.loadConfig()
	if err != nil {
		return err
	}
	if flags.CollectionID != "" {
		cfg.Postman.CollectionID = flags.CollectionID
	}
	if err := cfg.RequireFetch(); err != nil {
		return err
	}
	log := flags.logger()

	client, err := postman.NewClient(cfg.Postman.APIKey,
		postman.WithBaseURL(cfg.Postman.BaseURL),
		postman.WithLogger(log),
	)
	if err != nil {
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()
	if !flags.Quiet {
		cliutil.Writef(stderr, "apinorm version: %s\n", apinorm.Version())
		cliutil.Writef(stderr, "Fetching OpenAPI transformation for collection %s\n", cfg.Postman.CollectionID)
	}
	doc, err := client.FetchOpenAPI(ctx, cfg.Postman.CollectionID)
	if err != nil {
		return err
	}

	opts := append(cfg.PipelineOptions(), pipeline.WithLogger(log))
	if flags.Server != "" {
		opts = append(opts, pipeline.WithPreferredServer(flags.Server))
	}
	if flags.ServerDescription != "" {
		opts = append(opts, pipeline.WithServerDescription(flags.ServerDescription))
	}
	p, err := pipeline.New(opts...)
	if err != nil {
		return err
	}
	result, err := p.Normalize(doc, validator.KindOpenAPI)
	if err != nil {
		return fmt.Errorf("normalizing openapi document: %w", err)
	}

	data, err := MarshalDocument(result.Document, flags.Format)
	if err != nil {
		return fmt.Errorf("marshaling openapi document: %w", err)
	}
	output := firstNonEmpty(flags.Output, cfg.OpenAPIOutput)
	if err := fileutil.WriteFile(output, data, fileutil.ReadableByAll); err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.WriteList(stderr, "Changes", result.Changes)
		cliutil.Writef(stderr, "✓ Applied %s, wrote %s\n", cliutil.Count(len(result.Changes), "change", "changes"), output)
	}
	return nil
}
