package commands

import (
	"errors"
	"flag"

	"github.com/erraggy/apinorm/internal/cliutil"
	"github.com/erraggy/apinorm/internal/mcpserver"
)

// SetupMCPFlags creates the FlagSet for the mcp command.
func SetupMCPFlags() *flag.FlagSet {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	fs.Usage = func() {
		cliutil.Writef(fs.Output(), "Usage: apinorm mcp\n\n")
		cliutil.Writef(fs.Output(), "Serve the detect_kind, validate and normalize tools over MCP on stdio.\n\n")
		cliutil.Writef(fs.Output(), "Environment:\n")
		cliutil.Writef(fs.Output(), "  APINORM_MCP_CACHE_ENABLED      cache decoded documents (default: true)\n")
		cliutil.Writef(fs.Output(), "  APINORM_MCP_CACHE_MAX_SIZE     maximum cached documents (default: 16)\n")
		cliutil.Writef(fs.Output(), "  APINORM_MCP_CACHE_TTL          cache entry lifetime (default: 15m)\n")
		cliutil.Writef(fs.Output(), "  APINORM_MCP_FETCH_TIMEOUT      timeout for URL inputs (default: 30s)\n")
		cliutil.Writef(fs.Output(), "  APINORM_MCP_ALLOW_PRIVATE_IPS  allow URL inputs on private networks\n")
	}
	return fs
}

// HandleMCP runs the MCP server until stdin closes or the process is interrupted.
func HandleMCP(args []string) error {
	fs := SetupMCPFlags()
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, cancel := commandContext()
	defer cancel()
	return mcpserver.Run(ctx)
}
