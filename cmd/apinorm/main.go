package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/erraggy/apinorm"
	"github.com/erraggy/apinorm/cmd/apinorm/commands"
)

// handlers maps each subcommand to its entry point.
var handlers = map[string]func([]string) error{
	"openapi":  commands.HandleOpenAPI,
	"fix":      commands.HandleFix,
	"sanitize": commands.HandleSanitize,
	"validate": commands.HandleValidate,
	"publish":  commands.HandlePublish,
	"mcp":      commands.HandleMCP,
}

func main() {
	os.Exit(run(os.Args[1:]))
}

// run dispatches args and returns the process exit code.
func run(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}

	command := args[0]
	switch command {
	case "version", "--version":
		fmt.Printf("apinorm v%s\n", apinorm.Version())
		return 0
	case "build-info":
		fmt.Println(apinorm.BuildInfo())
		return 0
	case "help", "-h", "--help":
		printUsage()
		return 0
	}

	handle, ok := handlers[command]
	if !ok {
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		if s := suggestCommand(command); s != "" {
			fmt.Fprintf(os.Stderr, "Did you mean '%s'?\n", s)
		}
		fmt.Fprintln(os.Stderr)
		printUsage()
		return 1
	}

	if err := handle(args[1:]); err != nil {
		// batch failures were already reported per document
		if !errors.Is(err, commands.ErrDocumentsFailed) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// knownCommands lists every name suggestCommand may propose.
var knownCommands = []string{"openapi", "fix", "sanitize", "validate", "publish", "mcp", "version", "help"}

// suggestCommand returns the known command closest to input when it is
// within an edit distance of 2, or "".
func suggestCommand(input string) string {
	best, bestDist := "", 3
	for _, c := range knownCommands {
		if d := levenshtein(input, c); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func printUsage() {
	fmt.Println(`apinorm - Postman and OpenAPI normalization

Usage:
  apinorm <command> [options]

Commands:
  openapi     Fetch a collection's OpenAPI rendition, patch it and write it out
  fix         Apply the OpenAPI patch rules to a local file
  sanitize    Strip metadata from Postman exports in place
  validate    Check Postman exports and OpenAPI documents for structural defects
  publish     Upload Postman exports to a workspace
  mcp         Serve the normalization tools over MCP (stdio)
  version     Show version information
  build-info  Show build metadata
  help        Show this help message

Examples:
  apinorm openapi -o openapi.yaml
  apinorm fix --server https://api.example.com openapi.yaml -o openapi.yaml
  apinorm sanitize postman/
  apinorm validate --strict postman/
  apinorm publish --normalize postman/

Configuration is read from the environment and from ./.env (see --env-file).

Run 'apinorm <command> --help' for more information on a command.`)
}
