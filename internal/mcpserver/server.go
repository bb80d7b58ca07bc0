// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the apinorm engine as MCP tools over stdio.
package mcpserver

import (
	"context"
	"regexp"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apinorm"
	"github.com/erraggy/apinorm/internal/issues"
)

const serverInstructions = `apinorm MCP server: detects, validates and normalizes Postman collections, Postman environments and OpenAPI documents generated from them.

Configuration: defaults are set via APINORM_MCP_* environment variables in your MCP client config.

Key settings:
- APINORM_MCP_CACHE_ENABLED (default: true) - cache decoded documents for the session
- APINORM_MCP_CACHE_MAX_SIZE (default: 16) - maximum cached documents
- APINORM_MCP_CACHE_TTL (default: 15m) - cache entry lifetime
- APINORM_MCP_STRICT (default: false) - enable strict Postman validation by default
- APINORM_MCP_PREFERRED_SERVER - pin the servers array of OpenAPI documents
- APINORM_MCP_LIMIT (default: 100) - default page size for change and violation lists

Tools never modify the input file; use output to write the normalized document.`

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled.
func Run(ctx context.Context) error {
	server := mcp.NewServer(
		&mcp.Implementation{Name: "apinorm", Version: apinorm.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	registerAllTools(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func registerAllTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "detect_kind",
		Description: "Detect whether a document is a Postman collection (info + item), a Postman environment (name + values) or an OpenAPI document (paths). Returns the kind and the top-level keys. Ambiguous or unrecognized documents return an error naming the problem.",
	}, handleDetectKind)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Structurally validate a Postman collection, Postman environment or normalized OpenAPI document. Reports every violation in one pass with a dotted locator (e.g. item[2].request.method). Use strict=true for the stricter export checks (schema URL, environment id, standard status codes). Use offset/limit to paginate.",
	}, handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "normalize",
		Description: "Normalize a document: Postman documents are validated, optionally renamed and stripped of export metadata; OpenAPI documents are repaired (request bodies removed from GET/DELETE, operationIds synthesized, parameter and body schemas added, path parameters marked required, servers optionally pinned) and stripped. Returns an ordered change log. Use include_document or output to get the result. Running normalize on its own output yields no changes.",
	}, handleNormalize)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.DefaultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.DefaultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// violation is the wire form of a validation finding.
type violation struct {
	Locator string `json:"locator"`
	Message string `json:"message"`
	Value   any    `json:"value,omitempty"`
}

func toViolations(list []issues.Issue) []violation {
	out := makeSlice[violation](len(list))
	for _, v := range list {
		out = append(out, violation{Locator: v.Locator(), Message: v.Message, Value: v.Value})
	}
	return out
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}
