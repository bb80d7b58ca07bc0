package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apinorm/validator"
)

type detectKindInput struct {
	Document documentInput `json:"document" jsonschema:"The document to inspect"`
}

type detectKindOutput struct {
	Kind string   `json:"kind"`
	Keys []string `json:"keys"`
}

func handleDetectKind(ctx context.Context, _ *mcp.CallToolRequest, input detectKindInput) (*mcp.CallToolResult, detectKindOutput, error) {
	doc, err := input.Document.resolve(ctx)
	if err != nil {
		return errResult(err), detectKindOutput{}, nil
	}
	kind, err := validator.DetectKind(doc)
	if err != nil {
		return errResult(err), detectKindOutput{}, nil
	}
	return nil, detectKindOutput{Kind: kind.String(), Keys: doc.Keys()}, nil
}
