package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apinorm/validator"
)

type validateInput struct {
	Document   documentInput `json:"document"              jsonschema:"The document to validate"`
	Kind       string        `json:"kind,omitempty"        jsonschema:"Document kind: collection, environment, openapi or auto (default auto)"`
	Strict     *bool         `json:"strict,omitempty"      jsonschema:"Enable strict validation mode"`
	NoWarnings bool          `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	Offset     int           `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int           `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateOutput struct {
	Kind         string      `json:"kind"`
	Valid        bool        `json:"valid"`
	ErrorCount   int         `json:"error_count"`
	WarningCount int         `json:"warning_count"`
	Returned     int         `json:"returned"`
	Errors       []violation `json:"errors,omitempty"`
	Warnings     []violation `json:"warnings,omitempty"`
}

func handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	kind, err := validator.ParseKind(input.Kind)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	doc, err := input.Document.resolve(ctx)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	v := validator.New()
	v.StrictMode = cfg.Strict
	if input.Strict != nil {
		v.StrictMode = *input.Strict
	}
	v.IncludeWarnings = !input.NoWarnings

	result := v.Validate(doc, kind)
	output := validateOutput{
		Kind:         result.Kind.String(),
		Valid:        result.Valid,
		ErrorCount:   result.ErrorCount,
		WarningCount: result.WarningCount,
		Errors:       paginate(toViolations(result.Errors), input.Offset, input.Limit),
		Warnings:     paginate(toViolations(result.Warnings), input.Offset, input.Limit),
	}
	output.Returned = len(output.Errors) + len(output.Warnings)
	return nil, output, nil
}
