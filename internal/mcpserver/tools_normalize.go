package mcpserver

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/apinorm/fixer"
	"github.com/erraggy/apinorm/internal/fileutil"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
	"github.com/erraggy/apinorm/pipeline"
	"github.com/erraggy/apinorm/validator"
)

type normalizeInput struct {
	Document          documentInput `json:"document"                     jsonschema:"The document to normalize"`
	Kind              string        `json:"kind,omitempty"               jsonschema:"Document kind: collection, environment, openapi or auto (default auto)"`
	MetadataKeys      []string      `json:"metadata_keys,omitempty"      jsonschema:"Keys to strip at every depth (default depends on kind)"`
	PreferredServer   string        `json:"preferred_server,omitempty"   jsonschema:"Replace the servers array of OpenAPI documents with this URL"`
	ServerDescription string        `json:"server_description,omitempty" jsonschema:"Description for the pinned server"`
	CollectionName    string        `json:"collection_name,omitempty"    jsonschema:"Overwrite info.name of collections"`
	EnvironmentName   string        `json:"environment_name,omitempty"   jsonschema:"Overwrite name of environments"`
	Strict            *bool         `json:"strict,omitempty"             jsonschema:"Enable strict validation of Postman documents"`
	PreserveSchema    bool          `json:"preserve_schema,omitempty"    jsonschema:"Keep the collection schema URL while stripping"`
	Fixes             []string      `json:"fixes,omitempty"              jsonschema:"Only apply these fix types (default all)"`
	Format            string        `json:"format,omitempty"             jsonschema:"Serialization of the returned or written document: json or yaml (default json, yaml for OpenAPI)"`
	IncludeDocument   bool          `json:"include_document,omitempty"   jsonschema:"Include the normalized document in output"`
	Output            string        `json:"output,omitempty"             jsonschema:"File path to write the normalized document to"`
	Offset            int           `json:"offset,omitempty"             jsonschema:"Skip the first N changes (for pagination)"`
	Limit             int           `json:"limit,omitempty"              jsonschema:"Maximum number of changes to return (default 100)"`
}

type changeEntry struct {
	Stage       string `json:"stage"`
	Path        string `json:"path"`
	Description string `json:"description"`
}

type normalizeOutput struct {
	Kind          string        `json:"kind"`
	ChangeCount   int           `json:"change_count"`
	FixCount      int           `json:"fix_count"`
	StrippedCount int           `json:"stripped_count"`
	Returned      int           `json:"returned"`
	Changes       []changeEntry `json:"changes,omitempty"`
	Warnings      []violation   `json:"warnings,omitempty"`
	Violations    []violation   `json:"violations,omitempty"`
	WrittenTo     string        `json:"written_to,omitempty"`
	Document      string        `json:"document,omitempty"`
}

func handleNormalize(ctx context.Context, _ *mcp.CallToolRequest, input normalizeInput) (*mcp.CallToolResult, normalizeOutput, error) {
	kind, err := validator.ParseKind(input.Kind)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}
	opts, err := buildPipelineOptions(input)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}
	p, err := pipeline.New(opts...)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}
	doc, err := input.Document.resolve(ctx)
	if err != nil {
		return errResult(err), normalizeOutput{}, nil
	}

	result, err := p.Normalize(doc, kind)
	if err != nil {
		var verr *oaserrors.ValidationError
		if errors.As(err, &verr) {
			// Violations are the answer, not a tool failure.
			return nil, normalizeOutput{Kind: verr.Kind, Violations: toViolations(verr.Violations)}, nil
		}
		return errResult(err), normalizeOutput{}, nil
	}

	output := normalizeOutput{
		Kind:          result.Kind.String(),
		ChangeCount:   len(result.Changes),
		FixCount:      len(result.Fixes),
		StrippedCount: result.Strip.Count(),
		Warnings:      toViolations(result.Warnings),
	}
	output.Changes = makeSlice[changeEntry](len(result.Changes))
	for _, c := range result.Changes {
		output.Changes = append(output.Changes, changeEntry{Stage: string(c.Stage), Path: c.Path, Description: c.Description})
	}
	output.Changes = paginate(output.Changes, input.Offset, input.Limit)
	output.Returned = len(output.Changes)

	if input.Output != "" || input.IncludeDocument {
		data, err := marshalDocument(result.Document, input.Format, result.Kind)
		if err != nil {
			return errResult(err), normalizeOutput{}, nil
		}
		if input.Output != "" {
			if err := fileutil.WriteFile(input.Output, data, fileutil.ReadableByAll); err != nil {
				return errResult(fmt.Errorf("failed to write output file: %w", err)), normalizeOutput{}, nil
			}
			output.WrittenTo = input.Output
		}
		if input.IncludeDocument {
			output.Document = string(data)
		}
	}
	return nil, output, nil
}

// buildPipelineOptions translates the MCP input into pipeline options,
// falling back to the server configuration for omitted settings.
func buildPipelineOptions(input normalizeInput) ([]pipeline.Option, error) {
	strict := cfg.Strict
	if input.Strict != nil {
		strict = *input.Strict
	}
	server := cfg.PreferredServer
	if input.PreferredServer != "" {
		server = input.PreferredServer
	}
	desc := cfg.ServerDescription
	if input.ServerDescription != "" {
		desc = input.ServerDescription
	}

	opts := []pipeline.Option{
		pipeline.WithPreferredServer(server),
		pipeline.WithCollectionName(input.CollectionName),
		pipeline.WithEnvironmentName(input.EnvironmentName),
		pipeline.WithStrictMode(strict),
		pipeline.WithPreserveSchema(input.PreserveSchema),
	}
	if desc != "" {
		opts = append(opts, pipeline.WithServerDescription(desc))
	}
	if len(input.MetadataKeys) > 0 {
		opts = append(opts, pipeline.WithMetadataKeys(input.MetadataKeys...))
	}
	if len(input.Fixes) > 0 {
		types := make([]fixer.FixType, 0, len(input.Fixes))
		for _, s := range input.Fixes {
			ft, err := fixer.ParseFixType(s)
			if err != nil {
				return nil, err
			}
			types = append(types, ft)
		}
		opts = append(opts, pipeline.WithEnabledFixes(types...))
	}
	return opts, nil
}

// marshalDocument serializes doc as JSON (two-space indent) or YAML.
// An empty format picks YAML for OpenAPI documents and JSON otherwise.
func marshalDocument(doc *node.Node, format string, kind validator.DocumentKind) ([]byte, error) {
	if format == "" {
		format = "json"
		if kind == validator.KindOpenAPI {
			format = "yaml"
		}
	}
	switch format {
	case "json":
		data, err := node.MarshalJSONIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return node.MarshalYAML(doc)
	default:
		return nil, fmt.Errorf("invalid format %q: must be json or yaml", format)
	}
}
