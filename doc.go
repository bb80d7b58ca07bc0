// Package apinorm normalizes and validates API description documents
// exported from Postman: collections, environments, and the OpenAPI
// documents Postman generates from collections.
//
// # Overview
//
// The engine is a set of small packages, leaves first:
//
//   - node: ordered JSON tree with JSON and YAML codecs
//   - walker: generic pre-order traversal with cycle and depth guards
//   - stripper: removes vendor metadata keys at every depth
//   - validator: structural checks for collections and environments, and
//     postcondition checks for patched OpenAPI documents
//   - fixer: idempotent patch rules for OpenAPI documents
//   - pipeline: validate, patch and strip in one call with a change log
//
// Collaborators around the engine:
//
//   - postman: Postman API client and local file discovery
//   - config: environment and .env configuration
//   - oaserrors: typed errors for errors.Is and errors.As
//   - logging: structured logging interface and slog adapter
//
// # Quick Start
//
//	doc, err := node.DecodeJSON(data)
//	if err != nil {
//		log.Fatal(err)
//	}
//	p, err := pipeline.New(pipeline.WithPreferredServer("https://api.example.com"))
//	if err != nil {
//		log.Fatal(err)
//	}
//	res, err := p.Normalize(doc, validator.KindAuto)
//	if err != nil {
//		log.Fatal(err)
//	}
//	out, _ := node.MarshalYAML(res.Document)
//
// # Command-Line Tool
//
// The apinorm command wraps the pipeline:
//
//	apinorm openapi -o spec/openapi.yml        # fetch from Postman, patch, write YAML
//	apinorm fix openapi.json                   # patch a local OpenAPI document
//	apinorm sanitize postman/                  # strip metadata from exported files
//	apinorm validate postman/                  # structural validation
//	apinorm publish postman/                   # upload to a Postman workspace
//	apinorm mcp                                # serve the engine over MCP
package apinorm
