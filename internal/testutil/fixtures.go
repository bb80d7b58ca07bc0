// Package testutil provides fixture documents and temp-file helpers for
// unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/apinorm/node"
)

// CollectionSchema is the schema URL carried by fixture collections.
const CollectionSchema = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// NewCollection returns a valid Postman collection with export metadata at
// several depths: one folder holding a request, and a top-level request
// with a saved response.
func NewCollection() *node.Node {
	return node.MustFromValue(map[string]any{
		"info": map[string]any{
			"_postman_id":  "0f1e2d3c",
			"name":         "Demo API",
			"schema":       CollectionSchema,
			"_exporter_id": "4242",
		},
		"item": []any{
			map[string]any{
				"name": "Users",
				"id":   "folder-1",
				"item": []any{
					map[string]any{
						"name": "Get user",
						"id":   "req-1",
						"request": map[string]any{
							"method": "GET",
							"url":    map[string]any{"raw": "{{baseUrl}}/users/:id"},
						},
					},
				},
			},
			map[string]any{
				"name":    "Health",
				"request": "{{baseUrl}}/health",
				"response": []any{
					map[string]any{"name": "ok", "status": "OK", "code": 200, "uid": "resp-1"},
				},
			},
		},
	})
}

// NewEnvironment returns a valid Postman environment with export metadata.
func NewEnvironment() *node.Node {
	return node.MustFromValue(map[string]any{
		"id":   "env-1",
		"name": "Staging",
		"values": []any{
			map[string]any{"key": "baseUrl", "value": "https://staging.example.com", "enabled": true},
		},
		"_postman_variable_scope": "environment",
		"_postman_exported_at":    "2024-01-01T00:00:00.000Z",
		"owner":                   "12345",
	})
}

// NewOpenAPIDocument returns an OpenAPI document as Postman generates it:
// a GET with a request body and an untyped path parameter, a POST whose
// JSON body has only an example, no operation IDs, and two servers.
func NewOpenAPIDocument() *node.Node {
	return node.MustFromValue(map[string]any{
		"openapi": "3.0.0",
		"info":    map[string]any{"title": "Demo API", "version": "1.0.0", "_postman_id": "0f1e2d3c"},
		"servers": []any{
			map[string]any{"url": "{{baseUrl}}"},
			map[string]any{"url": "https://api.example.com"},
		},
		"paths": map[string]any{
			"/users/{id}": map[string]any{
				"get": map[string]any{
					"summary": "Get user",
					"parameters": []any{
						map[string]any{"name": "id", "in": "path"},
					},
					"requestBody": map[string]any{
						"content": map[string]any{"application/json": map[string]any{}},
					},
					"responses": map[string]any{
						"200": map[string]any{"description": "OK"},
					},
				},
			},
			"/users": map[string]any{
				"post": map[string]any{
					"summary": "Create user",
					"requestBody": map[string]any{
						"content": map[string]any{
							"application/json": map[string]any{
								"example": map[string]any{"name": "a"},
							},
						},
					},
					"responses": map[string]any{
						"201": map[string]any{"description": "Created"},
					},
				},
			},
		},
	})
}

// WriteTempJSON writes doc as indented JSON to a file named name in a
// fresh temp directory and returns its path.
func WriteTempJSON(t *testing.T, name string, doc *node.Node) string {
	t.Helper()

	data, err := node.MarshalJSONIndent(doc, "", "  ")
	if err != nil {
		t.Fatalf("Failed to marshal document to JSON: %v", err)
	}
	return writeTemp(t, name, data)
}

// WriteTempYAML writes doc as YAML to a file named name in a fresh temp
// directory and returns its path.
func WriteTempYAML(t *testing.T, name string, doc *node.Node) string {
	t.Helper()

	data, err := node.MarshalYAML(doc)
	if err != nil {
		t.Fatalf("Failed to marshal document to YAML: %v", err)
	}
	return writeTemp(t, name, data)
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(tmpFile, data, 0600); err != nil {
		t.Fatalf("Failed to write temporary file: %v", err)
	}
	return tmpFile
}
