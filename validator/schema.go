package validator

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/google/jsonschema-go/jsonschema"

	"github.com/erraggy/apinorm/node"
)

// CheckSchema validates doc against the JSON Schema in schemaJSON.
// A mismatch is reported as a single warning violation; the returned error
// is non-nil only when the schema itself cannot be parsed or resolved.
func CheckSchema(doc *node.Node, schemaJSON []byte) ([]Violation, error) {
	var schema jsonschema.Schema
	if err := json.Unmarshal(schemaJSON, &schema); err != nil {
		return nil, fmt.Errorf("validator: parsing schema: %w", err)
	}
	resolved, err := schema.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return nil, fmt.Errorf("validator: resolving schema: %w", err)
	}

	instance, err := toInstance(doc)
	if err != nil {
		return nil, err
	}
	if err := resolved.Validate(instance); err != nil {
		return []Violation{{
			Field:    "document",
			Message:  "does not match schema: " + err.Error(),
			Severity: SeverityWarning,
		}}, nil
	}
	return nil, nil
}

// toInstance converts doc into the plain JSON value shape the schema
// validator expects (float64 numbers, map[string]any objects).
func toInstance(doc *node.Node) (any, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("validator: encoding document: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("validator: decoding document: %w", err)
	}
	return v, nil
}
