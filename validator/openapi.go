package validator

import (
	"github.com/erraggy/apinorm/internal/httputil"
	"github.com/erraggy/apinorm/internal/issues"
	"github.com/erraggy/apinorm/internal/pathutil"
	"github.com/erraggy/apinorm/node"
)

// ValidateOpenAPI checks the guarantees the patch rules establish on an
// OpenAPI-shaped document:
//
//   - get and delete operations carry no requestBody
//   - every operation has a non-empty string operationId
//   - parameters, when present, is an array
//   - every parameter object has a non-empty schema
//   - every path parameter has required: true
//
// It is not a precondition for patching; use it to verify patched output.
func ValidateOpenAPI(doc *node.Node) []Violation {
	var out []Violation
	add := func(path, field, msg string) {
		out = append(out, Violation{Path: path, Field: field, Message: msg, Severity: issues.SeverityError})
	}

	if !doc.IsObject() {
		add("", "document", "document must be an object, got "+describe(doc))
		return out
	}
	paths, ok := doc.Get("paths")
	if !ok {
		add("", "paths", "missing required field")
		return out
	}
	if !paths.IsObject() {
		add("", "paths", "must be an object, got "+describe(paths))
		return out
	}

	for _, p := range paths.Keys() {
		item, _ := paths.Get(p)
		itemPath := pathutil.Join("paths", p)
		for _, method := range item.Keys() {
			op, _ := item.Get(method)
			if !httputil.IsHTTPMethod(method) || !op.IsObject() {
				continue
			}
			opPath := pathutil.Join(itemPath, method)

			if httputil.ForbidsBody(method) && op.Has("requestBody") {
				add(opPath, "requestBody", "must not be present on "+httputil.NormalizeMethod(method)+" operations")
			}
			if id, isString := op.Lookup("operationId").StringValue(); !isString || id == "" {
				add(opPath, "operationId", "must be a non-empty string")
			}

			params, ok := op.Get("parameters")
			if !ok {
				continue
			}
			if !params.IsArray() {
				add(opPath, "parameters", "must be an array, got "+describe(params))
				continue
			}
			for i, param := range params.Items() {
				if !param.IsObject() {
					continue
				}
				pPath := pathutil.Index(pathutil.Join(opPath, "parameters"), i)
				if !node.Truthy(param.Lookup("schema")) {
					add(pPath, "schema", "must be a non-empty schema")
				}
				if in, _ := param.Lookup("in").StringValue(); in == "path" {
					if req, _ := param.Lookup("required").BoolValue(); !req {
						add(pPath, "required", "path parameters must be required")
					}
				}
			}
		}
	}
	return out
}
