// Package validator checks Postman collections and environments against
// their structural requirements, and checks OpenAPI documents against the
// guarantees the patch rules provide.
//
// # Document Kinds
//
// A document is exactly one of three kinds, recognized from its top-level
// keys:
//
//   - [KindCollection]: has info and item
//   - [KindEnvironment]: has name and values
//   - [KindOpenAPI]: has paths
//
// [KindAuto] asks the validator to detect the kind. A document that matches
// none or more than one kind yields a single top-level violation.
//
// # Accumulation
//
// The validator never stops at the first problem. Every violation found in
// one pass is returned, each carrying a dotted locator:
//
//	violations := validator.Validate(doc, validator.KindCollection)
//	for _, v := range violations {
//	    fmt.Println(v) // ✗ item[2].request.method: missing required field
//	}
//
// # Strict Mode
//
// [Validator.StrictMode] enables the additional checks of the stricter
// export format: collections must declare the v2.1.0 collection schema URL
// in info.schema, environments must carry an id and every values element
// must be an object with a string key. Strict mode also warns about
// response codes that are not standard HTTP status codes.
//
// # Remote Schemas
//
// [CheckSchema] validates a document against a JSON Schema supplied as
// bytes. Mismatches are reported as warnings and never make a document
// invalid; the hand-written structural rules are authoritative.
package validator
