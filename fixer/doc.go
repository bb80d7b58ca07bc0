// Package fixer repairs OpenAPI-shaped documents converted from Postman
// collections so they are accepted by strict OpenAPI tooling.
//
// The fixer works on a [node.Node] tree and mutates it in place. Each rule
// is independent, idempotent, and recorded as a [Fix] only when it changes
// something, so a second run over a fixed document reports no fixes.
//
// # Quick Start
//
//	f, err := fixer.New(
//		fixer.WithPreferredServer("https://api.example.com"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	result, err := f.Fix(doc)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Printf("Applied %d fixes\n", result.FixCount)
//
// # Supported Fixes
//
// Rules run in this order:
//
//   - [FixTypeRemovedRequestBody]: drops requestBody from get and delete operations
//   - [FixTypePinnedServers]: replaces the servers array with the preferred server
//   - [FixTypeAddedOperationID]: synthesizes a missing operationId from method and path
//   - [FixTypeCoercedParameters]: replaces a non-array parameters value with []
//   - [FixTypeStrippedParameterMetadata]: removes metadata keys from parameters
//   - [FixTypeAddedParameterSchema]: gives schema-less parameters {type: string}
//   - [FixTypeRequiredPathParameter]: marks path parameters required
//   - [FixTypeWrappedRequestExample]: moves a JSON request example into a schema
//   - [FixTypeAddedRequestSchema]: gives a JSON request body a permissive object schema
//   - [FixTypeAddedResponseSchema]: gives JSON responses a permissive object schema
//
// Use [WithEnabledFixes] to run a subset. Operations, parameters and
// responses that are not objects are skipped.
//
// # Operation IDs
//
// [SynthesizeOperationID] is a pure function of method and path template:
//
//	fixer.SynthesizeOperationID("GET", "/users/{id}") // "get_users_id"
package fixer
