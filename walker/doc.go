// Package walker provides a generic pre-order traversal of document trees.
//
// The walker knows nothing about Postman collections or OpenAPI documents.
// It visits every object, array and scalar reachable from a root
// [node.Node], hands each one to the registered handler along with its
// dotted locator, and follows the [Action] the handler returns.
//
// # Quick Start
//
// Collect the locator of every object carrying an "id" key:
//
//	var found []string
//	err := walker.Walk(doc,
//	    walker.WithObjectHandler(func(obj *node.Node, path string) walker.Action {
//	        if obj.Has("id") {
//	            found = append(found, path)
//	        }
//	        return walker.Continue
//	    }),
//	)
//
// # Flow Control
//
// Handlers return an [Action] to control traversal:
//
//   - [Continue]: visit children and siblings normally
//   - [SkipChildren]: skip the children of the current node, continue with siblings
//   - [Stop]: end the walk immediately
//
// # Mutation
//
// Object handlers may add or delete keys on the object they receive. The
// walker snapshots the key list after the handler returns, so deleted keys
// are never descended into. A scalar handler may return a replacement node,
// which is stored in the parent container at the same key or index.
//
// # Structural Safety
//
// Every container is visited at most once. Reaching the same object or
// array a second time (through a cycle or a shared subtree) returns an
// [oaserrors.MalformedDocumentError] with IsCycle set. Nesting deeper than
// the configured limit (default 1000, see [WithMaxDepth]) returns an
// [oaserrors.ResourceLimitError].
package walker
