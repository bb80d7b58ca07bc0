// Package pathutil builds the dotted locators used in violations, fix
// records and strip reports.
//
// Locators use dots between object keys and brackets for array indexes:
//
//	item[2].item[0].request
//	paths./users/{id}.get.parameters[0]
//
// [PathBuilder] uses push/pop semantics so recursive traversals only
// materialize a string when something is reported:
//
//	path := pathutil.Get()
//	defer pathutil.Put(path)
//
//	path.Push("item")
//	path.PushIndex(2)
//	// ... recurse ...
//	path.Pop()
//	path.Pop()
//
// [Join] and [Index] build one-off locators from an existing string.
package pathutil
