// Package oaserrors provides structured error types for the apinorm library.
//
// Import path: github.com/erraggy/apinorm/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between the failure categories of a
// normalization run and decide whether a batch can continue.
//
// # Error Types
//
//   - [AcquisitionError]: a document could not be obtained (remote call failed,
//     envelope missing or unparseable, local file missing or invalid JSON)
//   - [MalformedDocumentError]: the document's top-level shape is not a known
//     kind, or the tree contains a cycle
//   - [ValidationError]: one or more structural violations, carried in full
//   - [ResourceLimitError]: traversal exceeded a configured limit
//   - [ConfigError]: invalid configuration or options
//   - [PublishError]: a normalized document was rejected by the upload endpoint
//
// # Sentinel Errors
//
//   - [ErrAcquisition]: Matches any [AcquisitionError]
//   - [ErrMalformedDocument]: Matches any [MalformedDocumentError]
//   - [ErrCycle]: Matches [MalformedDocumentError] with IsCycle=true
//   - [ErrValidation]: Matches any [ValidationError]
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrPublish]: Matches any [PublishError]
//
// # Batch Semantics
//
// Acquisition errors abort before the engine runs. Malformed and validation
// errors are scoped to one document: batch callers report them and move on.
//
//	res, err := p.Normalize(doc, validator.KindCollection)
//	var verr *oaserrors.ValidationError
//	if errors.As(err, &verr) {
//	    for _, v := range verr.Violations {
//	        fmt.Println(v)
//	    }
//	}
package oaserrors
