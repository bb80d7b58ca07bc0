// Package pipeline composes the validator, the patch rules and the
// metadata stripper into the single entry point used by the CLI and the
// MCP server.
//
// A run resolves the document kind, gates Postman documents on structural
// validity, optionally overwrites the display name, patches OpenAPI
// documents, and finally strips metadata keys from the whole tree:
//
//	p, err := pipeline.New(
//	    pipeline.WithPreferredServer("https://api.example.com"),
//	)
//	if err != nil {
//	    return err
//	}
//	res, err := p.Normalize(doc, validator.KindAuto)
//	if err != nil {
//	    return err // *oaserrors.ValidationError, *oaserrors.MalformedDocumentError, ...
//	}
//	for _, line := range res.ChangeLog() {
//	    fmt.Println(line)
//	}
//
// A Pipeline is immutable after construction and may be shared across
// goroutines, each normalizing a different document. The document passed
// to Normalize is modified in place.
package pipeline
