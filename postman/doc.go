// Package postman acquires documents for the normalization engine and
// delivers its results.
//
// Import path: github.com/erraggy/apinorm/postman
//
// A [Client] talks to the Postman API: [Client.FetchOpenAPI] downloads the
// OpenAPI document Postman generates from a collection, and [Client.Publish]
// uploads a normalized collection or environment to a workspace.
//
//	c, err := postman.NewClient(apiKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	doc, err := c.FetchOpenAPI(ctx, collectionID)
//
// [Discover] and [LoadFile] find and read exported collection and
// environment files on disk.
//
// Every acquisition failure is an *oaserrors.AcquisitionError and every
// upload failure an *oaserrors.PublishError, so batch callers can tell them
// apart from engine errors. There are no retries.
package postman
