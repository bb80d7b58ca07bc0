// Package stripper removes vendor metadata keys from every object in a
// document tree.
//
// Removal applies at any depth, including inside array elements:
//
//	report, err := stripper.Strip(doc, stripper.PostmanMetadataKeys())
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("removed %d keys\n", report.Count())
//
// Stripping is idempotent: a second pass over the same tree removes nothing.
package stripper

import (
	"fmt"

	"github.com/erraggy/apinorm/internal/pathutil"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/walker"
)

// PostmanMetadataKeys returns the keys Postman adds to exported collections
// and environments that are not part of the document content.
func PostmanMetadataKeys() []string {
	return []string{
		"_postman_id",
		"_exporter_id",
		"id",
		"uid",
		"owner",
		"createdAt",
		"updatedAt",
		"lastUpdatedBy",
		"lastRevision",
	}
}

// OpenAPIMetadataKeys returns the Postman export keys that leak into
// OpenAPI documents converted from a collection.
func OpenAPIMetadataKeys() []string {
	return []string{"_postman_id", "_exporter_id"}
}

// Removal records a single removed key.
type Removal struct {
	// Path is the locator of the object the key was removed from
	Path string
	// Key is the removed key
	Key string
}

// String returns the locator of the removed key.
func (r Removal) String() string {
	return pathutil.Join(r.Path, r.Key)
}

// Report lists removals in visit order.
type Report struct {
	Removed []Removal
}

// Count returns the number of removed keys.
func (r *Report) Count() int {
	if r == nil {
		return 0
	}
	return len(r.Removed)
}

// Option configures a strip pass.
type Option func(*options)

type options struct {
	preserve map[string]bool
}

// WithPreserved keeps the given locators even when their final key is in
// the strip set. Locators use the same form as Removal.String, e.g.
// "info.schema".
func WithPreserved(locators ...string) Option {
	return func(o *options) {
		for _, l := range locators {
			o.preserve[l] = true
		}
	}
}

// Strip removes every key in keys from every object reachable from root.
// The tree is modified in place.
func Strip(root *node.Node, keys []string, opts ...Option) (*Report, error) {
	o := &options{preserve: make(map[string]bool)}
	for _, opt := range opts {
		opt(o)
	}

	report := &Report{}
	if len(keys) == 0 || root == nil {
		return report, nil
	}
	strip := make(map[string]bool, len(keys))
	for _, k := range keys {
		strip[k] = true
	}

	err := walker.Walk(root,
		walker.WithObjectHandler(func(obj *node.Node, path string) walker.Action {
			for _, key := range obj.Keys() {
				if !strip[key] || o.preserve[pathutil.Join(path, key)] {
					continue
				}
				obj.Delete(key)
				report.Removed = append(report.Removed, Removal{Path: path, Key: key})
			}
			return walker.Continue
		}),
	)
	if err != nil {
		return report, fmt.Errorf("stripper: %w", err)
	}
	return report, nil
}
