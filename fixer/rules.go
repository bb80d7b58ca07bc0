package fixer

import (
	"fmt"
	"strings"

	"github.com/erraggy/apinorm/internal/httputil"
	"github.com/erraggy/apinorm/internal/pathutil"
	"github.com/erraggy/apinorm/node"
)

// operation is one recognized method entry under paths.
type operation struct {
	pathKey string
	method  string
	op      *node.Node
	loc     string
}

func (o operation) label() string {
	return strings.ToUpper(o.method) + " " + o.pathKey
}

// operations lists every object-valued method entry in document order.
func operations(doc *node.Node) []operation {
	paths := doc.Lookup("paths")
	var out []operation
	for _, p := range paths.Keys() {
		item, _ := paths.Get(p)
		for _, method := range item.Keys() {
			op, _ := item.Get(method)
			if !httputil.IsHTTPMethod(method) || !op.IsObject() {
				continue
			}
			out = append(out, operation{
				pathKey: p,
				method:  method,
				op:      op,
				loc:     pathutil.Join(pathutil.Join("paths", p), method),
			})
		}
	}
	return out
}

// permissiveObjectSchema returns {type: object, additionalProperties: true}.
func permissiveObjectSchema() *node.Node {
	return node.NewObject().
		Set("type", node.String("object")).
		Set("additionalProperties", node.Bool(true))
}

// removeBodies drops requestBody from get and delete operations.
func (r *run) removeBodies(doc *node.Node) {
	if !r.f.isFixEnabled(FixTypeRemovedRequestBody) {
		return
	}
	for _, o := range operations(doc) {
		if !httputil.ForbidsBody(o.method) {
			continue
		}
		if body, ok := o.op.Delete("requestBody"); ok {
			r.record(Fix{
				Type:        FixTypeRemovedRequestBody,
				Path:        pathutil.Join(o.loc, "requestBody"),
				Description: "removed requestBody from " + o.label(),
				Before:      body.ToValue(),
			})
		}
	}
}

// pinServers replaces an existing servers array with the preferred server.
func (r *run) pinServers(doc *node.Node) {
	if !r.f.isFixEnabled(FixTypePinnedServers) || r.f.PreferredServer == "" {
		return
	}
	servers, ok := doc.Get("servers")
	if !ok || !servers.IsArray() {
		return
	}
	pinned := node.NewArray(node.NewObject().
		Set("url", node.String(r.f.PreferredServer)).
		Set("description", node.String(r.f.ServerDescription)))
	if node.Equal(servers, pinned) {
		return
	}
	doc.Set("servers", pinned)
	r.record(Fix{
		Type:        FixTypePinnedServers,
		Path:        "servers",
		Description: "replaced servers with " + r.f.PreferredServer,
		Before:      servers.ToValue(),
		After:       pinned.ToValue(),
	})
}

// repairOperations applies the per-operation rules.
func (r *run) repairOperations(doc *node.Node) {
	for _, o := range operations(doc) {
		r.addOperationID(o)
		r.repairParameters(o)
		if httputil.TakesBody(o.method) {
			r.repairRequestBody(o)
		}
		r.repairResponses(o)
	}
}

func (r *run) addOperationID(o operation) {
	if !r.f.isFixEnabled(FixTypeAddedOperationID) || node.Truthy(o.op.Lookup("operationId")) {
		return
	}
	before := o.op.Lookup("operationId").ToValue()
	id := SynthesizeOperationID(o.method, o.pathKey)
	o.op.Set("operationId", node.String(id))
	r.record(Fix{
		Type:        FixTypeAddedOperationID,
		Path:        pathutil.Join(o.loc, "operationId"),
		Description: fmt.Sprintf("added operationId %q for %s", id, o.label()),
		Before:      before,
		After:       id,
	})
}

func (r *run) repairParameters(o operation) {
	params, ok := o.op.Get("parameters")
	if !ok {
		return
	}
	paramsLoc := pathutil.Join(o.loc, "parameters")
	if !params.IsArray() {
		if !r.f.isFixEnabled(FixTypeCoercedParameters) {
			return
		}
		o.op.Set("parameters", node.NewArray())
		r.record(Fix{
			Type:        FixTypeCoercedParameters,
			Path:        paramsLoc,
			Description: "replaced non-array parameters with [] on " + o.label(),
			Before:      params.ToValue(),
			After:       []any{},
		})
		return
	}

	for i, p := range params.Items() {
		if !p.IsObject() {
			continue
		}
		loc := pathutil.Index(paramsLoc, i)
		name, _ := p.Lookup("name").StringValue()

		if r.f.isFixEnabled(FixTypeStrippedParameterMetadata) {
			for _, key := range r.f.MetadataKeys {
				if removed, ok := p.Delete(key); ok {
					r.record(Fix{
						Type:        FixTypeStrippedParameterMetadata,
						Path:        pathutil.Join(loc, key),
						Description: fmt.Sprintf("removed %s from parameter %q", key, name),
						Before:      removed.ToValue(),
					})
				}
			}
		}

		if r.f.isFixEnabled(FixTypeAddedParameterSchema) && !node.Truthy(p.Lookup("schema")) {
			before := p.Lookup("schema").ToValue()
			schema := node.NewObject().Set("type", node.String("string"))
			p.Set("schema", schema)
			r.record(Fix{
				Type:        FixTypeAddedParameterSchema,
				Path:        pathutil.Join(loc, "schema"),
				Description: fmt.Sprintf("added schema type=string for parameter %q in %s", name, o.label()),
				Before:      before,
				After:       schema.ToValue(),
			})
		}

		if !r.f.isFixEnabled(FixTypeRequiredPathParameter) {
			continue
		}
		if in, _ := p.Lookup("in").StringValue(); in != "path" {
			continue
		}
		if req, isBool := p.Lookup("required").BoolValue(); isBool && req {
			continue
		}
		before := p.Lookup("required").ToValue()
		p.Set("required", node.Bool(true))
		r.record(Fix{
			Type:        FixTypeRequiredPathParameter,
			Path:        pathutil.Join(loc, "required"),
			Description: fmt.Sprintf("marked path parameter %q required in %s", name, o.label()),
			Before:      before,
			After:       true,
		})
	}
}

func (r *run) repairRequestBody(o operation) {
	media := o.op.Lookup("requestBody", "content", httputil.MediaTypeJSON)
	if !media.IsObject() || node.Truthy(media.Lookup("schema")) {
		return
	}
	loc := pathutil.Join(pathutil.Join(pathutil.Join(o.loc, "requestBody"), "content"), httputil.MediaTypeJSON)

	if example, ok := media.Get("example"); ok && !example.IsNull() {
		if !r.f.isFixEnabled(FixTypeWrappedRequestExample) {
			return
		}
		schema := permissiveObjectSchema().Set("example", example)
		media.Delete("example")
		media.Set("schema", schema)
		r.record(Fix{
			Type:        FixTypeWrappedRequestExample,
			Path:        pathutil.Join(loc, "schema"),
			Description: "wrapped example in requestBody schema for " + o.label(),
			Before:      example.ToValue(),
			After:       schema.ToValue(),
		})
		return
	}

	if !r.f.isFixEnabled(FixTypeAddedRequestSchema) {
		return
	}
	schema := permissiveObjectSchema()
	media.Set("schema", schema)
	r.record(Fix{
		Type:        FixTypeAddedRequestSchema,
		Path:        pathutil.Join(loc, "schema"),
		Description: "added empty requestBody schema for " + o.label(),
		After:       schema.ToValue(),
	})
}

func (r *run) repairResponses(o operation) {
	if !r.f.isFixEnabled(FixTypeAddedResponseSchema) {
		return
	}
	responses := o.op.Lookup("responses")
	for _, code := range responses.Keys() {
		resp, _ := responses.Get(code)
		media := resp.Lookup("content", httputil.MediaTypeJSON)
		if !media.IsObject() || node.Truthy(media.Lookup("schema")) {
			continue
		}
		schema := permissiveObjectSchema()
		media.Set("schema", schema)
		loc := pathutil.Join(pathutil.Join(pathutil.Join(pathutil.Join(o.loc, "responses"), code), "content"), httputil.MediaTypeJSON)
		r.record(Fix{
			Type:        FixTypeAddedResponseSchema,
			Path:        pathutil.Join(loc, "schema"),
			Description: fmt.Sprintf("added default response schema for status %s on %s", code, o.label()),
			After:       schema.ToValue(),
		})
	}
}
