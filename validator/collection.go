package validator

import (
	"github.com/erraggy/apinorm/internal/httputil"
	"github.com/erraggy/apinorm/internal/pathutil"
	"github.com/erraggy/apinorm/node"
)

func (v *Validator) validateCollection(doc *node.Node, result *ValidationResult) {
	if !doc.IsObject() {
		v.addError(result, "", "collection must be an object, got "+describe(doc), withField("document"))
		return
	}

	if info, ok := doc.Get("info"); !ok {
		v.addError(result, "", "missing required field", withField("info"))
	} else if !info.IsObject() {
		v.addError(result, "", "must be an object, got "+describe(info), withField("info"))
	} else {
		v.requireString(result, info, "info", "name")
		if v.StrictMode {
			schema, _ := info.Lookup("schema").StringValue()
			if schema != CollectionSchemaURL {
				v.addError(result, "info", "must be "+CollectionSchemaURL, withField("schema"), withValue(info.Lookup("schema").ToValue()))
			}
		}
	}

	if items, ok := v.requireArray(result, doc, "", "item"); ok {
		v.validateItems(items, "item", result)
	}
}

// validateItems checks each element of an item array. Folders recurse.
func (v *Validator) validateItems(items *node.Node, path string, result *ValidationResult) {
	for i, it := range items.Items() {
		itemPath := pathutil.Index(path, i)
		if !it.IsObject() {
			v.addError(result, itemPath, "item must be an object, got "+describe(it))
			continue
		}

		if children, ok := it.Get("item"); ok {
			if !children.IsArray() {
				v.addError(result, itemPath, "must be an array, got "+describe(children), withField("item"))
			} else {
				v.validateItems(children, pathutil.Join(itemPath, "item"), result)
			}
		} else if req, ok := it.Get("request"); ok {
			v.validateRequest(req, pathutil.Join(itemPath, "request"), result)
		} else {
			v.addError(result, itemPath, "item must contain either item (folder) or request", withField("request"))
		}

		if resp, ok := it.Get("response"); ok {
			v.validateResponses(resp, itemPath, result)
		}
	}
}

func (v *Validator) validateRequest(req *node.Node, path string, result *ValidationResult) {
	// A bare string is the shorthand form: the request URL with GET.
	if _, ok := req.StringValue(); ok {
		return
	}
	if !req.IsObject() {
		v.addError(result, path, "request must be an object or URL string, got "+describe(req))
		return
	}

	if _, ok := req.Get("method"); !ok {
		v.addError(result, path, "missing required field", withField("method"))
	}

	url, ok := req.Get("url")
	switch {
	case !ok:
		v.addError(result, path, "missing required field", withField("url"))
	case url.IsObject():
		if !url.Has("raw") {
			v.addError(result, pathutil.Join(path, "url"), "missing required field", withField("raw"))
		}
	default:
		if _, isString := url.StringValue(); !isString {
			v.addError(result, path, "must be a string or object, got "+describe(url), withField("url"))
		}
	}
}

func (v *Validator) validateResponses(resp *node.Node, itemPath string, result *ValidationResult) {
	if !resp.IsArray() {
		v.addError(result, itemPath, "must be an array, got "+describe(resp), withField("response"))
		return
	}
	base := pathutil.Join(itemPath, "response")
	for j, r := range resp.Items() {
		rPath := pathutil.Index(base, j)
		if !r.IsObject() {
			v.addError(result, rPath, "response must be an object, got "+describe(r))
			continue
		}
		for _, field := range []string{"name", "status", "code"} {
			if !r.Has(field) {
				v.addError(result, rPath, "missing required field", withField(field))
			}
		}
		if v.StrictMode {
			v.checkStatusCode(r, rPath, result)
		}
	}
}

// checkStatusCode warns about response codes that are not standard HTTP
// status codes.
func (v *Validator) checkStatusCode(r *node.Node, path string, result *ValidationResult) {
	codeNode, ok := r.Get("code")
	if !ok {
		return
	}
	lit, ok := codeNode.NumberValue()
	if !ok {
		v.addWarning(result, path, "should be a number, got "+describe(codeNode), withField("code"))
		return
	}
	code, valid := httputil.ParseStatusCode(string(lit))
	if !valid || !httputil.IsStandardStatusCode(code) {
		v.addWarning(result, path, "non-standard HTTP status code "+string(lit), withField("code"), withValue(string(lit)))
	}
}
