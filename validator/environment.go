package validator

import (
	"github.com/erraggy/apinorm/internal/pathutil"
	"github.com/erraggy/apinorm/node"
)

func (v *Validator) validateEnvironment(doc *node.Node, result *ValidationResult) {
	if !doc.IsObject() {
		v.addError(result, "", "environment must be an object, got "+describe(doc), withField("document"))
		return
	}

	if v.StrictMode && !doc.Has("id") {
		v.addError(result, "", "missing required field", withField("id"))
	}
	v.requireString(result, doc, "", "name")

	values, ok := v.requireArray(result, doc, "", "values")
	if !ok || !v.StrictMode {
		return
	}
	for i, val := range values.Items() {
		path := pathutil.Index("values", i)
		if !val.IsObject() {
			v.addError(result, path, "value must be an object, got "+describe(val))
			continue
		}
		v.requireString(result, val, path, "key")
	}
}
