package validator

import (
	"fmt"
	"strings"

	"github.com/erraggy/apinorm/internal/issues"
	"github.com/erraggy/apinorm/node"
	"github.com/erraggy/apinorm/oaserrors"
)

// DocumentKind identifies the kind of document being processed.
type DocumentKind int

const (
	// KindAuto detects the kind from the document's top-level keys.
	KindAuto DocumentKind = iota
	// KindCollection is a Postman collection (info + item).
	KindCollection
	// KindEnvironment is a Postman environment (name + values).
	KindEnvironment
	// KindOpenAPI is an OpenAPI-shaped document (paths).
	KindOpenAPI
)

// File name suffixes of exported Postman documents.
const (
	CollectionFileSuffix  = ".postman_collection.json"
	EnvironmentFileSuffix = ".postman_environment.json"
)

// String returns the kind name used in messages and on the command line.
func (k DocumentKind) String() string {
	switch k {
	case KindAuto:
		return "auto"
	case KindCollection:
		return "collection"
	case KindEnvironment:
		return "environment"
	case KindOpenAPI:
		return "openapi"
	default:
		return fmt.Sprintf("DocumentKind(%d)", k)
	}
}

// ParseKind parses a kind name as printed by String. The empty string is
// KindAuto.
func ParseKind(s string) (DocumentKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return KindAuto, nil
	case "collection":
		return KindCollection, nil
	case "environment", "env":
		return KindEnvironment, nil
	case "openapi", "oas":
		return KindOpenAPI, nil
	}
	return KindAuto, &oaserrors.ConfigError{
		Option:  "kind",
		Value:   s,
		Message: "must be one of auto, collection, environment, openapi",
	}
}

// KindFromFilename returns the kind implied by a Postman export file name,
// or KindAuto when the name carries no recognized suffix.
func KindFromFilename(name string) DocumentKind {
	switch {
	case strings.HasSuffix(name, CollectionFileSuffix):
		return KindCollection
	case strings.HasSuffix(name, EnvironmentFileSuffix):
		return KindEnvironment
	default:
		return KindAuto
	}
}

// DetectKind recognizes the document kind from its top-level keys. A root
// that matches no kind, or more than one, returns a MalformedDocumentError
// carrying a single violation for the whole document.
func DetectKind(doc *node.Node) (DocumentKind, error) {
	if !doc.IsObject() {
		return KindAuto, unknownKind(fmt.Sprintf("document root must be an object, got %s", describe(doc)))
	}

	var matched []DocumentKind
	if doc.Has("info") && doc.Has("item") {
		matched = append(matched, KindCollection)
	}
	if doc.Has("name") && doc.Has("values") {
		matched = append(matched, KindEnvironment)
	}
	if doc.Has("paths") {
		matched = append(matched, KindOpenAPI)
	}

	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		if present, missing, ok := partialDiscriminator(doc); ok {
			return KindAuto, &oaserrors.MalformedDocumentError{
				Message: fmt.Sprintf("unrecognized document kind: has %s but no %s", present, missing),
				Violations: []issues.Issue{{
					Field:    missing,
					Message:  "missing required field (document has " + present + ")",
					Severity: issues.SeverityError,
				}},
			}
		}
		return KindAuto, unknownKind("unrecognized document kind: expected info+item, name+values, or paths")
	default:
		names := make([]string, len(matched))
		for i, k := range matched {
			names[i] = k.String()
		}
		return KindAuto, unknownKind("ambiguous document kind: matches " + strings.Join(names, " and "))
	}
}

// partialDiscriminator reports the one key pair of which exactly one half
// is present, naming the present and the missing key. It fails when no
// pair, or more than one, is half present.
func partialDiscriminator(doc *node.Node) (present, missing string, ok bool) {
	found := 0
	for _, pair := range [][2]string{{"info", "item"}, {"name", "values"}} {
		a, b := doc.Has(pair[0]), doc.Has(pair[1])
		switch {
		case a && !b:
			present, missing = pair[0], pair[1]
			found++
		case b && !a:
			present, missing = pair[1], pair[0]
			found++
		}
	}
	if found != 1 {
		return "", "", false
	}
	return present, missing, true
}

func unknownKind(msg string) error {
	return &oaserrors.MalformedDocumentError{
		Message: msg,
		Violations: []issues.Issue{{
			Field:    "document",
			Message:  msg,
			Severity: issues.SeverityError,
		}},
	}
}

// describe names the JSON type of n for messages.
func describe(n *node.Node) string {
	switch n.Kind() {
	case node.Object:
		return "object"
	case node.Array:
		return "array"
	}
	switch n.Value().(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case node.Number:
		return "number"
	default:
		return "unknown"
	}
}
