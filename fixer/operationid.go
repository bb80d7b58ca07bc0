package fixer

import (
	"strings"

	"github.com/erraggy/apinorm/internal/httputil"
)

var operationIDReplacer = strings.NewReplacer("/", "_", "{", "_", "}", "_")

// SynthesizeOperationID derives an operationId from an HTTP method and a
// path template: the lowercased method and the path joined by "_", with
// "/", "{" and "}" replaced by "_", runs of "_" collapsed, and leading or
// trailing "_" trimmed.
//
//	SynthesizeOperationID("GET", "/users/{id}")        // "get_users_id"
//	SynthesizeOperationID("post", "/orgs/{org}/teams") // "post_orgs_org_teams"
func SynthesizeOperationID(method, path string) string {
	raw := operationIDReplacer.Replace(httputil.NormalizeMethod(method) + "_" + path)

	var b strings.Builder
	b.Grow(len(raw))
	prev := byte(0)
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '_' && prev == '_' {
			continue
		}
		b.WriteByte(c)
		prev = c
	}
	return strings.Trim(b.String(), "_")
}
