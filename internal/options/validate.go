// Package options provides shared utilities for input validation across packages.
package options

import (
	"fmt"

	"github.com/erraggy/apinorm/oaserrors"
)

// Source is one named way of supplying a document.
type Source struct {
	Name string
	Set  bool
}

// RequireOne ensures exactly one of sources is set. The returned
// *oaserrors.ConfigError names every source and how many were given.
func RequireOne(sources ...Source) error {
	names := make([]string, len(sources))
	count := 0
	for i, s := range sources {
		names[i] = s.Name
		if s.Set {
			count++
		}
	}
	if count == 1 {
		return nil
	}
	return &oaserrors.ConfigError{
		Option:  "input",
		Message: fmt.Sprintf("exactly one of %s must be provided (got %d)", joinOr(names), count),
	}
}

// joinOr renders names as "a, b, or c".
func joinOr(names []string) string {
	switch len(names) {
	case 0:
		return ""
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	}
	out := ""
	for i, n := range names {
		switch {
		case i == len(names)-1:
			out += "or " + n
		default:
			out += n + ", "
		}
	}
	return out
}
