package partition

import (
	"fmt"
	"strings"
)

// Sanitize turns a unit name into a filesystem-safe artifact name.
// Every non-alphanumeric, non-underscore rune becomes an underscore,
// runs of underscores collapse to one, and leading/trailing underscores
// are stripped. An empty result falls back to "unnamed".
func Sanitize(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	lastUnderscore := false
	for _, r := range name {
		ok := r == '_' ||
			(r >= 'a' && r <= 'z') ||
			(r >= 'A' && r <= 'Z') ||
			(r >= '0' && r <= '9')
		if !ok {
			r = '_'
		}
		if r == '_' {
			if lastUnderscore {
				continue
			}
			lastUnderscore = true
		} else {
			lastUnderscore = false
		}
		b.WriteRune(r)
	}
	out := strings.Trim(b.String(), "_")
	if out == "" {
		return "unnamed"
	}
	return out
}

// RelativePath returns the artifact path for a unit, e.g. "functions/parse_input".
func RelativePath(kind UnitKind, name string) string {
	return fmt.Sprintf("%ss/%s", kind, Sanitize(name))
}
