// Package slug derives URL-safe identifiers from display names.
package slug

import "strings"

// Make converts a human-readable name into a URL slug: lowercase, runs
// of non-alphanumeric characters collapsed into single hyphens, leading
// and trailing hyphens stripped. Idempotent: Make(Make(s)) == Make(s).
func Make(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen {
			b.WriteByte('-')
			lastHyphen = true
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
