package slug

import (
	"strings"
	"unicode"
)

// Slugify normalizes an account name into its canonical stored form:
// lowercase, runs of whitespace and hyphens collapsed into a single dash,
// and everything that is not a letter, digit or underscore dropped. A name
// that slugs to the empty string is invalid.
func Slugify(name string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9' || r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
		}
	}
	return b.String()
}
