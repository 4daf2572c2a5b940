package content

import (
	"strings"
	"unicode"

	"sacredgreeks/utils"
)

const maxSlugBytes = 80

// Slugify lower-cases s and joins its alphanumeric runs with single hyphens.
func Slugify(s string) string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
			continue
		}
		pendingDash = true
	}
	out := b.String()
	if len(out) > maxSlugBytes {
		out = strings.TrimRight(utils.TruncateUTF8(out, maxSlugBytes), "-")
	}
	return out
}
