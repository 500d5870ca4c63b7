package helper

import (
	"strings"
)

// GenerateSlug derives a URL-safe slug from a title: lowercase, spaces and
// separators to hyphens, everything outside [a-z0-9-] dropped, runs of
// hyphens collapsed.
func GenerateSlug(title string) string {
	s := strings.ToLower(strings.TrimSpace(title))
	r := strings.NewReplacer(" ", "-", "_", "-", "—", "-", "–", "-")
	s = r.Replace(s)
	s = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			return r
		}
		return -1
	}, s)
	for strings.Contains(s, "--") {
		s = strings.ReplaceAll(s, "--", "-")
	}
	return strings.Trim(s, "-")
}
