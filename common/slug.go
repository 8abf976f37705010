package common

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases the input, collapses runs of non [a-z0-9] characters
// into single hyphens, and trims leading/trailing hyphens. Returns "" when
// nothing slug-worthy remains; callers treat an empty slug as "skip".
func Slugify(s string) string {
	lower := strings.ToLower(strings.TrimSpace(s))
	slug := nonSlugChars.ReplaceAllString(lower, "-")
	return strings.Trim(slug, "-")
}
