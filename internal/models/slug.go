package models

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugSpaces       = regexp.MustCompile(`\s+`)
	slugDashes       = regexp.MustCompile(`-+`)
)

// Slugify turns a title into a URL slug: accents are stripped, anything that
// is not a lowercase letter, digit, space or hyphen is dropped, and runs of
// whitespace and hyphens collapse into a single hyphen.
func Slugify(title string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	s, _, err := transform.String(t, strings.ToLower(title))
	if err != nil {
		s = strings.ToLower(title)
	}

	s = slugInvalidChars.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	s = slugSpaces.ReplaceAllString(s, "-")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
