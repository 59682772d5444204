package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled patterns for heading text cleanup.
var (
	imagePattern    = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	linkTextPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	entityPattern   = regexp.MustCompile(`&[^;\s]+;`)
	boldPattern     = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	nonAlnumPattern = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slug derives an anchor id from heading text.
// Images are dropped, links keep their text, entities and bold markers are
// stripped, then every run of characters outside [a-z0-9] becomes one hyphen.
// Slug is total and idempotent; empty input yields "".
func Slug(text string) string {
	s := CleanHeadingText(text)
	s = strings.ToLower(s)
	s = nonAlnumPattern.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// CleanHeadingText strips inline markdown from heading text for display in
// navigation: images, link syntax, HTML entities and bold markers.
func CleanHeadingText(text string) string {
	s := imagePattern.ReplaceAllString(text, "")
	s = linkTextPattern.ReplaceAllString(s, "$1")
	s = entityPattern.ReplaceAllString(s, "")
	s = boldPattern.ReplaceAllString(s, "$1")
	return strings.TrimSpace(s)
}
