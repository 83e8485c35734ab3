package chat

import (
	"regexp"
	"strings"
)

var (
	citationPattern   = regexp.MustCompile(`\[[^\]]*\]`)
	tagPattern        = regexp.MustCompile(`</?[a-zA-Z][^<>]*>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// Sanitize normalizes raw assistant output for display and storage:
// bracketed citation markers are removed with their contents, emphasis
// asterisks are dropped, markup tags and stray angle brackets are
// stripped, and whitespace runs collapse to a single space.
//
// The steps are order-sensitive: whitespace collapse assumes the
// bracket and asterisk content is already gone.
func Sanitize(text string) string {
	text = citationPattern.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, "*", "")
	text = tagPattern.ReplaceAllString(text, "")
	text = strings.NewReplacer("<", "", ">", "").Replace(text)
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
