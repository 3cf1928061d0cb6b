// Package match holds the text canonicalization, similarity scoring, and
// query/candidate shapes used by the reconciliation engine.
package match

import (
	"regexp"
	"strings"
)

var (
	articleRE    = regexp.MustCompile(`\b(the|a|an)\b`)
	nonWordRE    = regexp.MustCompile(`[^\p{L}\p{N}_\s]`)
	whitespaceRE = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes text for fuzzy comparison: lowercase, strip
// standalone articles (the/a/an), replace punctuation with spaces, and
// collapse runs of whitespace. Pure and idempotent. Exact matching does NOT
// normalize; it only lowercases.
func Normalize(text string) string {
	t := strings.TrimSpace(strings.ToLower(text))
	t = articleRE.ReplaceAllString(t, "")
	t = nonWordRE.ReplaceAllString(t, " ")
	t = whitespaceRE.ReplaceAllString(t, " ")
	return strings.TrimSpace(t)
}
