package match

import (
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Ratio computes an edit-distance similarity between two strings as an
// integer percentage: 100 * (combinedLength - distance) / combinedLength,
// rounded to nearest. The metric is symmetric; two empty strings score 100.
// Callers are expected to pass already-normalized text.
func Ratio(a, b string) int {
	total := utf8.RuneCountInString(a) + utf8.RuneCountInString(b)
	if total == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	// Integer round-half-up of 100*(total-dist)/total.
	return (200*(total-dist) + total) / (2 * total)
}
