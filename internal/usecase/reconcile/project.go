package reconcile

import (
	"fmt"
	"strings"

	"github.com/culturegraph/reconcile/internal/domain/match"
	"github.com/culturegraph/reconcile/internal/domain/record"
)

// Project shapes a matched record into a protocol candidate. The display
// name and description fall back to generic labels when the source row
// is sparse.
func Project(rec record.Record, score int, confident bool) (match.Candidate, error) {
	var name, description string

	switch r := rec.(type) {
	case *record.Museum:
		name = firstNonEmpty(r.Name, r.LegalName, "Unnamed Museum")
		var parts []string
		if r.City != "" {
			parts = append(parts, r.City)
		}
		if r.State != "" {
			parts = append(parts, r.State)
		}
		if r.MuseumType != "" {
			parts = append(parts, fmt.Sprintf("(%s)", r.MuseumType))
		}
		description = joinOr(parts, "Museum")

	case *record.Artist:
		name = firstNonEmpty(r.Name, "Unknown Artist")
		var parts []string
		if r.Nationality != "" {
			parts = append(parts, r.Nationality)
		}
		switch {
		case r.BirthYear != nil && r.DeathYear != nil:
			parts = append(parts, fmt.Sprintf("(%d–%d)", *r.BirthYear, *r.DeathYear))
		case r.BirthYear != nil:
			parts = append(parts, fmt.Sprintf("(b. %d)", *r.BirthYear))
		}
		if r.Bio != "" {
			if bioParts := strings.Split(r.Bio, ","); len(bioParts) > 1 {
				parts = append(parts, strings.TrimSpace(bioParts[1]))
			}
		}
		description = joinOr(parts, "Artist")

	case *record.Artifact:
		name = firstNonEmpty(r.Title, "Untitled")
		var parts []string
		if r.Artist != "" {
			parts = append(parts, "by "+r.Artist)
		}
		if r.Date != "" {
			parts = append(parts, r.Date)
		}
		if r.Medium != "" {
			parts = append(parts, r.Medium)
		}
		if r.Department != "" {
			parts = append(parts, fmt.Sprintf("(%s)", r.Department))
		}
		description = joinOr(parts, "Artwork")

	default:
		return match.Candidate{}, fmt.Errorf("unsupported record variant %T", rec)
	}

	cat := rec.Category()
	return match.Candidate{
		ID:          rec.ID(),
		Name:        name,
		Types:       []match.TypeRef{{ID: cat.TypeID(), Name: cat.TypeName()}},
		Score:       score,
		Match:       confident,
		Description: description,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinOr(parts []string, fallback string) string {
	if len(parts) == 0 {
		return fallback
	}
	return strings.Join(parts, ", ")
}
