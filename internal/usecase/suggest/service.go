// Package suggest serves the auto-completion endpoints: entity
// suggestions ride on the matching pipeline, type and property
// suggestions filter static catalogs.
package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/culturegraph/reconcile/internal/domain/match"
	"github.com/culturegraph/reconcile/internal/domain/record"
)

const (
	// searchLimit is how many candidates the matcher is asked for.
	searchLimit = 20
	// returnLimit is how many suggestions a response carries.
	returnLimit = 10
)

// Reconciler matches free text against the dataset.
type Reconciler interface {
	Reconcile(ctx context.Context, q match.Query) ([]match.Candidate, error)
}

// Property describes a data-extension column.
type Property struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// properties the dataset can extend candidates with.
var catalog = []Property{
	{ID: "location", Name: "Location"},
	{ID: "date", Name: "Date/Period"},
	{ID: "creator", Name: "Creator/Artist"},
	{ID: "medium", Name: "Medium/Material"},
	{ID: "nationality", Name: "Nationality"},
	{ID: "classification", Name: "Classification"},
	{ID: "department", Name: "Department"},
	{ID: "museum_type", Name: "Museum Type"},
}

// Service answers suggest and extend requests.
type Service struct {
	matcher Reconciler
}

// New creates a suggestion service.
func New(matcher Reconciler) *Service {
	return &Service{matcher: matcher}
}

// Entities suggests records whose text resembles the prefix. The cursor
// advances by the number of suggestions returned.
func (s *Service) Entities(ctx context.Context, prefix string, cursor int) ([]match.Candidate, int, error) {
	candidates, err := s.matcher.Reconcile(ctx, match.Query{Text: prefix, Limit: searchLimit})
	if err != nil {
		return nil, cursor, fmt.Errorf("suggest entities: %w", err)
	}
	if len(candidates) > returnLimit {
		candidates = candidates[:returnLimit]
	}
	return candidates, cursor + len(candidates), nil
}

// Types returns the entity types whose display name contains the prefix.
func (s *Service) Types(prefix string) []match.TypeRef {
	prefix = strings.ToLower(prefix)
	out := []match.TypeRef{}
	for _, cat := range []record.Category{record.CategoryArtifact, record.CategoryMuseum, record.CategoryArtist} {
		ref := match.TypeRef{ID: cat.TypeID(), Name: cat.TypeName()}
		if strings.Contains(strings.ToLower(ref.Name), prefix) {
			out = append(out, ref)
		}
	}
	return out
}

// Properties returns the extension properties whose display name contains
// the prefix.
func (s *Service) Properties(prefix string) []Property {
	prefix = strings.ToLower(prefix)
	out := []Property{}
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Name), prefix) {
			out = append(out, p)
		}
	}
	return out
}

// AllProperties returns the full extension catalog.
func (s *Service) AllProperties() []Property {
	return catalog
}
