// Package record defines the closed set of entity variants served by the
// reconciliation engine: museums, artists, and cultural artifacts. Records
// are immutable after load; the engine only reads them.
package record

import "fmt"

// Category partitions records into the three entity classes.
type Category string

const (
	// CategoryMuseum covers museums and institutions.
	CategoryMuseum Category = "museum"
	// CategoryArtist covers artists and creators.
	CategoryArtist Category = "artist"
	// CategoryArtifact covers cultural artifacts and artworks.
	CategoryArtifact Category = "artifact"
)

// Categories returns all categories in lookup priority order: museum is
// checked before artist before artifact. RecordByID relies on this order.
func Categories() []Category {
	return []Category{CategoryMuseum, CategoryArtist, CategoryArtifact}
}

// TypeID returns the reconciliation protocol type identifier.
// Artists are exposed as "person" per the protocol contract.
func (c Category) TypeID() string {
	switch c {
	case CategoryMuseum:
		return "museum"
	case CategoryArtist:
		return "person"
	case CategoryArtifact:
		return "artifact"
	}
	return string(c)
}

// TypeName returns the human-readable protocol type name.
func (c Category) TypeName() string {
	switch c {
	case CategoryMuseum:
		return "Museum/Institution"
	case CategoryArtist:
		return "Artist/Creator"
	case CategoryArtifact:
		return "Cultural Artifact"
	}
	return string(c)
}

// FromTypeID resolves a protocol type id back to a category.
func FromTypeID(id string) (Category, bool) {
	switch id {
	case "museum":
		return CategoryMuseum, true
	case "person":
		return CategoryArtist, true
	case "artifact":
		return CategoryArtifact, true
	}
	return "", false
}

// FormatID builds a stable record identifier from the category prefix and a
// 1-based load sequence number, e.g. MUSEUM_000042. Identifiers are assigned
// once at ingest time and never recomputed.
func FormatID(c Category, seq int) string {
	switch c {
	case CategoryMuseum:
		return fmt.Sprintf("MUSEUM_%06d", seq)
	case CategoryArtist:
		return fmt.Sprintf("ARTIST_%06d", seq)
	case CategoryArtifact:
		return fmt.Sprintf("ARTIFACT_%06d", seq)
	}
	return fmt.Sprintf("%s_%06d", c, seq)
}

// Record is one reconcilable entity. SearchValues returns the category's
// ordered searchable field values; empty values are kept in place so callers
// can skip them without losing field order.
type Record interface {
	ID() string
	Category() Category
	SearchValues() []string
}

// Museum is an institution record loaded from the museums dataset.
type Museum struct {
	Identifier    string
	Name          string
	LegalName     string
	AlternateName string
	MuseumType    string
	StreetAddress string
	City          string
	State         string
	Zip           string
	Phone         string
	Latitude      *float64
	Longitude     *float64
	CountyCode    string
	RegionCode    string
	Revenue       *int64
}

// ID returns the stable record identifier.
func (m *Museum) ID() string { return m.Identifier }

// Category returns CategoryMuseum.
func (m *Museum) Category() Category { return CategoryMuseum }

// SearchValues returns the searchable fields in match order.
func (m *Museum) SearchValues() []string {
	return []string{m.Name, m.LegalName, m.AlternateName, m.MuseumType, m.City, m.State}
}

// Artist is a creator record loaded from the artists dataset.
type Artist struct {
	Identifier  string
	Name        string
	Bio         string
	Nationality string
	Gender      string
	BirthYear   *int
	DeathYear   *int
	WikiQID     string
	ULAN        string
}

// ID returns the stable record identifier.
func (a *Artist) ID() string { return a.Identifier }

// Category returns CategoryArtist.
func (a *Artist) Category() Category { return CategoryArtist }

// SearchValues returns the searchable fields in match order.
func (a *Artist) SearchValues() []string {
	return []string{a.Name, a.Nationality, a.Bio}
}

// Artifact is an artwork record loaded from the artifacts dataset.
type Artifact struct {
	Identifier      string
	Title           string
	Artist          string
	ConstituentID   string
	ArtistBio       string
	Nationality     string
	BeginDate       *int
	EndDate         *int
	Gender          string
	Date            string
	Medium          string
	Dimensions      string
	CreditLine      string
	AccessionNumber string
	Classification  string
	Department      string
	DateAcquired    string
	ObjectID        string
	URL             string
	ImageURL        string
	OnView          string
	HeightCM        *float64
	WidthCM         *float64
	LengthCM        *float64
	WeightKG        *float64
}

// ID returns the stable record identifier.
func (a *Artifact) ID() string { return a.Identifier }

// Category returns CategoryArtifact.
func (a *Artifact) Category() Category { return CategoryArtifact }

// SearchValues returns the searchable fields in match order.
func (a *Artifact) SearchValues() []string {
	return []string{a.Title, a.Artist, a.Medium, a.Classification, a.Department}
}
