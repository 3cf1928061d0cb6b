package ingest

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMuseums(t *testing.T) {
	path := writeCSV(t, "museums.csv",
		`Museum ID,Museum Name,Legal Name,Museum Type,City (Administrative Location),State (Administrative Location),Latitude,Revenue
8400100001,The Smithsonian,Smithsonian Institution,ART MUSEUM,WASHINGTON,DC,38.8913,"1,234,567"
8400100002,City History Museum,,HISTORY MUSEUM,PORTLAND,OR,,
`)

	museums, err := LoadMuseums(path)
	if err != nil {
		t.Fatalf("LoadMuseums: %v", err)
	}
	if len(museums) != 2 {
		t.Fatalf("expected 2 museums, got %d", len(museums))
	}

	m := museums[0]
	if m.Identifier != "MUSEUM_000001" {
		t.Errorf("unexpected identifier %q", m.Identifier)
	}
	if m.Name != "The Smithsonian" || m.City != "WASHINGTON" || m.State != "DC" {
		t.Errorf("unexpected fields: %+v", m)
	}
	if m.Latitude == nil || *m.Latitude != 38.8913 {
		t.Errorf("latitude not parsed: %v", m.Latitude)
	}
	if m.Revenue == nil || *m.Revenue != 1234567 {
		t.Errorf("comma-grouped revenue not parsed: %v", m.Revenue)
	}

	if museums[1].Identifier != "MUSEUM_000002" {
		t.Errorf("expected sequential identifier, got %q", museums[1].Identifier)
	}
	if museums[1].Latitude != nil {
		t.Errorf("empty latitude should be nil, got %v", *museums[1].Latitude)
	}
}

func TestLoadArtists(t *testing.T) {
	path := writeCSV(t, "artists.csv",
		`id,name,artist_bio,nationality,gender,birth_year,death_year,wiki_qid,ulan
1,Pablo Picasso,"Spanish, 1881-1973",Spanish,male,1881,1973,Q5593,500009666
2,Unknown Maker,,,,,not-a-year,,
`)

	artists, err := LoadArtists(path)
	if err != nil {
		t.Fatalf("LoadArtists: %v", err)
	}
	if len(artists) != 2 {
		t.Fatalf("expected 2 artists, got %d", len(artists))
	}

	a := artists[0]
	if a.Identifier != "ARTIST_000001" {
		t.Errorf("unexpected identifier %q", a.Identifier)
	}
	if a.Name != "Pablo Picasso" || a.Nationality != "Spanish" {
		t.Errorf("unexpected fields: %+v", a)
	}
	if a.BirthYear == nil || *a.BirthYear != 1881 {
		t.Errorf("birth year not parsed: %v", a.BirthYear)
	}
	if a.DeathYear == nil || *a.DeathYear != 1973 {
		t.Errorf("death year not parsed: %v", a.DeathYear)
	}

	if artists[1].DeathYear != nil {
		t.Errorf("malformed year should be nil, got %v", *artists[1].DeathYear)
	}
}

func TestLoadArtifacts(t *testing.T) {
	path := writeCSV(t, "artworks.csv",
		`Title,Artist,Medium,Classification,Department,ObjectID,Height (cm),Width (cm)
"Starry Night",Vincent van Gogh,Oil on canvas,Painting,Painting & Sculpture,79802,73.7,92.1
`)

	artifacts, err := LoadArtifacts(path)
	if err != nil {
		t.Fatalf("LoadArtifacts: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected 1 artifact, got %d", len(artifacts))
	}

	art := artifacts[0]
	if art.Identifier != "ARTIFACT_000001" {
		t.Errorf("unexpected identifier %q", art.Identifier)
	}
	if art.Title != "Starry Night" || art.Artist != "Vincent van Gogh" {
		t.Errorf("unexpected fields: %+v", art)
	}
	if art.ObjectID != "79802" {
		t.Errorf("object id not kept as string: %q", art.ObjectID)
	}
	if art.HeightCM == nil || *art.HeightCM != 73.7 {
		t.Errorf("height not parsed: %v", art.HeightCM)
	}
}

func TestLoadMuseums_ShortRowsTolerated(t *testing.T) {
	path := writeCSV(t, "museums.csv",
		"Museum Name,Legal Name,City (Administrative Location)\nShort Row Museum\n")

	museums, err := LoadMuseums(path)
	if err != nil {
		t.Fatalf("LoadMuseums: %v", err)
	}
	if len(museums) != 1 {
		t.Fatalf("expected 1 museum, got %d", len(museums))
	}
	if museums[0].Name != "Short Row Museum" || museums[0].City != "" {
		t.Errorf("unexpected fields: %+v", museums[0])
	}
}

func TestLoadMuseums_MissingFile(t *testing.T) {
	_, err := LoadMuseums(filepath.Join(t.TempDir(), "absent.csv"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("expected not-exist error, got %v", err)
	}
}

func TestLoadMuseums_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "museums.csv", "Museum Name,Legal Name\n")
	museums, err := LoadMuseums(path)
	if err != nil {
		t.Fatalf("LoadMuseums: %v", err)
	}
	if len(museums) != 0 {
		t.Errorf("expected empty slice, got %d records", len(museums))
	}
}

func TestCleanNumeric(t *testing.T) {
	if v := cleanInt("1,500"); v == nil || *v != 1500 {
		t.Errorf("cleanInt(1,500) = %v", v)
	}
	if v := cleanInt("12.9"); v == nil || *v != 12 {
		t.Errorf("cleanInt(12.9) = %v", v)
	}
	if v := cleanInt("abc"); v != nil {
		t.Errorf("cleanInt(abc) = %v, want nil", *v)
	}
	if v := cleanFloat(""); v != nil {
		t.Errorf("cleanFloat empty = %v, want nil", *v)
	}
}
