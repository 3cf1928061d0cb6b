// Package ingest loads museum, artist, and artifact records from CSV
// exports and assigns sequential identifiers in file order.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/culturegraph/reconcile/internal/domain/record"
)

// header maps a CSV header row to column indexes.
type header map[string]int

func newHeader(row []string) header {
	h := make(header, len(row))
	for i, name := range row {
		h[strings.TrimSpace(name)] = i
	}
	return h
}

// get returns the trimmed cell for the named column, or "" when the
// column is absent from the file.
func (h header) get(row []string, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// LoadMuseums reads the IMLS museum universe export.
func LoadMuseums(path string) ([]*record.Museum, error) {
	var museums []*record.Museum
	err := readRows(path, func(h header, row []string) {
		seq := len(museums) + 1
		museums = append(museums, &record.Museum{
			Identifier:    record.FormatID(record.CategoryMuseum, seq),
			Name:          h.get(row, "Museum Name"),
			LegalName:     h.get(row, "Legal Name"),
			AlternateName: h.get(row, "Alternate Name"),
			MuseumType:    h.get(row, "Museum Type"),
			StreetAddress: h.get(row, "Street Address (Administrative Location)"),
			City:          h.get(row, "City (Administrative Location)"),
			State:         h.get(row, "State (Administrative Location)"),
			Zip:           h.get(row, "Zip Code (Administrative Location)"),
			Phone:         h.get(row, "Phone Number"),
			Latitude:      cleanFloat(h.get(row, "Latitude")),
			Longitude:     cleanFloat(h.get(row, "Longitude")),
			CountyCode:    h.get(row, "County Code (FIPS)"),
			RegionCode:    h.get(row, "Region Code (AAM)"),
			Revenue:       cleanInt64(h.get(row, "Revenue")),
		})
	})
	if err != nil {
		return nil, err
	}
	return museums, nil
}

// LoadArtists reads the artist export.
func LoadArtists(path string) ([]*record.Artist, error) {
	var artists []*record.Artist
	err := readRows(path, func(h header, row []string) {
		seq := len(artists) + 1
		artists = append(artists, &record.Artist{
			Identifier:  record.FormatID(record.CategoryArtist, seq),
			Name:        h.get(row, "name"),
			Bio:         h.get(row, "artist_bio"),
			Nationality: h.get(row, "nationality"),
			Gender:      h.get(row, "gender"),
			BirthYear:   cleanInt(h.get(row, "birth_year")),
			DeathYear:   cleanInt(h.get(row, "death_year")),
			WikiQID:     h.get(row, "wiki_qid"),
			ULAN:        h.get(row, "ulan"),
		})
	})
	if err != nil {
		return nil, err
	}
	return artists, nil
}

// LoadArtifacts reads the artwork export.
func LoadArtifacts(path string) ([]*record.Artifact, error) {
	var artifacts []*record.Artifact
	err := readRows(path, func(h header, row []string) {
		seq := len(artifacts) + 1
		artifacts = append(artifacts, &record.Artifact{
			Identifier:      record.FormatID(record.CategoryArtifact, seq),
			Title:           h.get(row, "Title"),
			Artist:          h.get(row, "Artist"),
			ConstituentID:   h.get(row, "ConstituentID"),
			ArtistBio:       h.get(row, "ArtistBio"),
			Nationality:     h.get(row, "Nationality"),
			BeginDate:       cleanInt(h.get(row, "BeginDate")),
			EndDate:         cleanInt(h.get(row, "EndDate")),
			Gender:          h.get(row, "Gender"),
			Date:            h.get(row, "Date"),
			Medium:          h.get(row, "Medium"),
			Dimensions:      h.get(row, "Dimensions"),
			CreditLine:      h.get(row, "CreditLine"),
			AccessionNumber: h.get(row, "AccessionNumber"),
			Classification:  h.get(row, "Classification"),
			Department:      h.get(row, "Department"),
			DateAcquired:    h.get(row, "DateAcquired"),
			ObjectID:        h.get(row, "ObjectID"),
			URL:             h.get(row, "URL"),
			ImageURL:        h.get(row, "ImageURL"),
			OnView:          h.get(row, "OnView"),
			HeightCM:        cleanFloat(h.get(row, "Height (cm)")),
			WidthCM:         cleanFloat(h.get(row, "Width (cm)")),
			LengthCM:        cleanFloat(h.get(row, "Length (cm)")),
			WeightKG:        cleanFloat(h.get(row, "Weight (kg)")),
		})
	})
	if err != nil {
		return nil, err
	}
	return artifacts, nil
}

// readRows streams a CSV file, calling fn for each data row. Rows with a
// deviating field count are tolerated so partially filled exports load.
func readRows(path string, fn func(h header, row []string)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	headerRow, err := r.Read()
	if err == io.EOF {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	h := newHeader(headerRow)

	for {
		row, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		fn(h, row)
	}
}

// cleanFloat parses a float cell, returning nil for empty or malformed values.
func cleanFloat(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

// cleanInt parses an integer cell. Thousands separators and decimal
// fractions are tolerated; malformed values become nil.
func cleanInt(s string) *int {
	if v := cleanInt64(s); v != nil {
		i := int(*v)
		return &i
	}
	return nil
}

func cleanInt64(s string) *int64 {
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", "")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	v := int64(f)
	return &v
}
