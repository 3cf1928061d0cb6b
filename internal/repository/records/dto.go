package records

import "github.com/culturegraph/reconcile/internal/domain/record"

// Stored JSON forms of the record variants. Field names follow the
// column names of the source exports so a stored database can be
// inspected with standard tooling.

type museumDTO struct {
	ID            string   `json:"id"`
	MuseumName    string   `json:"museum_name"`
	LegalName     string   `json:"legal_name,omitempty"`
	AlternateName string   `json:"alternate_name,omitempty"`
	MuseumType    string   `json:"museum_type,omitempty"`
	StreetAddress string   `json:"street_address_admin,omitempty"`
	City          string   `json:"city_admin,omitempty"`
	State         string   `json:"state_admin,omitempty"`
	Zip           string   `json:"zip_admin,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Latitude      *float64 `json:"latitude,omitempty"`
	Longitude     *float64 `json:"longitude,omitempty"`
	CountyCode    string   `json:"county_code,omitempty"`
	RegionCode    string   `json:"region_code,omitempty"`
	Revenue       *int64   `json:"revenue,omitempty"`
}

type artistDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Bio         string `json:"artist_bio,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Gender      string `json:"gender,omitempty"`
	BirthYear   *int   `json:"birth_year,omitempty"`
	DeathYear   *int   `json:"death_year,omitempty"`
	WikiQID     string `json:"wiki_qid,omitempty"`
	ULAN        string `json:"ulan,omitempty"`
}

type artifactDTO struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Artist          string   `json:"artist,omitempty"`
	ConstituentID   string   `json:"constituent_id,omitempty"`
	ArtistBio       string   `json:"artist_bio,omitempty"`
	Nationality     string   `json:"nationality,omitempty"`
	BeginDate       *int     `json:"begin_date,omitempty"`
	EndDate         *int     `json:"end_date,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	Date            string   `json:"date,omitempty"`
	Medium          string   `json:"medium,omitempty"`
	Dimensions      string   `json:"dimensions,omitempty"`
	CreditLine      string   `json:"credit_line,omitempty"`
	AccessionNumber string   `json:"accession_number,omitempty"`
	Classification  string   `json:"classification,omitempty"`
	Department      string   `json:"department,omitempty"`
	DateAcquired    string   `json:"date_acquired,omitempty"`
	ObjectID        string   `json:"object_id,omitempty"`
	URL             string   `json:"url,omitempty"`
	ImageURL        string   `json:"image_url,omitempty"`
	OnView          string   `json:"on_view,omitempty"`
	HeightCM        *float64 `json:"height_cm,omitempty"`
	WidthCM         *float64 `json:"width_cm,omitempty"`
	LengthCM        *float64 `json:"length_cm,omitempty"`
	WeightKG        *float64 `json:"weight_kg,omitempty"`
}

func museumToDTO(m *record.Museum) museumDTO {
	return museumDTO{
		ID:            m.Identifier,
		MuseumName:    m.Name,
		LegalName:     m.LegalName,
		AlternateName: m.AlternateName,
		MuseumType:    m.MuseumType,
		StreetAddress: m.StreetAddress,
		City:          m.City,
		State:         m.State,
		Zip:           m.Zip,
		Phone:         m.Phone,
		Latitude:      m.Latitude,
		Longitude:     m.Longitude,
		CountyCode:    m.CountyCode,
		RegionCode:    m.RegionCode,
		Revenue:       m.Revenue,
	}
}

func (d museumDTO) toDomain() *record.Museum {
	return &record.Museum{
		Identifier:    d.ID,
		Name:          d.MuseumName,
		LegalName:     d.LegalName,
		AlternateName: d.AlternateName,
		MuseumType:    d.MuseumType,
		StreetAddress: d.StreetAddress,
		City:          d.City,
		State:         d.State,
		Zip:           d.Zip,
		Phone:         d.Phone,
		Latitude:      d.Latitude,
		Longitude:     d.Longitude,
		CountyCode:    d.CountyCode,
		RegionCode:    d.RegionCode,
		Revenue:       d.Revenue,
	}
}

func artistToDTO(a *record.Artist) artistDTO {
	return artistDTO{
		ID:          a.Identifier,
		Name:        a.Name,
		Bio:         a.Bio,
		Nationality: a.Nationality,
		Gender:      a.Gender,
		BirthYear:   a.BirthYear,
		DeathYear:   a.DeathYear,
		WikiQID:     a.WikiQID,
		ULAN:        a.ULAN,
	}
}

func (d artistDTO) toDomain() *record.Artist {
	return &record.Artist{
		Identifier:  d.ID,
		Name:        d.Name,
		Bio:         d.Bio,
		Nationality: d.Nationality,
		Gender:      d.Gender,
		BirthYear:   d.BirthYear,
		DeathYear:   d.DeathYear,
		WikiQID:     d.WikiQID,
		ULAN:        d.ULAN,
	}
}

func artifactToDTO(a *record.Artifact) artifactDTO {
	return artifactDTO{
		ID:              a.Identifier,
		Title:           a.Title,
		Artist:          a.Artist,
		ConstituentID:   a.ConstituentID,
		ArtistBio:       a.ArtistBio,
		Nationality:     a.Nationality,
		BeginDate:       a.BeginDate,
		EndDate:         a.EndDate,
		Gender:          a.Gender,
		Date:            a.Date,
		Medium:          a.Medium,
		Dimensions:      a.Dimensions,
		CreditLine:      a.CreditLine,
		AccessionNumber: a.AccessionNumber,
		Classification:  a.Classification,
		Department:      a.Department,
		DateAcquired:    a.DateAcquired,
		ObjectID:        a.ObjectID,
		URL:             a.URL,
		ImageURL:        a.ImageURL,
		OnView:          a.OnView,
		HeightCM:        a.HeightCM,
		WidthCM:         a.WidthCM,
		LengthCM:        a.LengthCM,
		WeightKG:        a.WeightKG,
	}
}

func (d artifactDTO) toDomain() *record.Artifact {
	return &record.Artifact{
		Identifier:      d.ID,
		Title:           d.Title,
		Artist:          d.Artist,
		ConstituentID:   d.ConstituentID,
		ArtistBio:       d.ArtistBio,
		Nationality:     d.Nationality,
		BeginDate:       d.BeginDate,
		EndDate:         d.EndDate,
		Gender:          d.Gender,
		Date:            d.Date,
		Medium:          d.Medium,
		Dimensions:      d.Dimensions,
		CreditLine:      d.CreditLine,
		AccessionNumber: d.AccessionNumber,
		Classification:  d.Classification,
		Department:      d.Department,
		DateAcquired:    d.DateAcquired,
		ObjectID:        d.ObjectID,
		URL:             d.URL,
		ImageURL:        d.ImageURL,
		OnView:          d.OnView,
		HeightCM:        d.HeightCM,
		WidthCM:         d.WidthCM,
		LengthCM:        d.LengthCM,
		WeightKG:        d.WeightKG,
	}
}
