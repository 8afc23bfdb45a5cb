// Package catalog defines the movie record data model and the normalization
// of raw CSV rows into typed records.
package catalog

import (
	"strconv"
	"strings"
)

// NameRef is one entry of a structured list column such as genres, keywords,
// production companies/countries, or spoken languages.
type NameRef struct {
	Name string `json:"name"`
}

// CastMember is one credited cast entry.
type CastMember struct {
	Name      string `json:"name"`
	Character string `json:"character,omitempty"`
}

// CrewMember is one credited crew entry.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job,omitempty"`
}

// Movie is one catalog entry.
//
// Pointer fields distinguish "unset" from a legitimate zero value: a vote
// average of 0.0 is real data, a nil VoteAverage means the source had none.
// That distinction drives filtering, sorting, and statistics.
type Movie struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title,omitempty"`
	Overview      string `json:"overview,omitempty"`
	Tagline       string `json:"tagline,omitempty"`

	Genres              []NameRef    `json:"genres"`
	Keywords            []NameRef    `json:"keywords,omitempty"`
	Cast                []CastMember `json:"cast,omitempty"`
	Crew                []CrewMember `json:"crew,omitempty"`
	ProductionCompanies []NameRef    `json:"production_companies,omitempty"`
	ProductionCountries []NameRef    `json:"production_countries,omitempty"`
	SpokenLanguages     []NameRef    `json:"spoken_languages,omitempty"`

	OriginalLanguage string `json:"original_language,omitempty"`

	// ReleaseDate keeps the source form (YYYY-MM-DD, possibly partial or
	// empty). Use ReleaseYear to read it as a year.
	ReleaseDate string `json:"release_date,omitempty"`

	RuntimeMinutes *int     `json:"runtime,omitempty"`
	VoteAverage    *float64 `json:"vote_average,omitempty"`
	VoteCount      *int     `json:"vote_count,omitempty"`
	Popularity     *float64 `json:"popularity,omitempty"`

	PersonalRating *int   `json:"personal_rating,omitempty"`
	PersonalNotes  string `json:"personal_notes,omitempty"`
	IsFavorite     bool   `json:"is_favorite"`
}

// ReleaseYear parses the year out of ReleaseDate.
// The second return is false when the date is missing or unparsable; such
// records never match a year-bounded filter and sort as the lowest value.
func (m *Movie) ReleaseYear() (int, bool) {
	if m.ReleaseDate == "" {
		return 0, false
	}
	head, _, _ := strings.Cut(m.ReleaseDate, "-")
	year, err := strconv.Atoi(head)
	if err != nil || year <= 0 {
		return 0, false
	}
	return year, true
}

// Clone returns a copy of the record safe to hand outside the store's lock.
// List fields are shared, not deep-copied: mutations replace them wholesale
// and never edit entries in place.
func (m *Movie) Clone() *Movie {
	c := *m
	return &c
}
