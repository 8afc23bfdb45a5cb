package catalog

import (
	"encoding/json"
	"errors"
	"strconv"
	"strings"
)

// ErrBlankTitle signals a row whose title is blank in every fallback field.
// Such rows are unusable and are skipped (and counted) by the loader.
var ErrBlankTitle = errors.New("blank title in all fallback fields")

// Normalize converts one raw CSV row into a Movie with the given id.
//
// A blank primary title falls back to original_title; if both are blank the
// row is rejected with ErrBlankTitle. Every other defect degrades per field:
// malformed structured lists become empty, out-of-range or unparsable numbers
// become unset. A single ugly column never loses the row.
func Normalize(row map[string]string, id int) (*Movie, error) {
	title := clean(row["title"])
	if title == "" {
		title = clean(row["original_title"])
	}
	if title == "" {
		return nil, ErrBlankTitle
	}

	m := &Movie{
		ID:            id,
		Title:         title,
		OriginalTitle: clean(row["original_title"]),
		Overview:      clean(row["overview"]),
		Tagline:       clean(row["tagline"]),

		Genres:              parseNameList(row["genres"]),
		Keywords:            parseNameList(row["keywords"]),
		Cast:                parseCast(row["cast"]),
		Crew:                parseCrew(row["crew"]),
		ProductionCompanies: parseNameList(row["production_companies"]),
		ProductionCountries: parseNameList(row["production_countries"]),
		SpokenLanguages:     parseNameList(row["spoken_languages"]),

		OriginalLanguage: clean(row["original_language"]),
		ReleaseDate:      clean(row["release_date"]),

		RuntimeMinutes: parseIntField(row["runtime"], 0),
		VoteAverage:    parseFloatRange(row["vote_average"], 0, 10),
		VoteCount:      parseIntField(row["vote_count"], 0),
		Popularity:     parseFloatMin(row["popularity"], 0),
	}
	return m, nil
}

// clean trims whitespace and maps pandas-style NaN markers to empty.
func clean(s string) string {
	s = strings.TrimSpace(s)
	switch strings.ToLower(s) {
	case "nan", "null", "none":
		return ""
	}
	return s
}

func parseNameList(raw string) []NameRef {
	raw = clean(raw)
	if raw == "" {
		return nil
	}
	var out []NameRef
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func parseCast(raw string) []CastMember {
	raw = clean(raw)
	if raw == "" {
		return nil
	}
	var out []CastMember
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

func parseCrew(raw string) []CrewMember {
	raw = clean(raw)
	if raw == "" {
		return nil
	}
	var out []CrewMember
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		return nil
	}
	return out
}

// parseIntField parses a non-negative integer column. Source files sometimes
// carry integral values as "123.0", so a float parse is the fallback.
func parseIntField(raw string, min int) *int {
	raw = clean(raw)
	if raw == "" {
		return nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return nil
		}
		n = int(f)
	}
	if n < min {
		return nil
	}
	return &n
}

func parseFloatRange(raw string, lo, hi float64) *float64 {
	raw = clean(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < lo || f > hi {
		return nil
	}
	return &f
}

func parseFloatMin(raw string, lo float64) *float64 {
	raw = clean(raw)
	if raw == "" {
		return nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f < lo {
		return nil
	}
	return &f
}
