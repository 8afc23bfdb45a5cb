package query

import (
	"strings"

	"github.com/cinedex/cinedex/internal/catalog"
)

// matches applies every set filter with AND semantics.
func matches(m *catalog.Movie, c *Criteria) bool {
	if c.SearchText != "" && !matchesSearch(m, strings.ToLower(c.SearchText)) {
		return false
	}
	if len(c.Genres) > 0 && !matchesGenres(m, c.Genres) {
		return false
	}
	if c.YearFrom != nil || c.YearTo != nil {
		year, ok := m.ReleaseYear()
		if !ok {
			return false
		}
		if c.YearFrom != nil && year < *c.YearFrom {
			return false
		}
		if c.YearTo != nil && year > *c.YearTo {
			return false
		}
	}
	if !inFloatRange(m.VoteAverage, c.RatingFrom, c.RatingTo) {
		return false
	}
	if !inIntRange(m.RuntimeMinutes, c.RuntimeFrom, c.RuntimeTo) {
		return false
	}
	if !inIntRange(m.PersonalRating, c.PersonalRatingFrom, c.PersonalRatingTo) {
		return false
	}
	if c.OriginalLanguage != "" && m.OriginalLanguage != c.OriginalLanguage {
		return false
	}
	if c.FavoritesOnly && !m.IsFavorite {
		return false
	}
	return true
}

// matchesSearch tests a lowercased needle against title, overview, and the
// name/character/job values inside cast and crew. Any hit matches.
func matchesSearch(m *catalog.Movie, needle string) bool {
	if containsFold(m.Title, needle) || containsFold(m.Overview, needle) {
		return true
	}
	for _, c := range m.Cast {
		if containsFold(c.Name, needle) || containsFold(c.Character, needle) {
			return true
		}
	}
	for _, c := range m.Crew {
		if containsFold(c.Name, needle) || containsFold(c.Job, needle) {
			return true
		}
	}
	return false
}

// containsFold reports whether the lowercased needle occurs in s.
func containsFold(s, needle string) bool {
	return strings.Contains(strings.ToLower(s), needle)
}

// matchesGenres is OR within the genre set: one shared genre is enough.
func matchesGenres(m *catalog.Movie, wanted []string) bool {
	for _, g := range m.Genres {
		for _, w := range wanted {
			if strings.EqualFold(g.Name, w) {
				return true
			}
		}
	}
	return false
}

func inFloatRange(v, from, to *float64) bool {
	if from == nil && to == nil {
		return true
	}
	if v == nil {
		return false // unset never matches a bounded query
	}
	if from != nil && *v < *from {
		return false
	}
	if to != nil && *v > *to {
		return false
	}
	return true
}

func inIntRange(v, from, to *int) bool {
	if from == nil && to == nil {
		return true
	}
	if v == nil {
		return false
	}
	if from != nil && *v < *from {
		return false
	}
	if to != nil && *v > *to {
		return false
	}
	return true
}
