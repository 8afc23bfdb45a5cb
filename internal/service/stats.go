package service

import (
	"sort"
)

// GenreCount is one genre's record count.
type GenreCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DecadeCount is one decade's record count.
type DecadeCount struct {
	Decade int `json:"decade"`
	Count  int `json:"count"`
}

// Stats aggregates the live collection: the store's basic figures plus genre
// and decade distributions.
type Stats struct {
	Total         int           `json:"total"`
	AvgRating     float64       `json:"avg_rating"`
	FavoriteCount int           `json:"favorite_count"`
	RatedCount    int           `json:"rated_count"`
	TopGenres     []GenreCount  `json:"top_genres"`
	Decades       []DecadeCount `json:"decade_distribution"`
}

// topGenresLimit caps the genre distribution to the most frequent entries.
const topGenresLimit = 10

// Stats computes aggregates with a full pass over the collection.
func (s *Service) Stats() *Stats {
	base := s.store.Stats()
	st := &Stats{
		Total:         base.Total,
		AvgRating:     base.AvgRating,
		FavoriteCount: base.FavoriteCount,
		RatedCount:    base.RatedCount,
	}

	genreCounts := map[string]int{}
	decadeCounts := map[int]int{}
	for _, m := range s.store.Snapshot() {
		for _, g := range m.Genres {
			if g.Name != "" {
				genreCounts[g.Name]++
			}
		}
		if year, ok := m.ReleaseYear(); ok {
			decadeCounts[(year/10)*10]++
		}
	}

	for name, n := range genreCounts {
		st.TopGenres = append(st.TopGenres, GenreCount{Name: name, Count: n})
	}
	// Count descending, name ascending on ties, so output is deterministic.
	sort.Slice(st.TopGenres, func(i, j int) bool {
		if st.TopGenres[i].Count != st.TopGenres[j].Count {
			return st.TopGenres[i].Count > st.TopGenres[j].Count
		}
		return st.TopGenres[i].Name < st.TopGenres[j].Name
	})
	if len(st.TopGenres) > topGenresLimit {
		st.TopGenres = st.TopGenres[:topGenresLimit]
	}

	for decade, n := range decadeCounts {
		st.Decades = append(st.Decades, DecadeCount{Decade: decade, Count: n})
	}
	sort.Slice(st.Decades, func(i, j int) bool {
		return st.Decades[i].Decade < st.Decades[j].Decade
	})

	return st
}
