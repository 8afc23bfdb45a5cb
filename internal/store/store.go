// Package store owns the canonical in-memory movie collection.
//
// The store is the single owner of all records. Records handed out are
// treated as immutable snapshots: mutations clone the record, modify the
// clone, and swap the pointer under the write lock, so readers holding an
// earlier snapshot never observe a torn record.
//
// Thread-safety model:
//   - reads take the RWMutex read lock and never block each other
//   - all mutations share one coarse exclusive section, which also covers
//     the id-assignment counter
package store

import (
	"sync"

	"github.com/cinedex/cinedex/internal/catalog"
)

// Patch is a partial update. Nil fields are left unchanged. Only the fields
// the API exposes as editable appear here.
type Patch struct {
	Title          *string `json:"title,omitempty"`
	Overview       *string `json:"overview,omitempty"`
	PersonalRating *int    `json:"personal_rating,omitempty"`
	PersonalNotes  *string `json:"personal_notes,omitempty"`
	IsFavorite     *bool   `json:"is_favorite,omitempty"`
}

// Stats holds the aggregate figures computed over the live collection.
type Stats struct {
	Total         int     `json:"total"`
	AvgRating     float64 `json:"avg_rating"`
	FavoriteCount int     `json:"favorite_count"`
	RatedCount    int     `json:"rated_count"`
}

// Store is the in-memory movie collection.
type Store struct {
	mu     sync.RWMutex
	movies []*catalog.Movie
	byID   map[int]*catalog.Movie
	nextID int
}

// New creates an empty store. The first inserted record gets id 1.
func New() *Store {
	return &Store{byID: make(map[int]*catalog.Movie), nextID: 1}
}

// Replace atomically publishes a freshly loaded collection, discarding the
// previous contents. Ids in movies must already be assigned and unique.
func (s *Store) Replace(movies []*catalog.Movie) {
	byID := make(map[int]*catalog.Movie, len(movies))
	nextID := 1
	for _, m := range movies {
		byID[m.ID] = m
		if m.ID >= nextID {
			nextID = m.ID + 1
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.movies = movies
	s.byID = byID
	s.nextID = nextID
}

// Snapshot returns the records in iteration order. The returned slice is a
// copy; the records themselves are shared immutable snapshots.
func (s *Store) Snapshot() []*catalog.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*catalog.Movie, len(s.movies))
	copy(out, s.movies)
	return out
}

// Count returns the number of records.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.movies)
}

// Get returns the record with the given id, or NotFound.
func (s *Store) Get(id int) (*catalog.Movie, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.byID[id]
	if !ok {
		return nil, NotFound(id)
	}
	return m, nil
}

// Insert assigns the next unused id to m and appends it to the end of
// iteration order, making new records the deterministic tail of unsorted
// pagination. Ids freed by Delete are never reissued.
func (s *Store) Insert(m *catalog.Movie) *catalog.Movie {
	s.mu.Lock()
	defer s.mu.Unlock()
	m.ID = s.nextID
	s.nextID++
	s.movies = append(s.movies, m)
	s.byID[m.ID] = m
	return m
}

// Update applies a partial patch. Existence is checked before value
// validation, so an out-of-range rating against an unknown id is NotFound.
func (s *Store) Update(id int, p Patch) (*catalog.Movie, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[id]
	if !ok {
		return nil, NotFound(id)
	}
	if p.PersonalRating != nil && (*p.PersonalRating < 1 || *p.PersonalRating > 10) {
		return nil, Validation("personal rating %d out of range [1,10]", *p.PersonalRating)
	}

	m := old.Clone()
	if p.Title != nil {
		m.Title = *p.Title
	}
	if p.Overview != nil {
		m.Overview = *p.Overview
	}
	if p.PersonalRating != nil {
		r := *p.PersonalRating
		m.PersonalRating = &r
	}
	if p.PersonalNotes != nil {
		m.PersonalNotes = *p.PersonalNotes
	}
	if p.IsFavorite != nil {
		m.IsFavorite = *p.IsFavorite
	}

	s.swap(m)
	return m, nil
}

// ToggleFavorite flips the favorite flag and returns the new value.
func (s *Store) ToggleFavorite(id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	old, ok := s.byID[id]
	if !ok {
		return false, NotFound(id)
	}
	m := old.Clone()
	m.IsFavorite = !m.IsFavorite
	s.swap(m)
	return m.IsFavorite, nil
}

// Delete removes the record. The freed id is never reused.
func (s *Store) Delete(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return NotFound(id)
	}
	delete(s.byID, id)
	for i, m := range s.movies {
		if m.ID == id {
			s.movies = append(s.movies[:i], s.movies[i+1:]...)
			break
		}
	}
	return nil
}

// Stats computes aggregates in one pass over the live collection. Nothing is
// cached; the dataset is small enough that a full pass per call is fine.
func (s *Store) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := Stats{Total: len(s.movies)}
	var sum float64
	var n int
	for _, m := range s.movies {
		if m.VoteAverage != nil {
			sum += *m.VoteAverage
			n++
		}
		if m.IsFavorite {
			st.FavoriteCount++
		}
		if m.PersonalRating != nil {
			st.RatedCount++
		}
	}
	if n > 0 {
		st.AvgRating = sum / float64(n)
	}
	return st
}

// swap replaces the stored pointer for m.ID. Caller holds the write lock.
func (s *Store) swap(m *catalog.Movie) {
	s.byID[m.ID] = m
	for i, old := range s.movies {
		if old.ID == m.ID {
			s.movies[i] = m
			return
		}
	}
}
