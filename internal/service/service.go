// Package service is the engine facade the serving surfaces talk to. It
// wires the chunk loader, the normalizer, the in-memory store, and the query
// engine behind one API: Load, Query, Get, Create, Update, Delete,
// ToggleFavorite, Stats.
package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/chunk"
	"github.com/cinedex/cinedex/internal/query"
	"github.com/cinedex/cinedex/internal/store"
)

// LoadSummary reports what a dataset load produced.
type LoadSummary struct {
	TotalRecords int `json:"total_records"`
	SkippedRows  int `json:"skipped_rows"`
	ChunkCount   int `json:"chunk_count"`
}

// Service owns the store and answers all catalog operations.
type Service struct {
	log    *slog.Logger
	store  *store.Store
	engine *query.Engine
	loader *chunk.Loader

	loadMu sync.Mutex // one load at a time
	ready  atomic.Bool
}

// New creates a Service with an empty store.
func New(log *slog.Logger, bounds query.PageBounds) *Service {
	if log == nil {
		log = slog.Default()
	}
	s := store.New()
	return &Service{
		log:    log,
		store:  s,
		engine: query.New(s, bounds),
		loader: chunk.NewLoader(log),
	}
}

// Load reads the chunk directory, normalizes the rows, and publishes the
// collection atomically. Re-invoking replaces the store's contents; a failed
// load leaves any previously published collection untouched.
//
// No query or mutation ever observes a partially loaded store: the full
// collection is built off to the side and swapped in with store.Replace.
func (s *Service) Load(dir string) (*LoadSummary, error) {
	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	res, err := s.loader.Load(dir)
	if err != nil {
		return nil, store.LoadUnavailable(err)
	}

	movies := make([]*catalog.Movie, 0, len(res.Rows))
	skipped := res.SkippedRows
	id := 1
	for _, row := range res.Rows {
		m, err := catalog.Normalize(row, id)
		if err != nil {
			if !errors.Is(err, catalog.ErrBlankTitle) {
				return nil, fmt.Errorf("normalize row: %w", err)
			}
			skipped++
			continue
		}
		movies = append(movies, m)
		id++
	}

	s.store.Replace(movies)
	s.ready.Store(true)

	s.log.Info("catalog loaded",
		"records", len(movies), "skipped", skipped, "chunks", res.ChunkCount)
	return &LoadSummary{
		TotalRecords: len(movies),
		SkippedRows:  skipped,
		ChunkCount:   res.ChunkCount,
	}, nil
}

// Ready reports whether a load has completed. Serving surfaces use this to
// answer "not ready yet" instead of blocking on a background load.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// Query answers a read request.
func (s *Service) Query(c query.Criteria) *query.PagedResult {
	return s.engine.Query(c)
}

// Get returns one record by id.
func (s *Service) Get(id int) (*catalog.Movie, error) {
	return s.store.Get(id)
}

// CreateParams carries the caller-settable fields for a new record.
// Everything except Title is optional and defaulted.
type CreateParams struct {
	Title         string `json:"title"`
	OriginalTitle string `json:"original_title"`
	Overview      string `json:"overview"`
	Tagline       string `json:"tagline"`

	Genres              []catalog.NameRef    `json:"genres"`
	Keywords            []catalog.NameRef    `json:"keywords"`
	Cast                []catalog.CastMember `json:"cast"`
	Crew                []catalog.CrewMember `json:"crew"`
	ProductionCompanies []catalog.NameRef    `json:"production_companies"`
	ProductionCountries []catalog.NameRef    `json:"production_countries"`
	SpokenLanguages     []catalog.NameRef    `json:"spoken_languages"`

	OriginalLanguage string   `json:"original_language"`
	ReleaseDate      string   `json:"release_date"`
	RuntimeMinutes   *int     `json:"runtime"`
	VoteAverage      *float64 `json:"vote_average"`
	VoteCount        *int     `json:"vote_count"`
	Popularity       *float64 `json:"popularity"`
}

// Create validates the required title, defaults everything else, and inserts
// the record. Personal fields always start unset.
func (s *Service) Create(p CreateParams) (*catalog.Movie, error) {
	title := strings.TrimSpace(p.Title)
	if title == "" {
		return nil, store.Validation("title is required")
	}
	if p.VoteAverage != nil && (*p.VoteAverage < 0 || *p.VoteAverage > 10) {
		return nil, store.Validation("vote average %v out of range [0,10]", *p.VoteAverage)
	}
	if p.RuntimeMinutes != nil && *p.RuntimeMinutes < 0 {
		return nil, store.Validation("runtime must be non-negative")
	}
	if p.VoteCount != nil && *p.VoteCount < 0 {
		return nil, store.Validation("vote count must be non-negative")
	}

	m := &catalog.Movie{
		Title:         title,
		OriginalTitle: strings.TrimSpace(p.OriginalTitle),
		Overview:      p.Overview,
		Tagline:       p.Tagline,

		Genres:              p.Genres,
		Keywords:            p.Keywords,
		Cast:                p.Cast,
		Crew:                p.Crew,
		ProductionCompanies: p.ProductionCompanies,
		ProductionCountries: p.ProductionCountries,
		SpokenLanguages:     p.SpokenLanguages,

		OriginalLanguage: p.OriginalLanguage,
		ReleaseDate:      strings.TrimSpace(p.ReleaseDate),
		RuntimeMinutes:   p.RuntimeMinutes,
		VoteAverage:      p.VoteAverage,
		VoteCount:        p.VoteCount,
		Popularity:       p.Popularity,
	}

	created := s.store.Insert(m)
	s.log.Info("movie created", "id", created.ID, "title", created.Title)
	return created, nil
}

// Update applies a partial patch. Unknown ids fail NotFound before any value
// validation runs.
func (s *Service) Update(id int, p store.Patch) (*catalog.Movie, error) {
	m, err := s.store.Update(id, p)
	if err != nil {
		return nil, err
	}
	s.log.Info("movie updated", "id", id)
	return m, nil
}

// Delete removes a record for good. The freed id is never reissued.
func (s *Service) Delete(id int) error {
	if err := s.store.Delete(id); err != nil {
		return err
	}
	s.log.Info("movie deleted", "id", id)
	return nil
}

// ToggleFavorite flips the favorite flag and returns the new value. Calling
// twice restores the original state.
func (s *Service) ToggleFavorite(id int) (bool, error) {
	fav, err := s.store.ToggleFavorite(id)
	if err != nil {
		return false, err
	}
	s.log.Info("favorite toggled", "id", id, "is_favorite", fav)
	return fav, nil
}

// Count returns the number of records currently held.
func (s *Service) Count() int {
	return s.store.Count()
}
