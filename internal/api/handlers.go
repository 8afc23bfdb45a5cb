package api

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/cinedex/cinedex/internal/query"
	"github.com/cinedex/cinedex/internal/service"
	"github.com/cinedex/cinedex/internal/store"
)

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	c, err := criteriaFromQuery(r.URL.Query())
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, s.svc.Query(c))
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	needle := q.Get("q")
	if needle == "" {
		s.writeError(w, http.StatusBadRequest, "BAD_REQUEST", "missing query parameter q")
		return
	}
	c := query.Criteria{SearchText: needle}
	c.Page, c.Size = pageParams(q)
	s.writeJSON(w, http.StatusOK, s.svc.Query(c))
}

func (s *Server) handleFavorites(w http.ResponseWriter, r *http.Request) {
	c := query.Criteria{FavoritesOnly: true}
	c.Page, c.Size = pageParams(r.URL.Query())
	s.writeJSON(w, http.StatusOK, s.svc.Query(c))
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	m, err := s.svc.Get(id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var p service.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.svc.Create(p)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, m)
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	var p store.Patch
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		s.writeError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid JSON body")
		return
	}
	m, err := s.svc.Update(id, p)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	if err := s.svc.Delete(id); err != nil {
		s.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r)
	if !ok {
		return
	}
	fav, err := s.svc.ToggleFavorite(id)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]bool{"is_favorite": fav})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.svc.Stats())
}

func (s *Server) pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "BAD_REQUEST", "id must be an integer")
		return 0, false
	}
	return id, true
}

// criteriaFromQuery maps URL query parameters onto query criteria. Unknown
// parameters are ignored; malformed numbers are rejected.
func criteriaFromQuery(q url.Values) (query.Criteria, error) {
	c := query.Criteria{
		SearchText:       q.Get("search"),
		Genres:           q["genres"],
		OriginalLanguage: q.Get("language"),
		SortBy:           query.SortBy(q.Get("sort_by")),
		SortOrder:        query.SortOrder(q.Get("sort_order")),
	}
	if q.Get("favorites_only") == "true" {
		c.FavoritesOnly = true
	}

	var err error
	if c.YearFrom, err = intParam(q, "year_from"); err != nil {
		return c, err
	}
	if c.YearTo, err = intParam(q, "year_to"); err != nil {
		return c, err
	}
	if c.RatingFrom, err = floatParam(q, "rating_from"); err != nil {
		return c, err
	}
	if c.RatingTo, err = floatParam(q, "rating_to"); err != nil {
		return c, err
	}
	if c.RuntimeFrom, err = intParam(q, "runtime_from"); err != nil {
		return c, err
	}
	if c.RuntimeTo, err = intParam(q, "runtime_to"); err != nil {
		return c, err
	}
	if c.PersonalRatingFrom, err = intParam(q, "personal_rating_from"); err != nil {
		return c, err
	}
	if c.PersonalRatingTo, err = intParam(q, "personal_rating_to"); err != nil {
		return c, err
	}

	c.Page, c.Size = pageParams(q)
	return c, nil
}

// pageParams reads page/size leniently: garbage falls back to zero, which
// the engine clamps to its configured bounds.
func pageParams(q url.Values) (page, size int) {
	page, _ = strconv.Atoi(q.Get("page"))
	size, _ = strconv.Atoi(q.Get("size"))
	return page, size
}

func intParam(q url.Values, key string) (*int, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, &paramError{key: key, raw: raw}
	}
	return &n, nil
}

func floatParam(q url.Values, key string) (*float64, error) {
	raw := q.Get(key)
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, &paramError{key: key, raw: raw}
	}
	return &f, nil
}

type paramError struct {
	key string
	raw string
}

func (e *paramError) Error() string {
	return "invalid value " + strconv.Quote(e.raw) + " for parameter " + e.key
}
