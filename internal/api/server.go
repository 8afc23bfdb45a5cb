// Package api exposes the catalog service over HTTP as JSON endpoints.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/cinedex/cinedex/internal/service"
	"github.com/cinedex/cinedex/internal/store"
)

// Server holds the HTTP handlers over the catalog service.
type Server struct {
	svc *service.Service
	log *slog.Logger
}

// NewServer creates a Server for the given service.
func NewServer(svc *service.Service, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{svc: svc, log: log}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/movies", s.ready(s.handleList))
	mux.HandleFunc("POST /api/movies", s.ready(s.handleCreate))
	mux.HandleFunc("GET /api/movies/search", s.ready(s.handleSearch))
	mux.HandleFunc("GET /api/movies/favorites", s.ready(s.handleFavorites))
	mux.HandleFunc("GET /api/movies/{id}", s.ready(s.handleGet))
	mux.HandleFunc("PUT /api/movies/{id}", s.ready(s.handleUpdate))
	mux.HandleFunc("DELETE /api/movies/{id}", s.ready(s.handleDelete))
	mux.HandleFunc("POST /api/movies/{id}/favorite", s.ready(s.handleToggleFavorite))
	mux.HandleFunc("GET /api/stats", s.ready(s.handleStats))

	return mux
}

// ready rejects requests until the background dataset load has published.
func (s *Server) ready(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.svc.Ready() {
			s.writeError(w, http.StatusServiceUnavailable, "LOADING", "catalog is still loading")
			return
		}
		next(w, r)
	}
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Error("encode response", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, code, message string) {
	s.writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: message}})
}

// writeServiceError maps the store's error taxonomy onto HTTP statuses.
func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var se *store.Error
	if errors.As(err, &se) {
		switch se.Code {
		case store.CodeNotFound:
			s.writeError(w, http.StatusNotFound, string(se.Code), se.Message)
			return
		case store.CodeValidationFailed:
			s.writeError(w, http.StatusBadRequest, string(se.Code), se.Message)
			return
		case store.CodeLoadUnavailable:
			s.writeError(w, http.StatusServiceUnavailable, string(se.Code), se.Message)
			return
		}
	}
	s.log.Error("internal error", "err", err)
	s.writeError(w, http.StatusInternalServerError, "INTERNAL", "internal error")
}
