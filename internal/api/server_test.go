package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cinedex/cinedex/internal/query"
	"github.com/cinedex/cinedex/internal/service"
)

func testServer(t *testing.T, load bool) (*service.Service, http.Handler) {
	t.Helper()
	svc := service.New(nil, query.DefaultPageBounds())
	if load {
		dir := t.TempDir()
		data := "title,genres,release_date,vote_average,original_language\n" +
			"Heat,\"[{\"\"name\"\": \"\"Crime\"\"}]\",1995-12-15,8.2,en\n" +
			"Amelie,\"[{\"\"name\"\": \"\"Comedy\"\"}]\",2001-04-25,7.9,fr\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, "movies_chunk_001.csv"), []byte(data), 0o644))
		_, err := svc.Load(dir)
		require.NoError(t, err)
	}
	return svc, NewServer(svc, nil).Handler()
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestNotReadyReturns503(t *testing.T) {
	_, h := testServer(t, false)
	rec := do(t, h, "GET", "/api/movies", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestListAndFilter(t *testing.T) {
	_, h := testServer(t, true)

	rec := do(t, h, "GET", "/api/movies", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var res query.PagedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 20, res.Size)

	rec = do(t, h, "GET", "/api/movies?genres=Comedy&language=fr", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Amelie", res.Items[0].Title)
}

func TestListRejectsMalformedParam(t *testing.T) {
	_, h := testServer(t, true)
	rec := do(t, h, "GET", "/api/movies?year_from=abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchEndpoint(t *testing.T) {
	_, h := testServer(t, true)

	rec := do(t, h, "GET", "/api/movies/search?q=amelie", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res query.PagedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Total)

	rec = do(t, h, "GET", "/api/movies/search", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUnknownIDIs404(t *testing.T) {
	_, h := testServer(t, true)
	rec := do(t, h, "GET", "/api/movies/999", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, "GET", "/api/movies/abc", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateUpdateDeleteFlow(t *testing.T) {
	_, h := testServer(t, true)

	rec := do(t, h, "POST", "/api/movies", `{"title": "The Matrix", "release_date": "1999-03-31"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var created struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 3, created.ID)

	path := fmt.Sprintf("/api/movies/%d", created.ID)

	rec = do(t, h, "PUT", path, `{"personal_rating": 9, "personal_notes": "classic"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, h, "PUT", path, `{"personal_rating": 11}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, "DELETE", path, "")
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, "GET", path, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCreateWithoutTitleIs400(t *testing.T) {
	_, h := testServer(t, true)
	rec := do(t, h, "POST", "/api/movies", `{"overview": "no title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestToggleFavoriteAndFavoritesEndpoint(t *testing.T) {
	_, h := testServer(t, true)

	rec := do(t, h, "POST", "/api/movies/1/favorite", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var toggled map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.True(t, toggled["is_favorite"])

	rec = do(t, h, "GET", "/api/movies/favorites", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var res query.PagedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "Heat", res.Items[0].Title)

	rec = do(t, h, "POST", "/api/movies/1/favorite", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &toggled))
	assert.False(t, toggled["is_favorite"])
}

func TestStatsEndpoint(t *testing.T) {
	_, h := testServer(t, true)

	rec := do(t, h, "GET", "/api/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var st service.Stats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, 2, st.Total)
	assert.InDelta(t, 8.05, st.AvgRating, 1e-9)
}
