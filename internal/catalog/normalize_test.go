package catalog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_Basic(t *testing.T) {
	row := map[string]string{
		"title":             "Heat",
		"original_title":    "Heat",
		"overview":          "A cat and mouse game in Los Angeles.",
		"genres":            `[{"name": "Crime"}, {"name": "Drama"}]`,
		"cast":              `[{"name": "Al Pacino", "character": "Vincent Hanna"}]`,
		"crew":              `[{"name": "Michael Mann", "job": "Director"}]`,
		"original_language": "en",
		"release_date":      "1995-12-15",
		"runtime":           "170",
		"vote_average":      "8.2",
		"vote_count":        "4000",
		"popularity":        "45.31",
	}

	m, err := Normalize(row, 7)
	require.NoError(t, err)

	assert.Equal(t, 7, m.ID)
	assert.Equal(t, "Heat", m.Title)
	require.Len(t, m.Genres, 2)
	assert.Equal(t, "Crime", m.Genres[0].Name)
	require.Len(t, m.Cast, 1)
	assert.Equal(t, "Vincent Hanna", m.Cast[0].Character)
	require.Len(t, m.Crew, 1)
	assert.Equal(t, "Director", m.Crew[0].Job)

	require.NotNil(t, m.RuntimeMinutes)
	assert.Equal(t, 170, *m.RuntimeMinutes)
	require.NotNil(t, m.VoteAverage)
	assert.Equal(t, 8.2, *m.VoteAverage)

	year, ok := m.ReleaseYear()
	require.True(t, ok)
	assert.Equal(t, 1995, year)
}

func TestNormalize_TitleFallback(t *testing.T) {
	m, err := Normalize(map[string]string{
		"title":          "   ",
		"original_title": "Oldboy",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, "Oldboy", m.Title)
}

func TestNormalize_BlankTitleSkips(t *testing.T) {
	_, err := Normalize(map[string]string{
		"title":          "",
		"original_title": "NaN",
		"overview":       "orphan row",
	}, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlankTitle))
}

func TestNormalize_MalformedListsDegradeToEmpty(t *testing.T) {
	m, err := Normalize(map[string]string{
		"title":  "Broken Metadata",
		"genres": `[{"name": "Action"`, // truncated JSON
		"cast":   `not json at all`,
		"crew":   ``,
	}, 1)
	require.NoError(t, err)
	assert.Empty(t, m.Genres)
	assert.Empty(t, m.Cast)
	assert.Empty(t, m.Crew)
}

func TestNormalize_NumericFields(t *testing.T) {
	tests := []struct {
		name string
		row  map[string]string
		chk  func(t *testing.T, m *Movie)
	}{
		{
			name: "zero vote average is data, not absence",
			row:  map[string]string{"title": "x", "vote_average": "0"},
			chk: func(t *testing.T, m *Movie) {
				if m.VoteAverage == nil || *m.VoteAverage != 0 {
					t.Errorf("VoteAverage = %v, want 0", m.VoteAverage)
				}
			},
		},
		{
			name: "vote average above 10 is unset",
			row:  map[string]string{"title": "x", "vote_average": "11.5"},
			chk: func(t *testing.T, m *Movie) {
				if m.VoteAverage != nil {
					t.Errorf("VoteAverage = %v, want nil", *m.VoteAverage)
				}
			},
		},
		{
			name: "negative runtime is unset",
			row:  map[string]string{"title": "x", "runtime": "-5"},
			chk: func(t *testing.T, m *Movie) {
				if m.RuntimeMinutes != nil {
					t.Errorf("RuntimeMinutes = %v, want nil", *m.RuntimeMinutes)
				}
			},
		},
		{
			name: "float-formatted runtime parses",
			row:  map[string]string{"title": "x", "runtime": "92.0"},
			chk: func(t *testing.T, m *Movie) {
				if m.RuntimeMinutes == nil || *m.RuntimeMinutes != 92 {
					t.Errorf("RuntimeMinutes = %v, want 92", m.RuntimeMinutes)
				}
			},
		},
		{
			name: "garbage popularity is unset",
			row:  map[string]string{"title": "x", "popularity": "many"},
			chk: func(t *testing.T, m *Movie) {
				if m.Popularity != nil {
					t.Errorf("Popularity = %v, want nil", *m.Popularity)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := Normalize(tt.row, 1)
			if err != nil {
				t.Fatalf("Normalize() failed: %v", err)
			}
			tt.chk(t, m)
		})
	}
}

func TestReleaseYear(t *testing.T) {
	tests := []struct {
		date   string
		year   int
		wantOK bool
	}{
		{"1995-12-15", 1995, true},
		{"2024", 2024, true},
		{"", 0, false},
		{"soon", 0, false},
		{"0000-01-01", 0, false},
	}

	for _, tt := range tests {
		m := &Movie{ReleaseDate: tt.date}
		year, ok := m.ReleaseYear()
		if ok != tt.wantOK || year != tt.year {
			t.Errorf("ReleaseYear(%q) = (%d, %v), want (%d, %v)", tt.date, year, ok, tt.year, tt.wantOK)
		}
	}
}
