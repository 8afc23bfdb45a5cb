// Package query answers read requests against the store: text search,
// multi-field filtering, sorting, and pagination.
package query

import (
	"github.com/cinedex/cinedex/internal/catalog"
)

// SortBy names the sortable fields.
type SortBy string

const (
	SortNone       SortBy = "" // preserve store iteration order
	SortTitle      SortBy = "title"
	SortYear       SortBy = "year"
	SortRating     SortBy = "rating"
	SortPopularity SortBy = "popularity"
)

// SortOrder is the sort direction.
type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Criteria is the combined set of optional filter/sort/pagination parameters.
// All filters are independently combinable with AND semantics; within the
// genre set a record matches on ANY listed genre.
//
// Records missing a bounded field (unknown release year, unset vote average,
// unset runtime, unset personal rating) never match a range filter on it.
type Criteria struct {
	SearchText string
	Genres     []string

	YearFrom *int
	YearTo   *int

	RatingFrom *float64
	RatingTo   *float64

	RuntimeFrom *int
	RuntimeTo   *int

	PersonalRatingFrom *int
	PersonalRatingTo   *int

	OriginalLanguage string
	FavoritesOnly    bool

	SortBy    SortBy
	SortOrder SortOrder

	Page int // 1-based; values < 1 clamp to 1
	Size int // clamped to the engine's configured bounds; 0 means default
}

// PagedResult is one page of matches plus pagination metadata.
type PagedResult struct {
	Items []*catalog.Movie `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Size  int              `json:"size"`
	Pages int              `json:"pages"`
}
