package query

import (
	"github.com/cinedex/cinedex/internal/catalog"
	"github.com/cinedex/cinedex/internal/store"
)

// PageBounds clamps requested page sizes. Out-of-range values clamp rather
// than error; a zero size falls back to Default.
type PageBounds struct {
	Min     int
	Max     int
	Default int
}

// DefaultPageBounds matches the original API surface: sizes in [1,100],
// defaulting to 20.
func DefaultPageBounds() PageBounds {
	return PageBounds{Min: 1, Max: 100, Default: 20}
}

// Engine answers queries over the store. It holds no private copy of the
// collection and no secondary indices: every query is one pass over the live
// snapshot (filter, then sort the subset, then slice). Correctness over
// index-driven speed at this dataset scale.
type Engine struct {
	store  *store.Store
	bounds PageBounds
}

// New creates an Engine reading from s.
func New(s *store.Store, bounds PageBounds) *Engine {
	if bounds.Min <= 0 {
		bounds = DefaultPageBounds()
	}
	return &Engine{store: s, bounds: bounds}
}

// Query filters, sorts, and paginates in one pass.
//
// A page beyond the last returns empty items with total/pages still
// populated; that is a valid result, not an error.
func (e *Engine) Query(c Criteria) *PagedResult {
	page, size := e.clamp(c.Page, c.Size)

	var matched []*catalog.Movie
	for _, m := range e.store.Snapshot() {
		if matches(m, &c) {
			matched = append(matched, m)
		}
	}

	sortMovies(matched, c.SortBy, c.SortOrder)

	total := len(matched)
	pages := (total + size - 1) / size

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	items := matched[start:end]
	if items == nil {
		items = []*catalog.Movie{}
	}

	return &PagedResult{
		Items: items,
		Total: total,
		Page:  page,
		Size:  size,
		Pages: pages,
	}
}

func (e *Engine) clamp(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	switch {
	case size == 0:
		size = e.bounds.Default
	case size < e.bounds.Min:
		size = e.bounds.Min
	case size > e.bounds.Max:
		size = e.bounds.Max
	}
	return page, size
}
