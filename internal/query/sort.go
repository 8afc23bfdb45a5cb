package query

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/cinedex/cinedex/internal/catalog"
)

// sortMovies orders the matching subset in place.
//
// Guarantees a total, repeatable order: records missing the sort key compare
// as the lowest value (so they trail in descending order), and every tie is
// broken by ascending id regardless of direction. This is what makes
// pagination stable across identical queries.
func sortMovies(movies []*catalog.Movie, by SortBy, order SortOrder) {
	if by == SortNone {
		return
	}

	desc := order == Desc
	cmp := comparator(by)

	sort.SliceStable(movies, func(i, j int) bool {
		c := cmp(movies[i], movies[j])
		if c == 0 {
			return movies[i].ID < movies[j].ID
		}
		if desc {
			return c > 0
		}
		return c < 0
	})
}

// comparator returns a three-way key comparison for the sort field.
func comparator(by SortBy) func(a, b *catalog.Movie) int {
	switch by {
	case SortTitle:
		// Locale-neutral case-insensitive collation, so "alien" and
		// "Alien 3" order the way a reader expects.
		coll := collate.New(language.Und, collate.IgnoreCase)
		return func(a, b *catalog.Movie) int {
			return coll.CompareString(a.Title, b.Title)
		}
	case SortYear:
		return func(a, b *catalog.Movie) int {
			ay, aok := a.ReleaseYear()
			by, bok := b.ReleaseYear()
			return cmpOptInt(ay, aok, by, bok)
		}
	case SortRating:
		return func(a, b *catalog.Movie) int {
			return cmpOptFloat(a.VoteAverage, b.VoteAverage)
		}
	case SortPopularity:
		return func(a, b *catalog.Movie) int {
			return cmpOptFloat(a.Popularity, b.Popularity)
		}
	}
	return func(a, b *catalog.Movie) int { return 0 }
}

// cmpOptInt compares optional ints; absent sorts as the lowest value.
func cmpOptInt(a int, aok bool, b int, bok bool) int {
	switch {
	case !aok && !bok:
		return 0
	case !aok:
		return -1
	case !bok:
		return 1
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// cmpOptFloat compares optional floats; nil sorts as the lowest value.
func cmpOptFloat(a, b *float64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}
