package catalog

import (
	"slices"
	"strings"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// genreAliases lists labels that also satisfy a genre filter
var genreAliases = map[string][]string{
	"Sci-Fi": {"Science Fiction"},
}

// Filter is the user's current narrowing of the collection
type Filter struct {
	Category domain.Category
	Genre    string
	Query    string
}

// Reset clears every input
func (f *Filter) Reset() {
	*f = Filter{}
}

// IsZero reports whether the filter shows everything
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Query) == "" && f.matchesAllCategories() && f.matchesAllGenres()
}

func (f Filter) matchesAllCategories() bool {
	return f.Category == "" || f.Category == domain.CategoryAll || f.Category == domain.CategoryTrending
}

func (f Filter) matchesAllGenres() bool {
	return f.Genre == "" || f.Genre == GenreAll
}

// Match reports whether an item passes the filter
func (f Filter) Match(item *domain.Item) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		if !strings.Contains(strings.ToLower(item.Title), q) {
			return false
		}
	}
	if !f.matchesAllCategories() && !f.Category.Matches(item) {
		return false
	}
	if f.matchesAllGenres() {
		return true
	}
	if item.HasGenre(f.Genre) {
		return true
	}
	for _, alias := range genreAliases[f.Genre] {
		if item.HasGenre(alias) {
			return true
		}
	}
	return false
}

// View returns the items passing the filter, favorites first.
// The sort is stable so each group keeps the collection order.
func View(items []domain.Item, f Filter) []domain.Item {
	out := make([]domain.Item, 0, len(items))
	for i := range items {
		if f.Match(&items[i]) {
			out = append(out, items[i])
		}
	}
	slices.SortStableFunc(out, func(a, b domain.Item) int {
		switch {
		case a.Favorite == b.Favorite:
			return 0
		case a.Favorite:
			return -1
		default:
			return 1
		}
	})
	return out
}
