// Package nav maps catalog items to slug paths and keeps the detail view history.
package nav

import (
	"strings"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/sahilm/fuzzy"
)

// Path returns the deep link of an item
func Path(item domain.Item) string {
	return "/" + item.Slug()
}

// History is the stack of opened detail views
type History struct {
	slugs []string
}

// Push records an opened item
func (h *History) Push(item domain.Item) {
	slug := item.Slug()
	if n := len(h.slugs); n > 0 && h.slugs[n-1] == slug {
		return
	}
	h.slugs = append(h.slugs, slug)
}

// Back pops the current entry. It returns the slug now on top, or false when
// the history is empty and the selection must be cleared.
func (h *History) Back() (string, bool) {
	if len(h.slugs) > 0 {
		h.slugs = h.slugs[:len(h.slugs)-1]
	}
	return h.Current()
}

// Current returns the slug on top of the history
func (h *History) Current() (string, bool) {
	if len(h.slugs) == 0 {
		return "", false
	}
	return h.slugs[len(h.slugs)-1], true
}

// Len returns the number of entries
func (h *History) Len() int {
	return len(h.slugs)
}

// Resolve finds the item a path points to: an exact slug first, then the
// closest fuzzy match over all slugs.
func Resolve(items []domain.Item, path string) (domain.Item, bool) {
	slug := domain.Slug(strings.TrimPrefix(strings.TrimSpace(path), "/"))
	if slug == "" || len(items) == 0 {
		return domain.Item{}, false
	}

	slugs := make([]string, len(items))
	for i := range items {
		slugs[i] = items[i].Slug()
		if slugs[i] == slug {
			return items[i], true
		}
	}

	matches := fuzzy.Find(slug, slugs)
	if len(matches) == 0 || matches[0].Score <= 0 {
		return domain.Item{}, false
	}
	return items[matches[0].Index], true
}
