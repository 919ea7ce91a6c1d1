package domain

import (
	"fmt"
	"strings"
	"time"
)

// Kind distinguishes movies from series. Values match the stored "type" column.
type Kind string

const (
	KindMovie  Kind = "Movie"
	KindSeries Kind = "TV Series"
)

// Item is a single catalog entry (a movie or a TV series)
type Item struct {
	ID            string    `json:"id,omitempty"`             // Store identifier or local token
	Title         string    `json:"title"`                    // Display title
	Year          string    `json:"year"`                     // "2014" or "2018-2023"
	Kind          Kind      `json:"type"`                     // Movie or TV Series
	Genres        []string  `json:"genre"`                    // Genre labels
	Description   string    `json:"description"`              // Plot synopsis
	Poster        string    `json:"poster"`                   // Poster image URL
	Backdrop      string    `json:"backdrop"`                 // Wide background image URL
	Runtime       string    `json:"runtime,omitempty"`        // e.g. "2h 49m", movies only
	Seasons       int       `json:"seasons,omitempty"`        // Series only
	Director      string    `json:"director,omitempty"`       // Director or showrunner
	Cast          []string  `json:"cast"`                     // Principal cast
	TrailerURL    string    `json:"trailer_url,omitempty"`    // Video page URL
	CriticScore   string    `json:"critic_score,omitempty"`   // "93%" or "N/A"
	AudienceScore string    `json:"audience_score,omitempty"` // "88%" or "N/A"
	Favorite      bool      `json:"is_favorite"`              // Strict boolean
	CreatedAt     time.Time `json:"created_at,omitzero"`      // Store-assigned, zero for local items
}

// ScoreUnavailable marks a score that enrichment could not determine
const ScoreUnavailable = "N/A"

// IsSeries reports whether the item is a TV series
func (i *Item) IsSeries() bool {
	return i.Kind == KindSeries
}

// HasGenre reports exact membership of a genre label
func (i *Item) HasGenre(genre string) bool {
	for _, g := range i.Genres {
		if g == genre {
			return true
		}
	}
	return false
}

// Slug returns the URL-safe form of the item's title
func (i *Item) Slug() string {
	return Slug(i.Title)
}

// Subtitle returns secondary info for display: runtime for movies, season count for series
func (i *Item) Subtitle() string {
	if i.IsSeries() {
		switch {
		case i.Seasons == 1:
			return "1 season"
		case i.Seasons > 1:
			return fmt.Sprintf("%d seasons", i.Seasons)
		}
		return ""
	}
	return i.Runtime
}

// GenreLine joins genres for display
func (i *Item) GenreLine() string {
	return strings.Join(i.Genres, ", ")
}

// Clone returns a deep copy so snapshots never share slices with live state
func (i Item) Clone() Item {
	c := i
	if i.Genres != nil {
		c.Genres = append([]string(nil), i.Genres...)
	}
	if i.Cast != nil {
		c.Cast = append([]string(nil), i.Cast...)
	}
	return c
}

// WithoutID returns a copy with the identifier and store timestamp cleared, ready for insertion
func (i Item) WithoutID() Item {
	c := i.Clone()
	c.ID = ""
	c.CreatedAt = time.Time{}
	return c
}

// CloneItems deep-copies a slice of items
func CloneItems(items []Item) []Item {
	if items == nil {
		return nil
	}
	out := make([]Item, len(items))
	for idx, it := range items {
		out[idx] = it.Clone()
	}
	return out
}

// Category is a top-level tab in the catalog
type Category string

const (
	CategoryAll       Category = "All"
	CategoryMovies    Category = "Movies"
	CategorySeries    Category = "TV Series"
	CategoryFavorites Category = "Favorites"
	CategoryTrending  Category = "Trending" // Behaves like All
)

// Categories lists the tabs in display order
var Categories = []Category{CategoryAll, CategoryMovies, CategorySeries, CategoryFavorites}

// Matches reports whether an item belongs to the category
func (c Category) Matches(item *Item) bool {
	switch c {
	case CategoryMovies:
		return item.Kind == KindMovie
	case CategorySeries:
		return item.Kind == KindSeries
	case CategoryFavorites:
		return item.Favorite
	default:
		return true
	}
}
