package domain

import (
	"encoding/json"
	"slices"
)

// ItemPatch is a set of changed fields. Nil pointers are left untouched.
// The identifier is never part of a patch.
type ItemPatch struct {
	Title         *string
	Year          *string
	Kind          *Kind
	Genres        *[]string
	Description   *string
	Poster        *string
	Backdrop      *string
	Runtime       *string
	Seasons       *int
	Director      *string
	Cast          *[]string
	TrailerURL    *string
	CriticScore   *string
	AudienceScore *string
	Favorite      *bool
}

// Diff returns the fields that differ between old and updated.
// The favorite flag is excluded; it only changes through FavoritePatch.
func Diff(old, updated Item) ItemPatch {
	var p ItemPatch
	if old.Title != updated.Title {
		p.Title = ptr(updated.Title)
	}
	if old.Year != updated.Year {
		p.Year = ptr(updated.Year)
	}
	if old.Kind != updated.Kind {
		p.Kind = ptr(updated.Kind)
	}
	if !slices.Equal(old.Genres, updated.Genres) {
		p.Genres = ptr(slices.Clone(updated.Genres))
	}
	if old.Description != updated.Description {
		p.Description = ptr(updated.Description)
	}
	if old.Poster != updated.Poster {
		p.Poster = ptr(updated.Poster)
	}
	if old.Backdrop != updated.Backdrop {
		p.Backdrop = ptr(updated.Backdrop)
	}
	if old.Runtime != updated.Runtime {
		p.Runtime = ptr(updated.Runtime)
	}
	if old.Seasons != updated.Seasons {
		p.Seasons = ptr(updated.Seasons)
	}
	if old.Director != updated.Director {
		p.Director = ptr(updated.Director)
	}
	if !slices.Equal(old.Cast, updated.Cast) {
		p.Cast = ptr(slices.Clone(updated.Cast))
	}
	if old.TrailerURL != updated.TrailerURL {
		p.TrailerURL = ptr(updated.TrailerURL)
	}
	if old.CriticScore != updated.CriticScore {
		p.CriticScore = ptr(updated.CriticScore)
	}
	if old.AudienceScore != updated.AudienceScore {
		p.AudienceScore = ptr(updated.AudienceScore)
	}
	return p
}

// FavoritePatch builds the patch for a favorite toggle
func FavoritePatch(favorite bool) ItemPatch {
	return ItemPatch{Favorite: ptr(favorite)}
}

// IsEmpty reports whether the patch changes nothing
func (p ItemPatch) IsEmpty() bool {
	return len(p.Columns()) == 0
}

// Apply writes the patch onto item
func (p ItemPatch) Apply(item *Item) {
	if p.Title != nil {
		item.Title = *p.Title
	}
	if p.Year != nil {
		item.Year = *p.Year
	}
	if p.Kind != nil {
		item.Kind = *p.Kind
	}
	if p.Genres != nil {
		item.Genres = slices.Clone(*p.Genres)
	}
	if p.Description != nil {
		item.Description = *p.Description
	}
	if p.Poster != nil {
		item.Poster = *p.Poster
	}
	if p.Backdrop != nil {
		item.Backdrop = *p.Backdrop
	}
	if p.Runtime != nil {
		item.Runtime = *p.Runtime
	}
	if p.Seasons != nil {
		item.Seasons = *p.Seasons
	}
	if p.Director != nil {
		item.Director = *p.Director
	}
	if p.Cast != nil {
		item.Cast = slices.Clone(*p.Cast)
	}
	if p.TrailerURL != nil {
		item.TrailerURL = *p.TrailerURL
	}
	if p.CriticScore != nil {
		item.CriticScore = *p.CriticScore
	}
	if p.AudienceScore != nil {
		item.AudienceScore = *p.AudienceScore
	}
	if p.Favorite != nil {
		item.Favorite = *p.Favorite
	}
}

// Columns renders the patch as column name to value, using the stored column names
func (p ItemPatch) Columns() map[string]any {
	cols := make(map[string]any)
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Year != nil {
		cols["year"] = *p.Year
	}
	if p.Kind != nil {
		cols["type"] = string(*p.Kind)
	}
	if p.Genres != nil {
		cols["genre"] = *p.Genres
	}
	if p.Description != nil {
		cols["description"] = *p.Description
	}
	if p.Poster != nil {
		cols["poster"] = *p.Poster
	}
	if p.Backdrop != nil {
		cols["backdrop"] = *p.Backdrop
	}
	if p.Runtime != nil {
		cols["runtime"] = *p.Runtime
	}
	if p.Seasons != nil {
		cols["seasons"] = *p.Seasons
	}
	if p.Director != nil {
		cols["director"] = *p.Director
	}
	if p.Cast != nil {
		cols["cast"] = *p.Cast
	}
	if p.TrailerURL != nil {
		cols["trailer_url"] = *p.TrailerURL
	}
	if p.CriticScore != nil {
		cols["critic_score"] = *p.CriticScore
	}
	if p.AudienceScore != nil {
		cols["audience_score"] = *p.AudienceScore
	}
	if p.Favorite != nil {
		cols["is_favorite"] = *p.Favorite
	}
	return cols
}

// MarshalJSON encodes only the changed columns
func (p ItemPatch) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.Columns())
}

func ptr[T any](v T) *T {
	return &v
}
