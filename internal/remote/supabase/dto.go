package supabase

import (
	"time"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// row is one media_items record as returned by the REST endpoint
type row struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Year          string   `json:"year"`
	Type          string   `json:"type"`
	Genre         []string `json:"genre"`
	Description   string   `json:"description"`
	Poster        string   `json:"poster"`
	Backdrop      string   `json:"backdrop"`
	Runtime       *string  `json:"runtime"`
	Seasons       *int     `json:"seasons"`
	Director      *string  `json:"director"`
	Cast          []string `json:"cast"`
	TrailerURL    *string  `json:"trailer_url"`
	CriticScore   *string  `json:"critic_score"`
	AudienceScore *string  `json:"audience_score"`
	IsFavorite    *bool    `json:"is_favorite"`
	CreatedAt     string   `json:"created_at"`
}

// insertRow is the body of an insert; the server assigns id and created_at.
// Every field is always sent, null when empty: a bulk insert needs the same keys on every object.
type insertRow struct {
	Title         string   `json:"title"`
	Year          string   `json:"year"`
	Type          string   `json:"type"`
	Genre         []string `json:"genre"`
	Description   string   `json:"description"`
	Poster        string   `json:"poster"`
	Backdrop      string   `json:"backdrop"`
	Runtime       *string  `json:"runtime"`
	Seasons       *int     `json:"seasons"`
	Director      *string  `json:"director"`
	Cast          []string `json:"cast"`
	TrailerURL    *string  `json:"trailer_url"`
	CriticScore   *string  `json:"critic_score"`
	AudienceScore *string  `json:"audience_score"`
	IsFavorite    bool     `json:"is_favorite"`
}

// tokenResponse is the password grant response
type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
	RefreshToken string `json:"refresh_token"`
	User         struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	} `json:"user"`
}

// mapRow converts a REST row to a domain item. A missing favorite reads as false.
func mapRow(r row) domain.Item {
	item := domain.Item{
		ID:          r.ID,
		Title:       r.Title,
		Year:        r.Year,
		Kind:        domain.Kind(r.Type),
		Genres:      r.Genre,
		Description: r.Description,
		Poster:      r.Poster,
		Backdrop:    r.Backdrop,
		Cast:        r.Cast,
		Favorite:    r.IsFavorite != nil && *r.IsFavorite,
	}
	if r.Runtime != nil {
		item.Runtime = *r.Runtime
	}
	if r.Seasons != nil {
		item.Seasons = *r.Seasons
	}
	if r.Director != nil {
		item.Director = *r.Director
	}
	if r.TrailerURL != nil {
		item.TrailerURL = *r.TrailerURL
	}
	if r.CriticScore != nil {
		item.CriticScore = *r.CriticScore
	}
	if r.AudienceScore != nil {
		item.AudienceScore = *r.AudienceScore
	}
	if ts, err := time.Parse(time.RFC3339Nano, r.CreatedAt); err == nil {
		item.CreatedAt = ts
	}
	return item
}

func mapInsert(item domain.Item) insertRow {
	r := insertRow{
		Title:         item.Title,
		Year:          item.Year,
		Type:          string(item.Kind),
		Genre:         item.Genres,
		Description:   item.Description,
		Poster:        item.Poster,
		Backdrop:      item.Backdrop,
		Runtime:       optional(item.Runtime),
		Director:      optional(item.Director),
		Cast:          item.Cast,
		TrailerURL:    optional(item.TrailerURL),
		CriticScore:   optional(item.CriticScore),
		AudienceScore: optional(item.AudienceScore),
		IsFavorite:    item.Favorite,
	}
	if item.Seasons != 0 {
		seasons := item.Seasons
		r.Seasons = &seasons
	}
	if r.Genre == nil {
		r.Genre = []string{}
	}
	if r.Cast == nil {
		r.Cast = []string{}
	}
	return r
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
