package gemini

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"google.golang.org/genai"
)

var requiredItemFields = []string{"title", "year", "type", "genre", "description", "poster", "backdrop", "cast"}

var (
	stringSchema = &genai.Schema{Type: genai.TypeString}
	listSchema   = &genai.Schema{Type: genai.TypeArray, Items: stringSchema}

	itemSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"title":          stringSchema,
			"year":           stringSchema,
			"type":           {Type: genai.TypeString, Enum: []string{string(domain.KindMovie), string(domain.KindSeries)}},
			"genre":          listSchema,
			"description":    stringSchema,
			"poster":         stringSchema,
			"backdrop":       stringSchema,
			"runtime":        stringSchema,
			"seasons":        {Type: genai.TypeNumber},
			"director":       stringSchema,
			"cast":           listSchema,
			"trailer_url":    stringSchema,
			"critic_score":   stringSchema,
			"audience_score": stringSchema,
		},
		Required: requiredItemFields,
	}

	scoresSchema = &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"critic_score":   stringSchema,
			"audience_score": stringSchema,
		},
		Required: []string{"critic_score", "audience_score"},
	}
)

// generatedItem mirrors itemSchema
type generatedItem struct {
	Title         string   `json:"title"`
	Year          string   `json:"year"`
	Type          string   `json:"type"`
	Genre         []string `json:"genre"`
	Description   string   `json:"description"`
	Poster        string   `json:"poster"`
	Backdrop      string   `json:"backdrop"`
	Runtime       string   `json:"runtime"`
	Seasons       float64  `json:"seasons"`
	Director      string   `json:"director"`
	Cast          []string `json:"cast"`
	TrailerURL    string   `json:"trailer_url"`
	CriticScore   string   `json:"critic_score"`
	AudienceScore string   `json:"audience_score"`
}

// parseItem decodes a response and rejects it when a required field is missing
func parseItem(text string) (*domain.Item, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(text), &fields); err != nil {
		return nil, fmt.Errorf("failed to parse item: %w", errors.Join(domain.ErrMalformedResponse, err))
	}
	for _, name := range requiredItemFields {
		raw, ok := fields[name]
		if !ok || string(raw) == "null" {
			return nil, fmt.Errorf("missing field %q: %w", name, domain.ErrMalformedResponse)
		}
	}

	var g generatedItem
	if err := json.Unmarshal([]byte(text), &g); err != nil {
		return nil, fmt.Errorf("failed to parse item: %w", errors.Join(domain.ErrMalformedResponse, err))
	}
	kind := domain.Kind(g.Type)
	if kind != domain.KindMovie && kind != domain.KindSeries {
		return nil, fmt.Errorf("unknown type %q: %w", g.Type, domain.ErrMalformedResponse)
	}
	if g.Title == "" {
		return nil, fmt.Errorf("empty title: %w", domain.ErrMalformedResponse)
	}

	return &domain.Item{
		Title:         g.Title,
		Year:          g.Year,
		Kind:          kind,
		Genres:        g.Genre,
		Description:   g.Description,
		Poster:        g.Poster,
		Backdrop:      g.Backdrop,
		Runtime:       g.Runtime,
		Seasons:       int(math.Round(g.Seasons)),
		Director:      g.Director,
		Cast:          g.Cast,
		TrailerURL:    g.TrailerURL,
		CriticScore:   g.CriticScore,
		AudienceScore: g.AudienceScore,
	}, nil
}
