// Package metadata turns a title or a link into a catalog item.
//
// Structured data from TMDB is preferred. A generative model with search
// grounding reads review site links, adds review scores and covers titles
// TMDB does not know.
package metadata

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/metadata/gemini"
	"github.com/rsekulic/videoteka-v1/internal/metadata/tmdb"
)

var (
	tmdbLinkPattern   = regexp.MustCompile(`(?i)themoviedb\.org/(movie|tv)/(\d+)`)
	reviewLinkPattern = regexp.MustCompile(`(?i)rottentomatoes\.com/(m|tv)/([a-z0-9_\-]+)`)
)

// Structured is the structured metadata database
type Structured interface {
	Search(ctx context.Context, query string, mediaType tmdb.MediaType) (*domain.Item, error)
	DetailsByID(ctx context.Context, id string, mediaType tmdb.MediaType) (*domain.Item, error)
}

// Generative is the search-grounded model
type Generative interface {
	Enabled() bool
	Find(ctx context.Context, input string) (*domain.Item, error)
	Crawl(ctx context.Context, pageURL string) (*domain.Item, error)
	Scores(ctx context.Context, title, year string, kind domain.Kind) (gemini.Scores, error)
}

// Service implements domain.MetadataLookup
type Service struct {
	structured   Structured
	generative   Generative
	enrichScores bool
	logger       *slog.Logger
}

var _ domain.MetadataLookup = (*Service)(nil)

// NewService creates a lookup service. enrichScores adds review scores to structured matches.
func NewService(structured Structured, generative Generative, enrichScores bool, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		structured:   structured,
		generative:   generative,
		enrichScores: enrichScores,
		logger:       logger,
	}
}

// Lookup resolves input to a candidate item without identifier.
// Every failure is reported as domain.ErrNotFound.
func (s *Service) Lookup(ctx context.Context, input string) (*domain.Item, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, domain.ErrNotFound
	}

	var item *domain.Item
	switch {
	case tmdbLinkPattern.MatchString(input):
		item = s.lookupTMDBLink(ctx, input)
	case reviewLinkPattern.MatchString(input):
		item = s.lookupReviewLink(ctx, input)
	default:
		item = s.lookupText(ctx, input)
	}

	if item == nil {
		s.logger.Warn("metadata lookup found nothing", "input", input)
		return nil, domain.ErrNotFound
	}
	item.ID = ""
	item.Favorite = false
	s.logger.Info("metadata lookup matched", "input", input, "title", item.Title, "type", item.Kind)
	return item, nil
}

func (s *Service) lookupTMDBLink(ctx context.Context, link string) *domain.Item {
	m := tmdbLinkPattern.FindStringSubmatch(link)
	mediaType := tmdb.MediaType(strings.ToLower(m[1]))

	item, err := s.structured.DetailsByID(ctx, m[2], mediaType)
	if err != nil {
		s.logger.Warn("tmdb link lookup failed", "id", m[2], "type", mediaType, "error", err)
		return s.generate(ctx, link)
	}
	s.addScores(ctx, item)
	return item
}

// lookupReviewLink reads the page with the model, then takes images and the
// trailer from TMDB. If the page cannot be read, the link's slug is searched as text.
func (s *Service) lookupReviewLink(ctx context.Context, link string) *domain.Item {
	m := reviewLinkPattern.FindStringSubmatch(link)

	var item *domain.Item
	if s.generative != nil && s.generative.Enabled() {
		crawled, err := s.generative.Crawl(ctx, link)
		if err != nil {
			s.logger.Warn("review page crawl failed", "url", link, "error", err)
		} else {
			item = crawled
		}
	}
	if item == nil {
		title := strings.NewReplacer("_", " ", "-", " ").Replace(m[2])
		return s.lookupText(ctx, title)
	}

	preferred := tmdb.MediaTypeOf(item.Kind)
	if match := s.search(ctx, item.Title, preferred, otherType(preferred)); match != nil {
		if match.Poster != "" {
			item.Poster = match.Poster
		}
		if match.Backdrop != "" {
			item.Backdrop = match.Backdrop
		}
		if match.TrailerURL != "" {
			item.TrailerURL = match.TrailerURL
		}
	}
	return item
}

func (s *Service) lookupText(ctx context.Context, query string) *domain.Item {
	if item := s.search(ctx, query, tmdb.MediaMovie, tmdb.MediaTV); item != nil {
		s.addScores(ctx, item)
		return item
	}
	return s.generate(ctx, query)
}

// search tries each media type in order and returns the first match
func (s *Service) search(ctx context.Context, query string, types ...tmdb.MediaType) *domain.Item {
	if s.structured == nil {
		return nil
	}
	for _, t := range types {
		item, err := s.structured.Search(ctx, query, t)
		if err == nil {
			return item
		}
		s.logger.Debug("tmdb search miss", "query", query, "type", t, "error", err)
	}
	return nil
}

func (s *Service) generate(ctx context.Context, input string) *domain.Item {
	if s.generative == nil || !s.generative.Enabled() {
		return nil
	}
	item, err := s.generative.Find(ctx, input)
	if err != nil {
		s.logger.Warn("generative lookup failed", "input", input, "error", err)
		return nil
	}
	return item
}

// addScores fills review scores. Failure marks them unavailable and never fails the lookup.
func (s *Service) addScores(ctx context.Context, item *domain.Item) {
	if !s.enrichScores || s.generative == nil || !s.generative.Enabled() {
		return
	}
	scores, err := s.generative.Scores(ctx, item.Title, item.Year, item.Kind)
	if err != nil {
		s.logger.Debug("score enrichment failed", "title", item.Title, "error", err)
		item.CriticScore = domain.ScoreUnavailable
		item.AudienceScore = domain.ScoreUnavailable
		return
	}
	item.CriticScore = scores.Critic
	item.AudienceScore = scores.Audience
}

func otherType(t tmdb.MediaType) tmdb.MediaType {
	if t == tmdb.MediaTV {
		return tmdb.MediaMovie
	}
	return tmdb.MediaTV
}
