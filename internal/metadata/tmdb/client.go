// Package tmdb looks up movies and series in The Movie Database.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"golang.org/x/time/rate"
)

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	defaultTimeout = 15 * time.Second
	defaultRate    = 20
)

// MediaType is the path segment TMDB uses for a kind of title
type MediaType string

const (
	MediaMovie MediaType = "movie"
	MediaTV    MediaType = "tv"
)

// MediaTypeOf maps a catalog kind to its TMDB media type
func MediaTypeOf(kind domain.Kind) MediaType {
	if kind == domain.KindSeries {
		return MediaTV
	}
	return MediaMovie
}

// Client is a rate-limited TMDB API client. A read access token is sent as a
// bearer header; otherwise the v3 api key goes in the query string.
type Client struct {
	baseURL    string
	token      string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *slog.Logger
}

// NewClient creates a TMDB client allowing rps requests per second
func NewClient(baseURL, token, apiKey string, rps float64, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if rps <= 0 {
		rps = defaultRate
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(rps), max(1, int(rps))),
		logger:  logger,
	}
}

// Configured reports whether credentials are present
func (c *Client) Configured() bool {
	return c.token != "" || c.apiKey != ""
}

// doRequest performs a GET against the API and returns the body
func (c *Client) doRequest(ctx context.Context, path string, query url.Values) ([]byte, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("tmdb credentials not configured: %w", domain.ErrNotFound)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if query == nil {
		query = url.Values{}
	}
	if c.token == "" {
		query.Set("api_key", c.apiKey)
	}
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	c.logger.Debug("tmdb request", "path", path)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("tmdb request failed", "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, domain.ErrNotFound
	case http.StatusUnauthorized:
		c.logger.Error("tmdb rejected credentials")
		return nil, domain.ErrAuthFailed
	default:
		c.logger.Error("tmdb request error", "status", resp.StatusCode, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
}

// Details fetches one title with credits and videos
func (c *Client) Details(ctx context.Context, id int, mediaType MediaType) (*domain.Item, error) {
	query := url.Values{}
	query.Set("append_to_response", "credits,videos")
	query.Set("language", "en-US")

	body, err := c.doRequest(ctx, fmt.Sprintf("/%s/%d", mediaType, id), query)
	if err != nil {
		return nil, err
	}

	var d details
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("failed to parse details: %w", errors.Join(domain.ErrMalformedResponse, err))
	}
	if d.Success != nil && !*d.Success {
		return nil, domain.ErrNotFound
	}
	item := mapDetails(&d, mediaType)
	if item.Title == "" {
		return nil, fmt.Errorf("details without title: %w", domain.ErrNotFound)
	}
	return item, nil
}

// DetailsByID is Details for an id taken from a link
func (c *Client) DetailsByID(ctx context.Context, id string, mediaType MediaType) (*domain.Item, error) {
	n, err := strconv.Atoi(id)
	if err != nil {
		return nil, fmt.Errorf("invalid tmdb id %q: %w", id, domain.ErrNotFound)
	}
	return c.Details(ctx, n, mediaType)
}

// Search finds the best match for query and returns its details
func (c *Client) Search(ctx context.Context, query string, mediaType MediaType) (*domain.Item, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("include_adult", "false")
	q.Set("language", "en-US")
	q.Set("page", "1")

	body, err := c.doRequest(ctx, "/search/"+string(mediaType), q)
	if err != nil {
		return nil, err
	}

	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse search results: %w", errors.Join(domain.ErrMalformedResponse, err))
	}
	if len(resp.Results) == 0 {
		return nil, domain.ErrNotFound
	}

	best := bestMatch(query, resp.Results)
	c.logger.Debug("tmdb search match", "query", query, "type", mediaType, "id", best.ID, "title", best.displayTitle())
	return c.Details(ctx, best.ID, mediaType)
}

// bestMatch returns the first result whose title contains the query's
// characters in order, ignoring case and accents; otherwise the top result.
func bestMatch(query string, results []searchResult) searchResult {
	for _, r := range results {
		if fuzzy.MatchNormalizedFold(query, r.displayTitle()) {
			return r
		}
	}
	return results[0]
}
