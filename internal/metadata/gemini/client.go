// Package gemini asks a generative model with web search grounding for catalog metadata.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

// Generator is the part of the genai models service the client uses
type Generator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Client wraps a generator with the catalog prompts and response schemas
type Client struct {
	gen    Generator
	model  string
	logger *slog.Logger
}

// NewClient connects to the Gemini API. An empty key yields a disabled client.
func NewClient(ctx context.Context, apiKey, model string, logger *slog.Logger) (*Client, error) {
	if apiKey == "" {
		return NewWithGenerator(nil, model, logger), nil
	}
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return NewWithGenerator(gc.Models, model, logger), nil
}

// NewWithGenerator builds a client on any Generator; nil disables it
func NewWithGenerator(gen Generator, model string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if model == "" {
		model = DefaultModel
	}
	return &Client{gen: gen, model: model, logger: logger}
}

// Enabled reports whether a generator is configured
func (c *Client) Enabled() bool {
	return c != nil && c.gen != nil
}

// Find looks up complete metadata for a free-text title or link
func (c *Client) Find(ctx context.Context, input string) (*domain.Item, error) {
	prompt := fmt.Sprintf(`Find complete metadata for: %q.
Search Google for the most accurate match.
Ensure you capture accurate title, year, genre, and description.
Return as a JSON object.`, input)
	return c.item(ctx, prompt)
}

// Crawl extracts metadata from a review site page
func (c *Client) Crawl(ctx context.Context, pageURL string) (*domain.Item, error) {
	prompt := fmt.Sprintf(`Open %s and extract the metadata of the movie or series it describes.
Include the critic score and the audience score exactly as the page shows them.
Use Google Search to fill fields the page does not show.
Return as a JSON object.`, pageURL)
	return c.item(ctx, prompt)
}

// Scores holds review aggregate percentages
type Scores struct {
	Critic   string `json:"critic_score"`
	Audience string `json:"audience_score"`
}

// Scores looks up the critic and audience scores of a title
func (c *Client) Scores(ctx context.Context, title, year string, kind domain.Kind) (Scores, error) {
	if !c.Enabled() {
		return Scores{}, domain.ErrNotFound
	}
	prompt := fmt.Sprintf(`Find the Rotten Tomatoes critic score (Tomatometer) and audience score for the %s %q (%s).
Search Google. Answer with percentages such as "93%%". Use "N/A" for a score that does not exist.`, strings.ToLower(string(kind)), title, year)

	text, err := c.generate(ctx, prompt, scoresSchema)
	if err != nil {
		return Scores{}, err
	}
	var s Scores
	if err := json.Unmarshal([]byte(text), &s); err != nil {
		return Scores{}, fmt.Errorf("failed to parse scores: %w", errors.Join(domain.ErrMalformedResponse, err))
	}
	if s.Critic == "" || s.Audience == "" {
		return Scores{}, fmt.Errorf("incomplete scores: %w", domain.ErrMalformedResponse)
	}
	return s, nil
}

func (c *Client) item(ctx context.Context, prompt string) (*domain.Item, error) {
	if !c.Enabled() {
		return nil, domain.ErrNotFound
	}
	text, err := c.generate(ctx, prompt, itemSchema)
	if err != nil {
		return nil, err
	}
	return parseItem(text)
}

func (c *Client) generate(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
	resp, err := c.gen.GenerateContent(ctx, c.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Tools:            []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}},
		ResponseMIMEType: "application/json",
		ResponseSchema:   schema,
	})
	if err != nil {
		c.logger.Warn("gemini request failed", "error", err)
		return "", err
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("empty response: %w", domain.ErrNotFound)
	}
	return stripFence(text), nil
}

// stripFence removes a markdown code fence around the JSON, if any
func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
