package supabase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/remote/session"
)

const (
	defaultTimeout = 30 * time.Second
	maxRetries     = 2
	baseRetryDelay = 500 * time.Millisecond
)

// Client implements domain.RemoteStore and domain.Session against a hosted
// PostgREST table with password sessions.
type Client struct {
	baseURL    string
	anonKey    string
	table      string
	httpClient *http.Client
	logger     *slog.Logger

	auth    session.State
	mu      sync.RWMutex
	token   string
	expires time.Time
	now     func() time.Time
}

var (
	_ domain.RemoteStore = (*Client)(nil)
	_ domain.Session     = (*Client)(nil)
)

// NewClient creates a new REST client
func NewClient(baseURL, anonKey, table string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if table == "" {
		table = "media_items"
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		anonKey: anonKey,
		table:   table,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		logger: logger,
		now:    time.Now,
	}
}

// Close releases idle connections
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// bearer returns the session token, or the public key when signed out
func (c *Client) bearer() string {
	if c.Authenticated() {
		c.mu.RLock()
		defer c.mu.RUnlock()
		return c.token
	}
	return c.anonKey
}

// doRequest performs an HTTP request against the project.
// GET requests are retried with exponential backoff on 5xx responses.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, body any, headers map[string]string) ([]byte, error) {
	reqURL := c.baseURL + path
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
	}

	retries := 0
	if method == http.MethodGet {
		retries = maxRetries
	}

	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt > 0 {
			delay := baseRetryDelay * time.Duration(1<<(attempt-1))
			c.logger.Debug("retrying request", "attempt", attempt, "delay", delay, "url", reqURL)
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		var reader io.Reader
		if payload != nil {
			reader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("apikey", c.anonKey)
		req.Header.Set("Authorization", "Bearer "+c.bearer())
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		for k, v := range headers {
			req.Header.Set(k, v)
		}

		c.logger.Debug("store request", "method", method, "url", reqURL, "attempt", attempt)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Error("store request failed", "error", err)
			return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnreachable, err)
		}

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
			c.logger.Warn("store rejected request", "status", resp.StatusCode, "path", path)
			return nil, domain.ErrAuthRequired
		case resp.StatusCode >= 500:
			lastErr = fmt.Errorf("%w: server error %d", domain.ErrStoreUnreachable, resp.StatusCode)
			c.logger.Warn("store server error", "status", resp.StatusCode, "body", string(respBody), "attempt", attempt)
			continue
		case resp.StatusCode < 200 || resp.StatusCode > 299:
			c.logger.Error("store request error", "status", resp.StatusCode, "body", string(respBody))
			return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		return respBody, nil
	}

	c.logger.Error("store request failed after retries", "error", lastErr, "url", reqURL)
	return nil, lastErr
}

func (c *Client) tablePath() string {
	return "/rest/v1/" + c.table
}

// ListItems returns every row, newest first
func (c *Client) ListItems(ctx context.Context) ([]domain.Item, error) {
	query := url.Values{}
	query.Set("select", "*")
	query.Set("order", "created_at.desc")

	body, err := c.doRequest(ctx, http.MethodGet, c.tablePath(), query, nil, nil)
	if err != nil {
		return nil, err
	}
	return decodeRows(body)
}

// InsertItems inserts rows and returns them with server-assigned ids
func (c *Client) InsertItems(ctx context.Context, items []domain.Item) ([]domain.Item, error) {
	if len(items) == 0 {
		return nil, nil
	}
	rows := make([]insertRow, len(items))
	for i, it := range items {
		rows[i] = mapInsert(it)
	}

	body, err := c.doRequest(ctx, http.MethodPost, c.tablePath(), nil, rows, map[string]string{
		"Prefer": "return=representation",
	})
	if err != nil {
		return nil, err
	}
	stored, err := decodeRows(body)
	if err != nil {
		return nil, err
	}
	if len(stored) != len(items) {
		return nil, fmt.Errorf("insert returned %d rows for %d items: %w", len(stored), len(items), domain.ErrMalformedResponse)
	}
	c.logger.Info("inserted items", "count", len(stored))
	return stored, nil
}

// UpdateItem patches one row
func (c *Client) UpdateItem(ctx context.Context, id string, patch domain.ItemPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	query := url.Values{}
	query.Set("id", "eq."+id)
	_, err := c.doRequest(ctx, http.MethodPatch, c.tablePath(), query, patch, map[string]string{
		"Prefer": "return=minimal",
	})
	return err
}

// DeleteItem removes one row
func (c *Client) DeleteItem(ctx context.Context, id string) error {
	query := url.Values{}
	query.Set("id", "eq."+id)
	_, err := c.doRequest(ctx, http.MethodDelete, c.tablePath(), query, nil, nil)
	return err
}

// DeleteAllExcept removes every row whose id differs from keep
func (c *Client) DeleteAllExcept(ctx context.Context, keep string) error {
	query := url.Values{}
	query.Set("id", "neq."+keep)
	if _, err := c.doRequest(ctx, http.MethodDelete, c.tablePath(), query, nil, nil); err != nil {
		return err
	}
	c.logger.Warn("deleted all items")
	return nil
}

func decodeRows(body []byte) ([]domain.Item, error) {
	var rows []row
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse rows: %w", errors.Join(domain.ErrMalformedResponse, err))
	}
	items := make([]domain.Item, 0, len(rows))
	for _, r := range rows {
		if r.ID == "" {
			return nil, fmt.Errorf("row without id: %w", domain.ErrMalformedResponse)
		}
		items = append(items, mapRow(r))
	}
	return items, nil
}
