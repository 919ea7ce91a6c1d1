package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// SignIn exchanges email and password for an access token
func (c *Client) SignIn(ctx context.Context, email, password string) error {
	query := url.Values{}
	query.Set("grant_type", "password")

	body, err := c.doRequest(ctx, http.MethodPost, "/auth/v1/token", query, map[string]string{
		"email":    email,
		"password": password,
	}, nil)
	if err != nil {
		if errors.Is(err, domain.ErrStoreUnreachable) {
			return err
		}
		// Rejected credentials come back as 400 or 401
		c.logger.Warn("sign in rejected", "email", email, "error", err)
		return domain.ErrAuthFailed
	}

	var resp tokenResponse
	if err := json.Unmarshal(body, &resp); err != nil || resp.AccessToken == "" {
		return fmt.Errorf("failed to parse token response: %w", domain.ErrMalformedResponse)
	}

	expires := c.now().Add(time.Duration(resp.ExpiresIn) * time.Second)
	if exp, ok := tokenExpiry(resp.AccessToken); ok {
		expires = exp
	}

	c.mu.Lock()
	c.token = resp.AccessToken
	c.expires = expires
	c.mu.Unlock()

	identity := resp.User.Email
	if identity == "" {
		identity = email
	}
	c.auth.Set(identity)
	c.logger.Info("signed in", "email", identity, "expires", expires)
	return nil
}

// SignOut revokes the session on the server and forgets it locally
func (c *Client) SignOut(ctx context.Context) error {
	var err error
	if c.Authenticated() {
		_, err = c.doRequest(ctx, http.MethodPost, "/auth/v1/logout", nil, nil, nil)
		if err != nil {
			c.logger.Warn("server sign out failed", "error", err)
		}
	}
	c.clearSession()
	c.logger.Info("signed out")
	return err
}

// Authenticated reports whether the session token is present and unexpired.
// An expired token ends the session.
func (c *Client) Authenticated() bool {
	c.mu.RLock()
	token, expires := c.token, c.expires
	c.mu.RUnlock()

	if token == "" {
		return false
	}
	if !expires.IsZero() && !c.now().Before(expires) {
		c.logger.Info("session expired")
		c.clearSession()
		return false
	}
	return true
}

// OnAuthStateChange registers fn for sign-in, sign-out and expiry events
func (c *Client) OnAuthStateChange(fn func(authenticated bool)) func() {
	return c.auth.Subscribe(fn)
}

func (c *Client) clearSession() {
	c.mu.Lock()
	c.token = ""
	c.expires = time.Time{}
	c.mu.Unlock()
	c.auth.Set("")
}

// tokenExpiry reads the exp claim. The signature is not checked here; the server verifies it.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
