package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rsekulic/videoteka-v1/internal/domain"
)

const anonKey = "anon-key"

// fakeProject is a minimal in-memory PostgREST table plus password grant
type fakeProject struct {
	mu       sync.Mutex
	rows     []map[string]any
	token    string
	requests []string
}

func (f *fakeProject) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.requests = append(f.requests, r.Method+" "+r.URL.Path+"?"+r.URL.RawQuery)

		if r.Header.Get("apikey") != anonKey {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		authed := r.Header.Get("Authorization") == "Bearer "+f.token && f.token != ""

		switch {
		case r.URL.Path == "/auth/v1/token":
			var creds map[string]string
			_ = json.NewDecoder(r.Body).Decode(&creds)
			if creds["password"] != "secret" {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = io.WriteString(w, `{"error":"invalid_grant"}`)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"access_token": f.token,
				"expires_in":   3600,
				"user":         map[string]string{"email": creds["email"]},
			})
		case r.URL.Path == "/auth/v1/logout":
			w.WriteHeader(http.StatusNoContent)
		case r.URL.Path == "/rest/v1/media_items":
			f.table(t, w, r, authed)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func (f *fakeProject) table(t *testing.T, w http.ResponseWriter, r *http.Request, authed bool) {
	if r.Method != http.MethodGet && !authed {
		w.WriteHeader(http.StatusForbidden)
		return
	}
	switch r.Method {
	case http.MethodGet:
		if r.URL.Query().Get("order") != "created_at.desc" {
			t.Errorf("unexpected order: %q", r.URL.Query().Get("order"))
		}
		_ = json.NewEncoder(w).Encode(f.rows)
	case http.MethodPost:
		if r.Header.Get("Prefer") != "return=representation" {
			t.Errorf("insert without return=representation")
		}
		var in []map[string]any
		_ = json.NewDecoder(r.Body).Decode(&in)
		if !sameKeys(in) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"code":"PGRST102","message":"All object keys must match"}`)
			return
		}
		for i, row := range in {
			if _, ok := row["id"]; ok {
				t.Errorf("insert body carries an id: %v", row)
			}
			row["id"] = "123e4567-e89b-12d3-a456-42661417400" + string(rune('0'+i))
			row["created_at"] = "2024-05-01T12:00:00.123456+00:00"
			f.rows = append([]map[string]any{row}, f.rows...)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(in)
	case http.MethodPatch:
		id := strings.TrimPrefix(r.URL.Query().Get("id"), "eq.")
		var patch map[string]any
		_ = json.NewDecoder(r.Body).Decode(&patch)
		for _, row := range f.rows {
			if row["id"] == id {
				for k, v := range patch {
					row[k] = v
				}
			}
		}
		w.WriteHeader(http.StatusNoContent)
	case http.MethodDelete:
		filter := r.URL.Query().Get("id")
		kept := f.rows[:0]
		for _, row := range f.rows {
			id, _ := row["id"].(string)
			remove := (strings.HasPrefix(filter, "eq.") && id == filter[3:]) ||
				(strings.HasPrefix(filter, "neq.") && id != filter[4:])
			if !remove {
				kept = append(kept, row)
			}
		}
		f.rows = kept
		w.WriteHeader(http.StatusNoContent)
	}
}

// sameKeys reports whether every object of a bulk body has the same key set
func sameKeys(rows []map[string]any) bool {
	for _, row := range rows[min(1, len(rows)):] {
		if len(row) != len(rows[0]) {
			return false
		}
		for k := range row {
			if _, ok := rows[0][k]; !ok {
				return false
			}
		}
	}
	return true
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "role": "authenticated"}).
		SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func newTestClient(t *testing.T, f *fakeProject) *Client {
	t.Helper()
	srv := httptest.NewServer(f.handler(t))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, anonKey, "", nil)
}

func TestListNormalizesNullFavorite(t *testing.T) {
	f := &fakeProject{rows: []map[string]any{
		{"id": "a1", "title": "Dark", "type": "TV Series", "genre": []string{"Sci-Fi"}, "cast": []string{}, "is_favorite": nil, "seasons": 3},
		{"id": "b2", "title": "Parasite", "type": "Movie", "genre": []string{}, "cast": []string{}, "is_favorite": true},
	}}
	c := newTestClient(t, f)

	items, err := c.ListItems(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Favorite || !items[1].Favorite {
		t.Errorf("favorite flags not normalized: %+v", items)
	}
	if items[0].Seasons != 3 || items[0].Kind != domain.KindSeries {
		t.Errorf("series fields not mapped: %+v", items[0])
	}
}

func TestListRejectsMalformedRows(t *testing.T) {
	f := &fakeProject{rows: []map[string]any{{"title": "no id"}}}
	c := newTestClient(t, f)

	if _, err := c.ListItems(context.Background()); !errors.Is(err, domain.ErrMalformedResponse) {
		t.Errorf("got %v, want ErrMalformedResponse", err)
	}
}

func TestWritesWithoutSessionAreRejected(t *testing.T) {
	f := &fakeProject{token: signedToken(t, time.Now().Add(time.Hour))}
	c := newTestClient(t, f)

	err := c.UpdateItem(context.Background(), "a1", domain.FavoritePatch(true))
	if !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("got %v, want ErrAuthRequired", err)
	}
}

func TestSignInInsertUpdateDelete(t *testing.T) {
	f := &fakeProject{token: signedToken(t, time.Now().Add(time.Hour))}
	c := newTestClient(t, f)
	ctx := context.Background()

	var events []bool
	c.OnAuthStateChange(func(authed bool) { events = append(events, authed) })

	if err := c.SignIn(ctx, "admin@example.com", "wrong"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("bad password: got %v, want ErrAuthFailed", err)
	}
	if err := c.SignIn(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if !c.Authenticated() {
		t.Fatal("expected authenticated session")
	}

	stored, err := c.InsertItems(ctx, []domain.Item{{ID: "local", Title: "Severance", Kind: domain.KindSeries, Seasons: 1}})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(stored) != 1 || !domain.IsCanonicalID(stored[0].ID) {
		t.Fatalf("unexpected insert result: %+v", stored)
	}
	if stored[0].CreatedAt.IsZero() {
		t.Error("created_at not parsed")
	}

	if err := c.UpdateItem(ctx, stored[0].ID, domain.FavoritePatch(true)); err != nil {
		t.Fatalf("update: %v", err)
	}
	items, err := c.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !items[0].Favorite {
		t.Error("favorite not persisted")
	}

	if err := c.DeleteAllExcept(ctx, domain.SentinelID); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	items, err = c.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty table, got %d", len(items))
	}

	if err := c.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("events = %v, want [true false]", events)
	}
}

func TestBulkInsertMixesMoviesAndSeries(t *testing.T) {
	f := &fakeProject{token: signedToken(t, time.Now().Add(time.Hour))}
	c := newTestClient(t, f)
	ctx := context.Background()

	if err := c.SignIn(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}

	batch := []domain.Item{
		{Title: "Interstellar", Kind: domain.KindMovie, Runtime: "2h 49m", Director: "Christopher Nolan"},
		{Title: "Dark", Kind: domain.KindSeries, Seasons: 3},
	}
	stored, err := c.InsertItems(ctx, batch)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if len(stored) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(stored))
	}
	if stored[0].Runtime != "2h 49m" || stored[0].Seasons != 0 {
		t.Errorf("movie fields = %q/%d", stored[0].Runtime, stored[0].Seasons)
	}
	if stored[1].Seasons != 3 || stored[1].Runtime != "" || stored[1].Director != "" {
		t.Errorf("series fields = %q/%d/%q", stored[1].Runtime, stored[1].Seasons, stored[1].Director)
	}
}

func TestInsertRowsShareKeys(t *testing.T) {
	movie, err := json.Marshal(mapInsert(domain.Item{Title: "Parasite", Kind: domain.KindMovie, Runtime: "2h 12m"}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	series, err := json.Marshal(mapInsert(domain.Item{Title: "Severance", Kind: domain.KindSeries, Seasons: 1}))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var a, b map[string]any
	_ = json.Unmarshal(movie, &a)
	_ = json.Unmarshal(series, &b)
	if !sameKeys([]map[string]any{a, b}) {
		t.Errorf("key sets differ:\n%s\n%s", movie, series)
	}
	if b["runtime"] != nil || a["seasons"] != nil {
		t.Errorf("empty fields should be null: runtime=%v seasons=%v", b["runtime"], a["seasons"])
	}
}

func TestExpiredTokenEndsSession(t *testing.T) {
	f := &fakeProject{token: signedToken(t, time.Now().Add(time.Minute))}
	c := newTestClient(t, f)

	if err := c.SignIn(context.Background(), "admin@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	c.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	var events []bool
	c.OnAuthStateChange(func(authed bool) { events = append(events, authed) })
	if c.Authenticated() {
		t.Fatal("expired token still authenticated")
	}
	if len(events) != 1 || events[0] {
		t.Errorf("events = %v, want [false]", events)
	}
}

func TestTokenExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	got, ok := tokenExpiry(signedToken(t, exp))
	if !ok || !got.Equal(exp) {
		t.Errorf("tokenExpiry = %v %v, want %v", got, ok, exp)
	}
	if _, ok := tokenExpiry("not-a-jwt"); ok {
		t.Error("garbage token should not parse")
	}
}
