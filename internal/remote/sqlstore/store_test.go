package sqlstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	passwordCost = bcrypt.MinCost
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, DialectSQLite, filepath.Join(t.TempDir(), "catalog.sqlite"), "", nil)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func signedIn(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()
	if err := s.EnsureAdmin(ctx, "Admin@Example.com", "secret"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if err := s.SignIn(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
}

func TestWritesRequireSession(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if _, err := s.InsertItems(ctx, []domain.Item{{Title: "Dark"}}); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("insert without session: got %v, want ErrAuthRequired", err)
	}
	if err := s.UpdateItem(ctx, "x", domain.FavoritePatch(true)); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("update without session: got %v, want ErrAuthRequired", err)
	}
	if err := s.DeleteItem(ctx, "x"); !errors.Is(err, domain.ErrAuthRequired) {
		t.Errorf("delete without session: got %v, want ErrAuthRequired", err)
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("list is public: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty table, got %d rows", len(items))
	}
}

func TestSignInRejectsBadPassword(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.EnsureAdmin(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}

	var events []bool
	s.OnAuthStateChange(func(authed bool) { events = append(events, authed) })

	if err := s.SignIn(ctx, "admin@example.com", "wrong"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("got %v, want ErrAuthFailed", err)
	}
	if err := s.SignIn(ctx, "nobody@example.com", "secret"); !errors.Is(err, domain.ErrAuthFailed) {
		t.Fatalf("unknown account: got %v, want ErrAuthFailed", err)
	}
	if s.Authenticated() || len(events) != 0 {
		t.Fatalf("failed sign in changed state: authed=%v events=%v", s.Authenticated(), events)
	}

	if err := s.SignIn(ctx, "admin@example.com", "secret"); err != nil {
		t.Fatalf("sign in: %v", err)
	}
	if err := s.SignOut(ctx); err != nil {
		t.Fatalf("sign out: %v", err)
	}
	if len(events) != 2 || !events[0] || events[1] {
		t.Errorf("events = %v, want [true false]", events)
	}
}

func TestInsertAssignsCanonicalIDsAndKeepsOrder(t *testing.T) {
	s := openTestStore(t)
	signedIn(t, s)
	ctx := context.Background()

	stored, err := s.InsertItems(ctx, []domain.Item{
		{ID: "local1", Title: "Interstellar", Kind: domain.KindMovie, Genres: []string{"Sci-Fi"}, Runtime: "2h 49m"},
		{Title: "Succession", Kind: domain.KindSeries, Seasons: 4, Cast: []string{"Brian Cox"}},
	})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	for _, it := range stored {
		if !domain.IsCanonicalID(it.ID) {
			t.Errorf("id %q is not canonical", it.ID)
		}
	}

	later, err := s.InsertItems(ctx, []domain.Item{{Title: "Dark", Kind: domain.KindSeries}})
	if err != nil {
		t.Fatalf("insert later: %v", err)
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(items))
	}
	wantOrder := []string{"Dark", "Interstellar", "Succession"}
	for i, title := range wantOrder {
		if items[i].Title != title {
			t.Errorf("row %d = %q, want %q", i, items[i].Title, title)
		}
	}
	if items[0].ID != later[0].ID {
		t.Errorf("newest row id mismatch")
	}
	if items[1].Runtime != "2h 49m" || items[1].Genres[0] != "Sci-Fi" || items[1].Favorite {
		t.Errorf("movie row not decoded: %+v", items[1])
	}
	if items[2].Seasons != 4 || items[2].Cast[0] != "Brian Cox" {
		t.Errorf("series row not decoded: %+v", items[2])
	}
}

func TestUpdateWritesOnlyPatchedColumns(t *testing.T) {
	s := openTestStore(t)
	signedIn(t, s)
	ctx := context.Background()

	stored, err := s.InsertItems(ctx, []domain.Item{{Title: "Dark", Year: "2017", Kind: domain.KindSeries, Genres: []string{"Sci-Fi"}}})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	id := stored[0].ID

	updated := stored[0].Clone()
	updated.Year = "2017-2020"
	updated.Genres = []string{"Sci-Fi", "Mystery"}
	if err := s.UpdateItem(ctx, id, domain.Diff(stored[0], updated)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if err := s.UpdateItem(ctx, id, domain.FavoritePatch(true)); err != nil {
		t.Fatalf("favorite: %v", err)
	}

	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	got := items[0]
	if got.Year != "2017-2020" || len(got.Genres) != 2 || !got.Favorite || got.Title != "Dark" {
		t.Errorf("unexpected row after update: %+v", got)
	}
}

func TestDeleteAllExceptKeepsSentinelRow(t *testing.T) {
	s := openTestStore(t)
	signedIn(t, s)
	ctx := context.Background()

	if _, err := s.InsertItems(ctx, []domain.Item{{Title: "A"}, {Title: "B"}}); err != nil {
		t.Fatalf("insert: %v", err)
	}
	// Plant a row under the sentinel id directly
	_, err := s.db.ExecContext(ctx, `INSERT INTO media_items (id, title, type, created_at) VALUES (?, 'keep', 'Movie', '2000-01-01T00:00:00.000000Z')`, domain.SentinelID)
	if err != nil {
		t.Fatalf("plant sentinel: %v", err)
	}

	if err := s.DeleteAllExcept(ctx, domain.SentinelID); err != nil {
		t.Fatalf("delete all: %v", err)
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].ID != domain.SentinelID {
		t.Errorf("expected only the sentinel row, got %+v", items)
	}
}

func TestDeleteItem(t *testing.T) {
	s := openTestStore(t)
	signedIn(t, s)
	ctx := context.Background()

	stored, err := s.InsertItems(ctx, []domain.Item{{Title: "A"}, {Title: "B"}})
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if err := s.DeleteItem(ctx, stored[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	items, err := s.ListItems(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 1 || items[0].Title != "B" {
		t.Errorf("unexpected rows: %+v", items)
	}
}

func TestRebindPostgres(t *testing.T) {
	s := &Store{dialect: DialectPostgres}
	got := s.rebind(`UPDATE t SET a = ?, b = ? WHERE id = ?`)
	want := `UPDATE t SET a = $1, b = $2 WHERE id = $3`
	if got != want {
		t.Errorf("rebind = %q, want %q", got, want)
	}
}

func TestOpenRejectsBadTableName(t *testing.T) {
	_, err := Open(context.Background(), DialectSQLite, filepath.Join(t.TempDir(), "x.sqlite"), "items; DROP", nil)
	if err == nil {
		t.Fatal("expected error for invalid table name")
	}
}
