package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

func sampleItems() []domain.Item {
	return []domain.Item{
		{ID: "123e4567-e89b-12d3-a456-426614174000", Title: "Dark", Kind: domain.KindSeries, Seasons: 3, Favorite: true},
		{ID: "k3j9x0abc", Title: "Parasite", Kind: domain.KindMovie, Genres: []string{"Thriller"}},
	}
}

func TestSaveAndReloadAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	s, err := NewCatalogStore(dir, "https://example.supabase.co")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, ok := s.LoadItems(); ok {
		t.Fatal("fresh store should report no items")
	}
	if err := s.SaveItems(sampleItems()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewCatalogStore(dir, "https://example.supabase.co/")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	items, ok := reopened.LoadItems()
	if !ok {
		t.Fatal("expected cached items after reopen")
	}
	if len(items) != 2 || items[0].Title != "Dark" || !items[0].Favorite {
		t.Errorf("unexpected items: %+v", items)
	}
	if _, ok := reopened.SavedAt(); !ok {
		t.Error("expected a save timestamp")
	}
}

func TestStoresAreKeyedByRemote(t *testing.T) {
	dir := t.TempDir()

	a, err := NewCatalogStore(dir, "sqlite:/tmp/a.sqlite")
	if err != nil {
		t.Fatalf("open a: %v", err)
	}
	defer a.Close()
	b, err := NewCatalogStore(dir, "sqlite:/tmp/b.sqlite")
	if err != nil {
		t.Fatalf("open b: %v", err)
	}
	defer b.Close()

	if err := a.SaveItems(sampleItems()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, ok := b.LoadItems(); ok {
		t.Error("cache for another store should be empty")
	}
}

func TestClear(t *testing.T) {
	s, err := NewCatalogStore(t.TempDir(), "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	if err := s.SaveItems(sampleItems()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := s.LoadItems(); ok {
		t.Error("items survived clear")
	}
}

func TestMemoryOnlyMode(t *testing.T) {
	s, err := NewCatalogStore("", "ignored")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := s.SaveItems(nil); err != nil {
		t.Fatalf("save: %v", err)
	}
	items, ok := s.LoadItems()
	if !ok || len(items) != 0 {
		t.Errorf("expected empty but present collection, got %v %v", items, ok)
	}
	if err := s.Close(); err != nil {
		t.Errorf("close: %v", err)
	}
}

func TestLegacyJSONRemovedOnOpen(t *testing.T) {
	dir := t.TempDir()
	legacy := filepath.Join(dir, "videoteka_cache.json")
	if err := os.WriteFile(legacy, []byte("[]"), 0600); err != nil {
		t.Fatalf("write legacy: %v", err)
	}
	s, err := NewCatalogStore(dir, "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()
	if _, err := os.Stat(legacy); !os.IsNotExist(err) {
		t.Errorf("legacy file still present: %v", err)
	}
}
