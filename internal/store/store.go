package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rsekulic/videoteka-v1/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketCatalog = []byte("catalog")
)

// Keys inside the catalog bucket
const (
	keyItems   = "items"
	keySavedAt = "saved_at"
)

// CatalogStore implements domain.Cache using BoltDB.
// The whole collection lives under one key; every save replaces it.
type CatalogStore struct {
	db *bolt.DB
	mu sync.RWMutex // Protects memory cache

	// In-memory cache for hot-path reads (promoted on access)
	cache map[string][]byte
}

var _ domain.Cache = (*CatalogStore)(nil)

// NewCatalogStore opens the cache for one remote store. An empty baseCacheDir keeps everything in memory.
func NewCatalogStore(baseCacheDir, storeKey string) (*CatalogStore, error) {
	if baseCacheDir == "" {
		// Memory-only mode (no persistence)
		return &CatalogStore{cache: make(map[string][]byte)}, nil
	}

	dir := baseCacheDir
	if storeKey != "" {
		dir = filepath.Join(baseCacheDir, hashStoreKey(storeKey))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	dbPath := filepath.Join(dir, "videoteka.db")
	db, err := bolt.Open(dbPath, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCatalog)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	// Clean up JSON snapshots written by older versions
	cleanupLegacyJSONCache(dir)

	return &CatalogStore{db: db, cache: make(map[string][]byte)}, nil
}

func hashStoreKey(key string) string {
	normalized := strings.TrimRight(strings.ToLower(key), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

// cleanupLegacyJSONCache removes vestigial JSON cache files.
func cleanupLegacyJSONCache(cacheDir string) {
	matches, err := filepath.Glob(filepath.Join(cacheDir, "*.json"))
	if err != nil || len(matches) == 0 {
		return
	}
	for _, path := range matches {
		os.Remove(path) // Ignore errors
	}
}

func (s *CatalogStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// === Generic helpers ===

func (s *CatalogStore) get(key string, dest any) bool {
	s.mu.RLock()
	if data, ok := s.cache[key]; ok {
		s.mu.RUnlock()
		return json.Unmarshal(data, dest) == nil
	}
	s.mu.RUnlock()

	if s.db == nil {
		return false
	}

	var data []byte
	s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalog)
		if b == nil {
			return nil
		}
		if v := b.Get([]byte(key)); v != nil {
			data = make([]byte, len(v))
			copy(data, v)
		}
		return nil
	})

	if data == nil {
		return false
	}

	// Promote to memory cache
	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	return json.Unmarshal(data, dest) == nil
}

func (s *CatalogStore) set(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.cache[key] = data
	s.mu.Unlock()

	if s.db == nil {
		return nil // Memory-only mode
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCatalog).Put([]byte(key), data)
	})
}

func (s *CatalogStore) delete(keys ...string) error {
	s.mu.Lock()
	for _, key := range keys {
		delete(s.cache, key)
	}
	s.mu.Unlock()

	if s.db == nil {
		return nil
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketCatalog)
		if b == nil {
			return nil
		}
		for _, key := range keys {
			if err := b.Delete([]byte(key)); err != nil {
				return err
			}
		}
		return nil
	})
}

// === Catalog ===

// LoadItems returns the last saved collection. A missing or undecodable snapshot reports false.
func (s *CatalogStore) LoadItems() ([]domain.Item, bool) {
	var items []domain.Item
	if !s.get(keyItems, &items) {
		return nil, false
	}
	return items, true
}

// SaveItems replaces the stored collection
func (s *CatalogStore) SaveItems(items []domain.Item) error {
	if items == nil {
		items = []domain.Item{}
	}
	if err := s.set(keyItems, items); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return s.set(keySavedAt, time.Now().Unix())
}

// SavedAt returns when the collection was last written
func (s *CatalogStore) SavedAt() (time.Time, bool) {
	var ts int64
	if !s.get(keySavedAt, &ts) {
		return time.Time{}, false
	}
	return time.Unix(ts, 0), true
}

// Clear removes the stored collection
func (s *CatalogStore) Clear() error {
	return s.delete(keyItems, keySavedAt)
}
