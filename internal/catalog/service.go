// Package catalog owns the item collection and keeps it consistent with the
// local cache and the remote store.
//
// Every change is applied to the collection first and then mirrored to the
// remote store. The rules for mirroring and undoing changes live in Policies.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// LookupFailedMessage is shown when a lookup produced no candidate
const LookupFailedMessage = "Could not find metadata. Try a more specific title or a direct link."

// Deps are the collaborators of the catalog service
type Deps struct {
	Store     domain.RemoteStore
	Session   domain.Session
	Cache     domain.Cache
	Lookup    domain.MetadataLookup
	Confirmer domain.Confirmer
	Notifier  domain.Notifier
	Logger    *slog.Logger
}

// Stats summarizes the collection for the admin panel
type Stats struct {
	Total     int
	Favorites int
}

// Service is the item collection and its reconciliation rules. Safe for concurrent use;
// remote calls are made without holding the lock.
type Service struct {
	store     domain.RemoteStore
	session   domain.Session
	cache     domain.Cache
	lookup    domain.MetadataLookup
	confirmer domain.Confirmer
	notifier  domain.Notifier
	logger    *slog.Logger

	mu            sync.Mutex
	items         []domain.Item
	versions      map[string]uint64
	demo          bool
	admin         bool
	selectedID    string
	loading       bool
	bootstrapping bool

	unsubscribe func()
}

// NewService creates the catalog. The collection starts from the local cache,
// or from the sample set when the cache is empty, and stays in demo mode until
// the first successful sync.
func NewService(deps Deps) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &Service{
		store:     deps.Store,
		session:   deps.Session,
		cache:     deps.Cache,
		lookup:    deps.Lookup,
		confirmer: deps.Confirmer,
		notifier:  deps.Notifier,
		logger:    logger,
		versions:  make(map[string]uint64),
		demo:      true,
	}

	if s.cache != nil {
		if cached, ok := s.cache.LoadItems(); ok && len(cached) > 0 {
			s.items = cached
			logger.Debug("collection seeded from cache", "count", len(cached))
		}
	}
	if s.items == nil {
		s.items = Samples()
	}

	if s.session != nil {
		s.admin = s.session.Authenticated()
		s.unsubscribe = s.session.OnAuthStateChange(s.setAdmin)
	}
	return s
}

// Close stops listening to the session
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

func (s *Service) setAdmin(authenticated bool) {
	s.mu.Lock()
	changed := s.admin != authenticated
	s.admin = authenticated
	s.mu.Unlock()
	if changed {
		s.logger.Info("auth state changed", "authenticated", authenticated)
	}
}

// InitialSync replaces the collection with the remote rows. When the store fails
// or has no rows, the current collection is kept and demo mode is set.
// There is no retry; Refresh runs it again.
func (s *Service) InitialSync(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	rows, err := s.store.ListItems(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.demo = true
		s.persistLocked()
		s.logger.Warn("failed to list items, showing local data", "error", err)
		return fmt.Errorf("failed to list items: %w", err)
	}
	if len(rows) == 0 {
		s.demo = true
		s.persistLocked()
		s.logger.Info("remote store is empty, showing local data")
		return nil
	}

	s.items = domain.CloneItems(rows)
	for i := range s.items {
		s.bumpLocked(s.items[i].ID)
	}
	s.demo = false
	s.persistLocked()
	s.logger.Info("collection synced", "count", len(rows))
	return nil
}

// Refresh is a user-triggered InitialSync
func (s *Service) Refresh(ctx context.Context) error {
	return s.InitialSync(ctx)
}

// Add inserts a candidate into the remote store and prepends the stored row.
// In demo mode the stored row replaces the samples, since they are not in the store.
// When the insert fails the candidate is kept locally under a random identifier
// and the insert error is returned along with it.
func (s *Service) Add(ctx context.Context, candidate domain.Item) (domain.Item, error) {
	row := candidate.WithoutID()
	row.Favorite = false

	stored, err := s.store.InsertItems(ctx, []domain.Item{row})
	if err == nil && len(stored) != 1 {
		err = fmt.Errorf("insert returned %d rows: %w", len(stored), domain.ErrMalformedResponse)
	}

	s.mu.Lock()
	if err != nil {
		local := row
		local.ID = domain.NewLocalID()
		s.prependLocked(local)
		s.mu.Unlock()

		s.logger.Warn("failed to insert item, kept locally", "title", row.Title, "id", local.ID, "error", err)
		s.notify(fmt.Sprintf("%s saved locally only.", row.Title), domain.SeverityError)
		return local, fmt.Errorf("failed to insert item: %w", err)
	}

	item := stored[0].Clone()
	if s.demo {
		s.items = nil
		s.demo = false
	}
	s.prependLocked(item)
	s.mu.Unlock()

	s.logger.Info("item added", "title", item.Title, "id", item.ID)
	s.notify(fmt.Sprintf("%s added successfully.", item.Title), domain.SeveritySuccess)
	return item, nil
}

// AddFromLookup resolves input through the metadata lookup and adds the result
func (s *Service) AddFromLookup(ctx context.Context, input string) (domain.Item, error) {
	if s.lookup == nil {
		return domain.Item{}, domain.ErrNotFound
	}
	candidate, err := s.lookup.Lookup(ctx, input)
	if err != nil || candidate == nil {
		s.logger.Debug("lookup produced no candidate", "input", input, "error", err)
		return domain.Item{}, fmt.Errorf("%s: %w", LookupFailedMessage, domain.ErrNotFound)
	}
	return s.Add(ctx, *candidate)
}

// SignIn starts an admin session
func (s *Service) SignIn(ctx context.Context, email, password string) error {
	if err := s.session.SignIn(ctx, email, password); err != nil {
		s.logger.Warn("sign in failed", "email", email, "error", err)
		return err
	}
	s.setAdmin(s.session.Authenticated())
	s.notify("Signed in.", domain.SeveritySuccess)
	return nil
}

// SignOut ends the admin session
func (s *Service) SignOut(ctx context.Context) error {
	if err := s.session.SignOut(ctx); err != nil {
		s.logger.Warn("sign out failed", "error", err)
		return err
	}
	s.setAdmin(false)
	s.notify("Logged out.", domain.SeverityInfo)
	return nil
}

// Items returns a copy of the collection in store order
func (s *Service) Items() []domain.Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneItems(s.items)
}

// DemoMode reports whether the collection is not backed by remote rows
func (s *Service) DemoMode() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.demo
}

// Admin reports whether an admin session is active
func (s *Service) Admin() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.admin
}

// Loading reports whether a sync is in flight
func (s *Service) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Bootstrapping reports whether a bootstrap is in flight
func (s *Service) Bootstrapping() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bootstrapping
}

// Stats counts items and favorites
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := Stats{Total: len(s.items)}
	for i := range s.items {
		if s.items[i].Favorite {
			st.Favorites++
		}
	}
	return st
}

// Find returns the item with the given identifier
func (s *Service) Find(id string) (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexLocked(id); idx >= 0 {
		return s.items[idx].Clone(), true
	}
	return domain.Item{}, false
}

// Select marks an item as the one shown in detail
func (s *Service) Select(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.indexLocked(id) < 0 {
		return false
	}
	s.selectedID = id
	return true
}

// Selected returns the selected item. It is resolved by identifier, so it
// always reflects the latest changes.
func (s *Service) Selected() (domain.Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selectedID == "" {
		return domain.Item{}, false
	}
	if idx := s.indexLocked(s.selectedID); idx >= 0 {
		return s.items[idx].Clone(), true
	}
	return domain.Item{}, false
}

// ClearSelection closes the detail view
func (s *Service) ClearSelection() {
	s.mu.Lock()
	s.selectedID = ""
	s.mu.Unlock()
}

func (s *Service) notify(text string, severity domain.Severity) {
	if s.notifier != nil {
		s.notifier.Notify(text, severity)
	}
}

func (s *Service) confirm(ctx context.Context, prompt string) bool {
	return s.confirmer != nil && s.confirmer.Confirm(ctx, prompt)
}

func (s *Service) indexLocked(id string) int {
	for i := range s.items {
		if s.items[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Service) prependLocked(item domain.Item) {
	s.items = append([]domain.Item{item}, s.items...)
	s.bumpLocked(item.ID)
	s.persistLocked()
}

func (s *Service) bumpLocked(id string) uint64 {
	s.versions[id]++
	return s.versions[id]
}

// persistLocked mirrors the collection to the local cache. Failures are logged only.
func (s *Service) persistLocked() {
	if s.cache == nil {
		return
	}
	if err := s.cache.SaveItems(domain.CloneItems(s.items)); err != nil {
		s.logger.Warn("failed to save cache", "error", err)
	}
}

// isAuthError reports whether err means the session is missing or expired
func isAuthError(err error) bool {
	return errors.Is(err, domain.ErrAuthRequired)
}
