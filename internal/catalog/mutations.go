package catalog

import (
	"context"
	"fmt"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

// ToggleFavorite flips the favorite flag of an item. The change is undone when
// no session is active or the remote update fails.
func (s *Service) ToggleFavorite(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return false, fmt.Errorf("failed to toggle favorite %s: %w", id, domain.ErrItemNotFound)
	}
	before := s.items[idx].Clone()
	next := !before.Favorite
	s.items[idx].Favorite = next
	p := &plan{
		mutation:  MutationToggleFavorite,
		id:        id,
		before:    before,
		index:     idx,
		version:   s.bumpLocked(id),
		localOnly: LocalOnly(s.demo, id),
		remote: func(ctx context.Context) error {
			return s.store.UpdateItem(ctx, id, domain.FavoritePatch(next))
		},
	}
	s.persistLocked()
	s.mu.Unlock()

	if err := s.execute(ctx, p); err != nil {
		if isAuthError(err) {
			s.notify("Login required.", domain.SeverityError)
		} else {
			s.notify("Update failed.", domain.SeverityError)
		}
		return before.Favorite, err
	}
	if !p.localOnly {
		if next {
			s.notify("Added to favorites.", domain.SeveritySuccess)
		} else {
			s.notify("Removed from favorites.", domain.SeveritySuccess)
		}
	}
	return next, nil
}

// Update applies changed fields to an item and sends only those fields to the
// remote store. The identifier and the favorite flag are never changed.
// A failed remote update is reported but not undone.
func (s *Service) Update(ctx context.Context, id string, fields domain.Item) error {
	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("failed to update %s: %w", id, domain.ErrItemNotFound)
	}
	before := s.items[idx].Clone()
	updated := fields.Clone()
	updated.ID = before.ID
	updated.Favorite = before.Favorite
	updated.CreatedAt = before.CreatedAt

	patch := domain.Diff(before, updated)
	if patch.IsEmpty() {
		s.mu.Unlock()
		return nil
	}
	patch.Apply(&s.items[idx])
	p := &plan{
		mutation:  MutationUpdate,
		id:        id,
		before:    before,
		index:     idx,
		version:   s.bumpLocked(id),
		localOnly: LocalOnly(s.demo, id),
		remote: func(ctx context.Context) error {
			return s.store.UpdateItem(ctx, id, patch)
		},
	}
	s.persistLocked()
	s.mu.Unlock()

	if err := s.execute(ctx, p); err != nil {
		if isAuthError(err) {
			s.notify("Login required.", domain.SeverityError)
		} else {
			s.notify("Update failed.", domain.SeverityError)
		}
		return err
	}
	s.notify(fmt.Sprintf("%s updated.", updated.Title), domain.SeveritySuccess)
	return nil
}

// RefreshMetadata looks an item up again by title and applies the result through Update
func (s *Service) RefreshMetadata(ctx context.Context, id string) error {
	item, ok := s.Find(id)
	if !ok {
		return fmt.Errorf("failed to refresh %s: %w", id, domain.ErrItemNotFound)
	}
	if s.lookup == nil {
		return domain.ErrNotFound
	}
	fresh, err := s.lookup.Lookup(ctx, item.Title)
	if err != nil || fresh == nil {
		s.notify(LookupFailedMessage, domain.SeverityError)
		return fmt.Errorf("failed to refresh %s: %w", item.Title, domain.ErrNotFound)
	}
	keepKnown(fresh, item)
	return s.Update(ctx, id, *fresh)
}

// keepKnown fills fields the lookup left empty with the item's current values
func keepKnown(fresh *domain.Item, current domain.Item) {
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&fresh.Title, current.Title},
		{&fresh.Year, current.Year},
		{&fresh.Description, current.Description},
		{&fresh.Poster, current.Poster},
		{&fresh.Backdrop, current.Backdrop},
		{&fresh.Runtime, current.Runtime},
		{&fresh.Director, current.Director},
		{&fresh.TrailerURL, current.TrailerURL},
		{&fresh.CriticScore, current.CriticScore},
		{&fresh.AudienceScore, current.AudienceScore},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}
	if fresh.Kind == "" {
		fresh.Kind = current.Kind
	}
	if fresh.Seasons == 0 {
		fresh.Seasons = current.Seasons
	}
	if len(fresh.Genres) == 0 {
		fresh.Genres = current.Genres
	}
	if len(fresh.Cast) == 0 {
		fresh.Cast = current.Cast
	}
}

// Delete removes an item after the user confirms. A failed remote delete is
// reported but the item stays removed.
func (s *Service) Delete(ctx context.Context, id string) error {
	item, ok := s.Find(id)
	if !ok {
		return fmt.Errorf("failed to delete %s: %w", id, domain.ErrItemNotFound)
	}
	if Policies[MutationDelete].Confirm && !s.confirm(ctx, fmt.Sprintf("Remove %q permanently?", item.Title)) {
		return domain.ErrCancelled
	}

	s.mu.Lock()
	idx := s.indexLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return fmt.Errorf("failed to delete %s: %w", id, domain.ErrItemNotFound)
	}
	before := s.items[idx]
	s.items = append(s.items[:idx:idx], s.items[idx+1:]...)
	if s.selectedID == id {
		s.selectedID = ""
	}
	demo := s.demo
	p := &plan{
		mutation:  MutationDelete,
		id:        id,
		before:    before,
		index:     idx,
		version:   s.bumpLocked(id),
		localOnly: LocalOnly(demo, id),
		remote: func(ctx context.Context) error {
			return s.store.DeleteItem(ctx, id)
		},
	}
	s.persistLocked()
	s.mu.Unlock()

	if err := s.execute(ctx, p); err != nil {
		if isAuthError(err) {
			s.notify("Login required.", domain.SeverityError)
		} else {
			s.notify("Delete failed.", domain.SeverityError)
		}
		return err
	}
	if demo {
		s.notify("Demo item hidden.", domain.SeverityInfo)
	} else {
		s.notify("Item removed.", domain.SeverityInfo)
	}
	return nil
}

// execute mirrors an applied plan to the remote store following its policy
func (s *Service) execute(ctx context.Context, p *plan) error {
	if p.localOnly {
		s.logger.Debug("local-only change", "mutation", p.mutation, "id", p.id)
		return nil
	}
	pol := p.policy()
	if pol.RequiresSession && !s.Admin() {
		if pol.Rollback {
			s.rollback(p)
		}
		return fmt.Errorf("failed to %s %s: %w", p.mutation, p.id, domain.ErrAuthRequired)
	}
	if err := p.remote(ctx); err != nil {
		s.logger.Warn("remote mutation failed", "mutation", p.mutation, "id", p.id, "rollback", pol.Rollback, "error", err)
		if pol.Rollback {
			s.rollback(p)
		}
		return fmt.Errorf("failed to %s %s: %w", p.mutation, p.id, err)
	}
	s.logger.Debug("remote mutation applied", "mutation", p.mutation, "id", p.id)
	return nil
}

// rollback restores the snapshot of a plan unless a newer change touched the item since
func (s *Service) rollback(p *plan) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.versions[p.id] != p.version {
		s.logger.Debug("skipping stale rollback", "mutation", p.mutation, "id", p.id)
		return false
	}
	if idx := s.indexLocked(p.id); idx >= 0 {
		s.items[idx] = p.before.Clone()
	} else {
		at := min(p.index, len(s.items))
		s.items = append(s.items[:at], append([]domain.Item{p.before.Clone()}, s.items[at:]...)...)
	}
	s.bumpLocked(p.id)
	s.persistLocked()
	return true
}
