package catalog

import (
	"context"
	"fmt"

	"github.com/rsekulic/videoteka-v1/internal/domain"
)

const wipePrompt = "WARNING: This will delete ALL entries in your database. Proceed?"

// Bootstrap seeds an empty remote store with the sample set and syncs again.
// It needs an admin session and demo mode. Concurrent runs fail with domain.ErrBusy.
func (s *Service) Bootstrap(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case !s.admin:
		s.mu.Unlock()
		return domain.ErrAuthRequired
	case !s.demo:
		s.mu.Unlock()
		return domain.ErrLiveMode
	case s.bootstrapping:
		s.mu.Unlock()
		return domain.ErrBusy
	}
	s.bootstrapping = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.bootstrapping = false
		s.mu.Unlock()
	}()

	s.notify("Bootstrapping your database...", domain.SeverityInfo)

	rows := make([]domain.Item, 0, len(samples))
	for _, it := range samples {
		rows = append(rows, it.WithoutID())
	}
	if _, err := s.store.InsertItems(ctx, rows); err != nil {
		s.logger.Error("failed to bootstrap remote store", "error", err)
		s.notify(failureText(err, "Bootstrap failed."), domain.SeverityError)
		return fmt.Errorf("failed to bootstrap: %w", err)
	}

	s.logger.Info("remote store bootstrapped", "count", len(rows))
	s.notify("Database successfully initialized!", domain.SeveritySuccess)
	return s.InitialSync(ctx)
}

// Wipe deletes every remote row after confirmation and returns to the sample set.
// It needs an admin session and live mode.
func (s *Service) Wipe(ctx context.Context) error {
	s.mu.Lock()
	admin, demo := s.admin, s.demo
	s.mu.Unlock()
	if !admin {
		return domain.ErrAuthRequired
	}
	if demo {
		return domain.ErrDemoMode
	}
	if !s.confirm(ctx, wipePrompt) {
		return domain.ErrCancelled
	}

	if err := s.store.DeleteAllExcept(ctx, domain.SentinelID); err != nil {
		s.logger.Error("failed to wipe remote store", "error", err)
		s.notify("Clear failed.", domain.SeverityError)
		return fmt.Errorf("failed to wipe: %w", err)
	}

	s.mu.Lock()
	for i := range s.items {
		s.bumpLocked(s.items[i].ID)
	}
	s.items = Samples()
	s.demo = true
	s.selectedID = ""
	s.persistLocked()
	s.mu.Unlock()

	s.logger.Info("remote store wiped")
	s.notify("Database cleared. Returned to demo mode.", domain.SeverityInfo)
	return nil
}

func failureText(err error, fallback string) string {
	if err == nil || err.Error() == "" {
		return fallback
	}
	return err.Error()
}
