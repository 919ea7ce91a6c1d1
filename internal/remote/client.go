package remote

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rsekulic/videoteka-v1/internal/config"
	"github.com/rsekulic/videoteka-v1/internal/domain"
	"github.com/rsekulic/videoteka-v1/internal/remote/sqlstore"
	"github.com/rsekulic/videoteka-v1/internal/remote/supabase"
)

const connectTimeout = 10 * time.Second

// Backend combines the interfaces a remote store implementation must provide.
type Backend interface {
	domain.RemoteStore // Rows: ListItems, InsertItems, UpdateItem, DeleteItem, DeleteAllExcept
	domain.Session     // Admin auth: SignIn, SignOut, Authenticated, OnAuthStateChange
	Close() error
}

// AdminProvisioner is implemented by backends that keep their own admin accounts
type AdminProvisioner interface {
	EnsureAdmin(ctx context.Context, email, password string) error
}

// NewClient creates the Backend selected by the store configuration.
// An unreachable SQL server yields an Offline backend so the app can still
// start on local samples.
func NewClient(cfg *config.Config, logger *slog.Logger) (Backend, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	switch cfg.Store.Backend {
	case config.BackendSupabase:
		if cfg.Store.URL == "" {
			return nil, fmt.Errorf("store URL is required")
		}
		if cfg.Store.AnonKey == "" {
			return nil, fmt.Errorf("store anon key is required")
		}
		return supabase.NewClient(cfg.Store.URL, cfg.Store.AnonKey, cfg.Store.Table, logger), nil

	case config.BackendSQLite, config.BackendPostgres:
		if cfg.Store.DSN == "" {
			return nil, fmt.Errorf("store DSN is required")
		}
		dialect := sqlstore.DialectSQLite
		if cfg.Store.Backend == config.BackendPostgres {
			dialect = sqlstore.DialectPostgres
		}

		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout)
		defer cancel()

		store, err := sqlstore.Open(ctx, dialect, cfg.Store.DSN, cfg.Store.Table, logger)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnreachable) {
				// Non-fatal: the catalog falls back to local samples
				logger.Warn("remote store unreachable, running offline", "backend", cfg.Store.Backend, "error", err)
				return NewOffline(err), nil
			}
			return nil, err
		}
		return store, nil

	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}
}
