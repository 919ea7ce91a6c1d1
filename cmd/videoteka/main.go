package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rsekulic/videoteka-v1/internal/catalog"
	"github.com/rsekulic/videoteka-v1/internal/config"
	"github.com/rsekulic/videoteka-v1/internal/log"
	"github.com/rsekulic/videoteka-v1/internal/metadata"
	"github.com/rsekulic/videoteka-v1/internal/metadata/gemini"
	"github.com/rsekulic/videoteka-v1/internal/metadata/tmdb"
	"github.com/rsekulic/videoteka-v1/internal/remote"
	"github.com/rsekulic/videoteka-v1/internal/store"
	"github.com/rsekulic/videoteka-v1/internal/tui"
)

// Version is set at build time via -ldflags
var Version = "dev"

type options struct {
	showVersion bool
	setup       bool
	clearCache  bool
	noCache     bool
	openPath    string
}

func main() {
	var opts options
	flag.BoolVar(&opts.showVersion, "v", false, "print version")
	flag.BoolVar(&opts.showVersion, "version", false, "print version")
	flag.BoolVar(&opts.setup, "setup", false, "run the setup flow and exit")
	flag.BoolVar(&opts.clearCache, "clear-cache", false, "remove the local cache and exit")
	flag.BoolVar(&opts.noCache, "no-cache", false, "keep the local cache in memory only")
	flag.StringVar(&opts.openPath, "open", "", "open a title by path, e.g. /severance")
	flag.Parse()

	if opts.showVersion {
		fmt.Printf("videoteka %s\n", Version)
		return
	}

	if err := run(opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(opts options) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	slog.SetDefault(logger)

	logger.Info("starting videoteka", "version", Version)

	if opts.clearCache {
		if err := config.ClearCache(cfg); err != nil {
			return err
		}
		fmt.Println("✓ Cache cleared.")
		return nil
	}

	if opts.setup || !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	if opts.noCache {
		cfg.Cache.Dir = ""
	}

	backend, err := remote.NewClient(cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to create remote store: %w", err)
	}
	defer backend.Close()

	cache, err := store.NewCatalogStore(cfg.Cache.Dir, cfg.CacheKey())
	if err != nil {
		return fmt.Errorf("failed to open cache: %w", err)
	}
	defer cache.Close()

	lookup, err := newLookup(cfg, logger)
	if err != nil {
		return err
	}

	toasts := catalog.NewToastQueue(time.Duration(cfg.UI.ToastSeconds) * time.Second)
	confirmer := tui.NewPromptConfirmer()

	svc := catalog.NewService(catalog.Deps{
		Store:     backend,
		Session:   backend,
		Cache:     cache,
		Lookup:    lookup,
		Confirmer: confirmer,
		Notifier:  toasts,
		Logger:    logger,
	})
	defer svc.Close()

	model := tui.NewModel(svc, toasts, confirmer, tui.Options{
		OpenPath: opts.openPath,
		Logger:   logger,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// newLookup builds the metadata lookup chain from the configured credentials
func newLookup(cfg *config.Config, logger *slog.Logger) (*metadata.Service, error) {
	m := cfg.Metadata
	structured := tmdb.NewClient("", m.TMDBToken, m.TMDBAPIKey, m.TMDBRate, logger)

	generative, err := gemini.NewClient(context.Background(), m.GeminiAPIKey, m.GeminiModel, logger)
	if err != nil {
		return nil, err
	}

	if !structured.Configured() && !generative.Enabled() {
		logger.Warn("no metadata credentials configured, lookups will fail")
	}
	return metadata.NewService(structured, generative, m.EnrichScores, logger), nil
}
