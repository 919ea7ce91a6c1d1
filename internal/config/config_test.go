package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestLoadDefaultsWhenNoFile(t *testing.T) {
	cfg, err := Load(viper.New(), t.TempDir())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != BackendSQLite {
		t.Errorf("backend = %q, want sqlite", cfg.Store.Backend)
	}
	if cfg.UI.ToastSeconds != 3 {
		t.Errorf("toast seconds = %d, want 3", cfg.UI.ToastSeconds)
	}
	if !cfg.IsConfigured() {
		t.Error("default sqlite config should be usable")
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte(`store:
  backend: supabase
  url: https://example.supabase.co
  anon_key: public-key
metadata:
  tmdb_token: from-file
logging:
  level: DEBUG
`)
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("VIDEOTEKA_METADATA_TMDB_TOKEN", "from-env")
	t.Setenv("VIDEOTEKA_METADATA_GEMINI_API_KEY", "gem-key")

	cfg, err := Load(viper.New(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Backend != BackendSupabase || cfg.Store.URL != "https://example.supabase.co" {
		t.Errorf("unexpected store config: %+v", cfg.Store)
	}
	if cfg.Metadata.TMDBToken != "from-env" {
		t.Errorf("tmdb token = %q, want env override", cfg.Metadata.TMDBToken)
	}
	if cfg.Metadata.GeminiAPIKey != "gem-key" {
		t.Errorf("gemini key = %q, want env value", cfg.Metadata.GeminiAPIKey)
	}
	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("level = %q, want DEBUG", cfg.Logging.Level)
	}
	if !cfg.IsConfigured() {
		t.Error("supabase config with url and key should be configured")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.Store.Backend = BackendPostgres
	cfg.Store.DSN = "postgres://localhost/videoteka"
	cfg.UI.ToastSeconds = 4

	if err := Save(viper.New(), cfg, filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := Load(viper.New(), dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Store.Backend != BackendPostgres || loaded.Store.DSN != cfg.Store.DSN {
		t.Errorf("store not persisted: %+v", loaded.Store)
	}
	if loaded.UI.ToastSeconds != 4 {
		t.Errorf("toast seconds = %d, want 4", loaded.UI.ToastSeconds)
	}
}

func TestIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Backend = BackendSupabase
	if cfg.IsConfigured() {
		t.Error("supabase without url should not be configured")
	}
	cfg.Store.Backend = "mystery"
	if cfg.IsConfigured() {
		t.Error("unknown backend should not be configured")
	}
}
