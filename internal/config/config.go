package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// BackendType identifies the remote store implementation
type BackendType string

const (
	BackendSQLite   BackendType = "sqlite"
	BackendPostgres BackendType = "postgres"
	BackendSupabase BackendType = "supabase"
)

// Config holds all application configuration
type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Cache    CacheConfig    `mapstructure:"cache"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// StoreConfig holds remote store configuration
type StoreConfig struct {
	Backend BackendType `mapstructure:"backend"`  // "sqlite", "postgres" or "supabase"
	URL     string      `mapstructure:"url"`      // Supabase project URL
	AnonKey string      `mapstructure:"anon_key"` // Supabase public key
	DSN     string      `mapstructure:"dsn"`      // SQL connection string or SQLite file
	Table   string      `mapstructure:"table"`
}

// MetadataConfig holds lookup service credentials
type MetadataConfig struct {
	TMDBToken    string  `mapstructure:"tmdb_token"`   // v4 read access token
	TMDBAPIKey   string  `mapstructure:"tmdb_api_key"` // v3 key, used when no token is set
	TMDBRate     float64 `mapstructure:"tmdb_rps"`
	GeminiAPIKey string  `mapstructure:"gemini_api_key"`
	GeminiModel  string  `mapstructure:"gemini_model"`
	EnrichScores bool    `mapstructure:"enrich_scores"`
}

// CacheConfig holds local cache configuration
type CacheConfig struct {
	Dir string `mapstructure:"dir"` // Empty keeps the cache in memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	ToastSeconds int `mapstructure:"toast_seconds"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendSQLite,
			DSN:     filepath.Join(defaultDataPath(), "videoteka.sqlite"),
			Table:   "media_items",
		},
		Metadata: MetadataConfig{
			TMDBRate:     20,
			GeminiModel:  "gemini-2.5-flash",
			EnrichScores: true,
		},
		Cache: CacheConfig{
			Dir: defaultCachePath(),
		},
		UI: UIConfig{
			ToastSeconds: 3,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "videoteka.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the per-user data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "videoteka")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "videoteka")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "videoteka")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "videoteka")
	}
}

// defaultCachePath returns the default cache directory for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "videoteka", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".cache", "videoteka")
	}
}

// LoadConfig loads configuration from the default locations and the environment
func LoadConfig() (*Config, error) {
	return Load(viper.GetViper(), defaultConfigPath(), ".")
}

// Load reads config.yaml from the given directories into a copy of the defaults.
// Environment variables prefixed with VIDEOTEKA_ override file values,
// e.g. VIDEOTEKA_METADATA_TMDB_TOKEN.
func Load(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	v.SetEnvPrefix("VIDEOTEKA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Cache.Dir = expandHome(cfg.Cache.Dir)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	if cfg.Store.Backend == BackendSQLite {
		cfg.Store.DSN = expandHome(cfg.Store.DSN)
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("store.backend", cfg.Store.Backend)
	v.SetDefault("store.url", cfg.Store.URL)
	v.SetDefault("store.anon_key", cfg.Store.AnonKey)
	v.SetDefault("store.dsn", cfg.Store.DSN)
	v.SetDefault("store.table", cfg.Store.Table)

	v.SetDefault("metadata.tmdb_token", cfg.Metadata.TMDBToken)
	v.SetDefault("metadata.tmdb_api_key", cfg.Metadata.TMDBAPIKey)
	v.SetDefault("metadata.tmdb_rps", cfg.Metadata.TMDBRate)
	v.SetDefault("metadata.gemini_api_key", cfg.Metadata.GeminiAPIKey)
	v.SetDefault("metadata.gemini_model", cfg.Metadata.GeminiModel)
	v.SetDefault("metadata.enrich_scores", cfg.Metadata.EnrichScores)

	v.SetDefault("cache.dir", cfg.Cache.Dir)
	v.SetDefault("ui.toast_seconds", cfg.UI.ToastSeconds)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// SaveConfig saves the configuration to the default config file
func SaveConfig(cfg *Config) error {
	configPath := defaultConfigPath()
	if err := os.MkdirAll(configPath, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	return Save(viper.GetViper(), cfg, filepath.Join(configPath, "config.yaml"))
}

// Save writes cfg to file with snake_case keys
func Save(v *viper.Viper, cfg *Config, file string) error {
	// Set fields individually to ensure correct key names (snake_case)
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.url", cfg.Store.URL)
	v.Set("store.anon_key", cfg.Store.AnonKey)
	v.Set("store.dsn", cfg.Store.DSN)
	v.Set("store.table", cfg.Store.Table)

	v.Set("metadata.tmdb_token", cfg.Metadata.TMDBToken)
	v.Set("metadata.tmdb_api_key", cfg.Metadata.TMDBAPIKey)
	v.Set("metadata.tmdb_rps", cfg.Metadata.TMDBRate)
	v.Set("metadata.gemini_api_key", cfg.Metadata.GeminiAPIKey)
	v.Set("metadata.gemini_model", cfg.Metadata.GeminiModel)
	v.Set("metadata.enrich_scores", cfg.Metadata.EnrichScores)

	v.Set("cache.dir", cfg.Cache.Dir)
	v.Set("ui.toast_seconds", cfg.UI.ToastSeconds)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	if err := v.WriteConfigAs(file); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// IsConfigured returns true if the selected backend has what it needs to connect
func (c *Config) IsConfigured() bool {
	switch c.Store.Backend {
	case BackendSupabase:
		return c.Store.URL != "" && c.Store.AnonKey != ""
	case BackendPostgres, BackendSQLite:
		return c.Store.DSN != ""
	default:
		return false
	}
}

// ClearCache removes all cached data
func ClearCache(cfg *Config) error {
	if cfg.Cache.Dir == "" {
		return nil
	}
	if err := os.RemoveAll(cfg.Cache.Dir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	return nil
}

// CacheKey identifies the remote store the local cache belongs to
func (c *Config) CacheKey() string {
	if c.Store.Backend == BackendSupabase {
		return c.Store.URL
	}
	return string(c.Store.Backend) + ":" + c.Store.DSN
}

func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
