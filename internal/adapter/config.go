package adapter

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/mmcdole/marquee/internal/domain"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Catalog CatalogConfig `mapstructure:"catalog"`
	Store   StoreConfig   `mapstructure:"store"`
	Player  PlayerConfig  `mapstructure:"player"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds remote catalog API configuration
type TMDBConfig struct {
	APIKey            string        `mapstructure:"api_key"`
	BaseURL           string        `mapstructure:"base_url"`
	Language          string        `mapstructure:"language"`
	Region            string        `mapstructure:"region"` // Watch provider country, e.g. "US"
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`
}

// CatalogConfig holds aggregation settings
type CatalogConfig struct {
	PageBudget     int           `mapstructure:"page_budget"`     // Pages fetched per sub-path
	MaxConcurrency int           `mapstructure:"max_concurrency"` // In-flight requests per aggregation
	CacheTTL       time.Duration `mapstructure:"cache_ttl"`       // 0 disables memoization
}

// StoreConfig holds preference persistence configuration
type StoreConfig struct {
	DataDir string `mapstructure:"data_dir"` // Empty = memory only
}

// PlayerConfig holds the external trailer player configuration
type PlayerConfig struct {
	Command string   `mapstructure:"command"` // Empty = auto-detect
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultCategory string `mapstructure:"default_category"`
	DefaultSort     string `mapstructure:"default_sort"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			Language:          "en-US",
			Region:            "US",
			RequestsPerSecond: 40,
			Timeout:           30 * time.Second,
		},
		Catalog: CatalogConfig{
			PageBudget:     5,
			MaxConcurrency: 25,
			CacheTTL:       0,
		},
		Store: StoreConfig{
			DataDir: defaultDataPath(),
		},
		Player: PlayerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			DefaultCategory: domain.AllMovies.Tag(),
			DefaultSort:     domain.SortByTitle.String(),
		},
		Logging: LoggingConfig{
			File:       filepath.Join(defaultDataPath(), "marquee.log"),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "marquee")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "marquee")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "marquee")
	}
}

// DefaultConfigFile returns the path SaveConfig writes to when none is given
func DefaultConfigFile() string {
	return filepath.Join(defaultConfigPath(), "config.yaml")
}

// newViper builds a viper instance seeded with defaults and env overrides
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")

	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.language", cfg.TMDB.Language)
	v.SetDefault("tmdb.region", cfg.TMDB.Region)
	v.SetDefault("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("catalog.page_budget", cfg.Catalog.PageBudget)
	v.SetDefault("catalog.max_concurrency", cfg.Catalog.MaxConcurrency)
	v.SetDefault("catalog.cache_ttl", cfg.Catalog.CacheTTL)
	v.SetDefault("store.data_dir", cfg.Store.DataDir)
	v.SetDefault("player.command", cfg.Player.Command)
	v.SetDefault("player.args", cfg.Player.Args)
	v.SetDefault("ui.default_category", cfg.UI.DefaultCategory)
	v.SetDefault("ui.default_sort", cfg.UI.DefaultSort)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)

	// Environment variable overrides (MARQUEE_TMDB_API_KEY, ...)
	v.SetEnvPrefix("MARQUEE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// LoadConfig loads configuration from file and environment.
// An empty path searches the default config directory and the working directory.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SaveConfig writes the configuration to path, or the default file when empty
func SaveConfig(cfg *Config, path string) error {
	if path == "" {
		path = DefaultConfigFile()
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("tmdb.api_key", cfg.TMDB.APIKey)
	v.Set("tmdb.base_url", cfg.TMDB.BaseURL)
	v.Set("tmdb.language", cfg.TMDB.Language)
	v.Set("tmdb.region", cfg.TMDB.Region)
	v.Set("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)
	v.Set("tmdb.timeout", cfg.TMDB.Timeout.String())

	v.Set("catalog.page_budget", cfg.Catalog.PageBudget)
	v.Set("catalog.max_concurrency", cfg.Catalog.MaxConcurrency)
	v.Set("catalog.cache_ttl", cfg.Catalog.CacheTTL.String())

	v.Set("store.data_dir", cfg.Store.DataDir)

	v.Set("player.command", cfg.Player.Command)
	v.Set("player.args", cfg.Player.Args)

	v.Set("ui.default_category", cfg.UI.DefaultCategory)
	v.Set("ui.default_sort", cfg.UI.DefaultSort)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)
	v.Set("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.Set("logging.max_backups", cfg.Logging.MaxBackups)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != ""
}

// Validate rejects settings the catalog cannot work with
func (c *Config) Validate() error {
	if c.TMDB.BaseURL == "" {
		return fmt.Errorf("tmdb.base_url is required")
	}
	if c.Catalog.PageBudget < 1 {
		return fmt.Errorf("catalog.page_budget must be at least 1, got %d", c.Catalog.PageBudget)
	}
	if c.Catalog.MaxConcurrency < 1 {
		return fmt.Errorf("catalog.max_concurrency must be at least 1, got %d", c.Catalog.MaxConcurrency)
	}
	if c.TMDB.RequestsPerSecond < 0 {
		return fmt.Errorf("tmdb.requests_per_second must not be negative")
	}
	if _, err := domain.ParseCategory(c.UI.DefaultCategory); err != nil {
		return fmt.Errorf("ui.default_category: %w", err)
	}
	return nil
}

// StorePath returns the preference database path, empty for memory-only mode
func (c *Config) StorePath() string {
	if c.Store.DataDir == "" {
		return ""
	}
	return filepath.Join(expandHome(c.Store.DataDir), "marquee.db")
}

// expandHome expands a leading ~ to the user's home directory
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
