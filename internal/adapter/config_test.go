package adapter

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0600))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
	assert.Equal(t, "en-US", cfg.TMDB.Language)
	assert.Equal(t, 5, cfg.Catalog.PageBudget)
	assert.Equal(t, 25, cfg.Catalog.MaxConcurrency)
	assert.Zero(t, cfg.Catalog.CacheTTL)
	assert.Equal(t, "all_movies", cfg.UI.DefaultCategory)
	assert.Equal(t, "title", cfg.UI.DefaultSort)
	assert.False(t, cfg.IsConfigured())
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfigFromFile(t *testing.T) {
	path := writeConfig(t, `
tmdb:
  api_key: abc123
  region: GB
  timeout: 10s
catalog:
  page_budget: 3
  cache_ttl: 5m
store:
  data_dir: /tmp/marquee-test
ui:
  default_category: tv/popular
  default_sort: popularity
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsConfigured())
	assert.Equal(t, "abc123", cfg.TMDB.APIKey)
	assert.Equal(t, "GB", cfg.TMDB.Region)
	assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
	assert.Equal(t, 3, cfg.Catalog.PageBudget)
	assert.Equal(t, 25, cfg.Catalog.MaxConcurrency)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.CacheTTL)
	assert.Equal(t, "tv/popular", cfg.UI.DefaultCategory)
	assert.Equal(t, filepath.Join("/tmp/marquee-test", "marquee.db"), cfg.StorePath())
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().Catalog, cfg.Catalog)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "tmdb:\n  api_key: from-file\n")
	t.Setenv("MARQUEE_TMDB_API_KEY", "from-env")
	t.Setenv("MARQUEE_CATALOG_MAX_CONCURRENCY", "8")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.TMDB.APIKey)
	assert.Equal(t, 8, cfg.Catalog.MaxConcurrency)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"zero page budget", "catalog:\n  page_budget: 0\n"},
		{"zero concurrency", "catalog:\n  max_concurrency: 0\n"},
		{"negative rate", "tmdb:\n  requests_per_second: -1\n"},
		{"unknown category", "ui:\n  default_category: movie/bogus\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSaveConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := DefaultConfig()
	cfg.TMDB.APIKey = "saved-key"
	cfg.Catalog.CacheTTL = 2 * time.Minute
	cfg.Player.Command = "mpv"
	cfg.Player.Args = []string{"--fs"}
	require.NoError(t, SaveConfig(cfg, path))

	loaded, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "saved-key", loaded.TMDB.APIKey)
	assert.Equal(t, 2*time.Minute, loaded.Catalog.CacheTTL)
	assert.Equal(t, cfg.TMDB.Timeout, loaded.TMDB.Timeout)
	assert.Equal(t, "mpv", loaded.Player.Command)
	assert.Equal(t, []string{"--fs"}, loaded.Player.Args)
}

func TestStorePathMemoryOnly(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.DataDir = ""
	assert.Empty(t, cfg.StorePath())
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "data"), expandHome("~/data"))
	assert.Equal(t, "/abs/path", expandHome("/abs/path"))
}
