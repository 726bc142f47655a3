package adapter

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, parseLogLevel("debug"))
	assert.Equal(t, slog.LevelWarn, parseLogLevel("WARNING"))
	assert.Equal(t, slog.LevelError, parseLogLevel("error"))
	assert.Equal(t, slog.LevelInfo, parseLogLevel("nonsense"))
}

func TestJSONLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newJSONLogger(&buf, "WARN")

	logger.Info("hidden")
	logger.Warn("dropping failed page", "path", "movie/popular", "page", 3)

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"msg":"dropping failed page"`)
	assert.Contains(t, out, `"page":3`)
}

func TestSetupLoggerCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "marquee.log")
	logger, err := SetupLogger(&LoggingConfig{File: path, Level: "INFO", MaxSizeMB: 1, MaxBackups: 1})
	require.NoError(t, err)

	logger.Info("hello")
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSetupLoggerEmptyPath(t *testing.T) {
	_, err := SetupLogger(&LoggingConfig{})
	assert.Error(t, err)
}
