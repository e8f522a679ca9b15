package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{EnvConfidenceThreshold, EnvPrecision, EnvLogLevel, EnvLogFile} {
		t.Setenv(k, "")
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 0.01, cfg.Retrieval.ConfidenceThreshold)
	assert.Equal(t, 2, cfg.Retrieval.MinTokenRunes)
	assert.Equal(t, 0, cfg.Retrieval.TopK)
	assert.Equal(t, 3, cfg.Display.Precision)
	assert.Equal(t, 8, cfg.Display.MatrixColumns)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Len(t, cfg.Demo.Documents, 7)
	assert.Len(t, cfg.Demo.Suggestions, 5)
	assert.Equal(t, cfg.Demo.Suggestions[0], cfg.Demo.Question)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`retrieval:
  confidence_threshold: 0.2
demo:
  documents:
    - uno
    - dos
log:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0.2, cfg.Retrieval.ConfidenceThreshold)
	assert.Equal(t, []string{"uno", "dos"}, cfg.Demo.Documents)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 3, cfg.Display.Precision)
	assert.Equal(t, 2, cfg.Retrieval.MinTokenRunes)
	assert.NotEmpty(t, cfg.Demo.Suggestions)
}

func TestLoadInvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("retrieval: [oops"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfidenceThreshold, "0.05")
	t.Setenv(EnvPrecision, "4")
	t.Setenv(EnvLogLevel, "warn")
	t.Setenv(EnvLogFile, "/tmp/tdf-esp.log")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0.05, cfg.Retrieval.ConfidenceThreshold)
	assert.Equal(t, 4, cfg.Display.Precision)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "/tmp/tdf-esp.log", cfg.Log.File)
}

func TestEnvOverrideParseError(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvConfidenceThreshold, "high")
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, EnvConfidenceThreshold)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*AppConfig)
	}{
		{"negative threshold", func(c *AppConfig) { c.Retrieval.ConfidenceThreshold = -0.1 }},
		{"threshold above one", func(c *AppConfig) { c.Retrieval.ConfidenceThreshold = 1.5 }},
		{"zero min runes", func(c *AppConfig) { c.Retrieval.MinTokenRunes = 0 }},
		{"negative top k", func(c *AppConfig) { c.Retrieval.TopK = -1 }},
		{"precision too high", func(c *AppConfig) { c.Display.Precision = 11 }},
		{"no matrix columns", func(c *AppConfig) { c.Display.MatrixColumns = 0 }},
	}
	require.NoError(t, defaultConfig().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveThenLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := defaultConfig()
	cfg.Retrieval.ConfidenceThreshold = 0.3
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}
