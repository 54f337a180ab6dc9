package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cmsdko/lingua/internal/norms"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lingua.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ProviderOffline, cfg.NLP.Provider)
	assert.Equal(t, "sm", cfg.NLP.Tier)
	assert.Equal(t, 4, cfg.Batch.Workers)
	assert.Equal(t, "results", cfg.Output.Dir)
	assert.Nil(t, cfg.NormSources())
}

// TestLoadFileAndEnv checks that the file overrides defaults and the
// environment overrides the file.
func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
nlp:
  provider: remote
  url: http://nlp:8000
  tier: lg
  timeout: 30s
classifiers:
  emotion_url: http://emo:9000
norms:
  dir: /data/norms
  tables:
    Valence:
      path: /data/valence.csv
      word_column: word
      value_column: v
batch:
  workers: 2
`)
	t.Setenv("LINGUA_WORKERS", "8")
	t.Setenv("LINGUA_ALLOWED_ORIGINS", "http://a,http://b")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ProviderRemote, cfg.NLP.Provider)
	assert.Equal(t, "lg", cfg.NLP.Tier)
	assert.Equal(t, 30*time.Second, cfg.NLP.Timeout)
	assert.Equal(t, "http://emo:9000", cfg.Classifiers.EmotionURL)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, []string{"http://a", "http://b"}, cfg.Server.AllowedOrigins)

	sources := cfg.NormSources()
	require.Len(t, sources, 5)
	assert.Equal(t, "/data/valence.csv", sources[norms.Valence].Path)
	assert.Equal(t, filepath.Join("/data/norms", "Concreteness_Database.xlsx"), sources[norms.Concreteness].Path)
}

// TestValidate covers every rejected value.
func TestValidate(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Unknown provider", func(c *Config) { c.NLP.Provider = "spacy" }},
		{"Remote without URL", func(c *Config) { c.NLP.Provider = ProviderRemote }},
		{"Bad tier", func(c *Config) { c.NLP.Tier = "xl" }},
		{"Negative rate", func(c *Config) { c.NLP.RatePerSecond = -1 }},
		{"No workers", func(c *Config) { c.Batch.Workers = 0 }},
		{"Negative cache", func(c *Config) { c.Classifiers.CacheSize = -1 }},
		{"Unknown norm", func(c *Config) {
			c.Norms.Tables = map[norms.Measure]norms.Source{"Arousal": {Path: "x"}}
		}},
		{"Bad log format", func(c *Config) { c.Log.Format = "xml" }},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
	assert.NoError(t, Default().Validate())
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "nlp:\n  unknown_field: 1\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "batch:\n  workers: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)
}
