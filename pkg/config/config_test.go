package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/doquery/doquery/pkg/errors"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, AnalyzerSimple, cfg.Analysis.Analyzer)
	assert.Equal(t, 10, cfg.Search.DefaultLimit)
	assert.Equal(t, 100, cfg.Search.MaxResults)
	assert.Equal(t, ScorerFrequency, cfg.Search.Scorer)
	assert.Equal(t, 4, cfg.Corpus.Workers)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "doquery.yaml", `
analysis:
  analyzer: snowball
  extraStopWords: [lorem, ipsum]
search:
  defaultLimit: 5
  maxResults: 20
  scorer: bm25
corpus:
  paths: [docs]
logging:
  level: debug
  format: json
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, AnalyzerSnowball, cfg.Analysis.Analyzer)
	assert.Equal(t, []string{"lorem", "ipsum"}, cfg.Analysis.ExtraStopWords)
	assert.Equal(t, 5, cfg.Search.DefaultLimit)
	assert.Equal(t, ScorerBM25, cfg.Search.Scorer)
	assert.Equal(t, []string{"docs"}, cfg.Corpus.Paths)
	assert.Equal(t, 4, cfg.Corpus.Workers, "unset fields keep defaults")
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_TOML(t *testing.T) {
	path := writeFile(t, "doquery.toml", `
[search]
defaultLimit = 3
maxResults = 30

[corpus]
paths = ["a.yaml", "b.toml"]
workers = 2
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Search.DefaultLimit)
	assert.Equal(t, 30, cfg.Search.MaxResults)
	assert.Equal(t, []string{"a.yaml", "b.toml"}, cfg.Corpus.Paths)
	assert.Equal(t, 2, cfg.Corpus.Workers)
	assert.Equal(t, AnalyzerSimple, cfg.Analysis.Analyzer)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DQ_ANALYZER", "snowball")
	t.Setenv("DQ_SEARCH_DEFAULT_LIMIT", "7")
	t.Setenv("DQ_CORPUS_PATHS", "x.yaml,y.yaml")
	t.Setenv("DQ_METRICS_ENABLED", "false")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, AnalyzerSnowball, cfg.Analysis.Analyzer)
	assert.Equal(t, 7, cfg.Search.DefaultLimit)
	assert.Equal(t, []string{"x.yaml", "y.yaml"}, cfg.Corpus.Paths)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "search: [unclosed"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown analyzer", func(c *Config) { c.Analysis.Analyzer = "ngram" }},
		{"unknown scorer", func(c *Config) { c.Search.Scorer = "random" }},
		{"zero default limit", func(c *Config) { c.Search.DefaultLimit = 0 }},
		{"zero max results", func(c *Config) { c.Search.MaxResults = 0 }},
		{"default above max", func(c *Config) { c.Search.DefaultLimit = 200 }},
		{"zero workers", func(c *Config) { c.Corpus.Workers = 0 }},
	}
	require.NoError(t, Default().Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), apperrors.ErrInvalidArgument)
		})
	}
}

func TestLoad_ShippedConfig(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "configs", "doquery.yaml"))
	require.NoError(t, err)
	def := Default()
	assert.Equal(t, def.Search, cfg.Search)
	assert.Equal(t, def.Logging, cfg.Logging)
	assert.Equal(t, def.Analysis.Analyzer, cfg.Analysis.Analyzer)
	assert.Equal(t, def.Corpus.Workers, cfg.Corpus.Workers)
	assert.Empty(t, cfg.Corpus.Paths)
}

func TestRead_DefersValidation(t *testing.T) {
	t.Setenv("DQ_ANALYZER", "ngram")

	_, err := Load("")
	assert.ErrorIs(t, err, apperrors.ErrInvalidArgument)

	cfg, err := Read("")
	require.NoError(t, err)
	assert.Equal(t, "ngram", cfg.Analysis.Analyzer)
	cfg.Analysis.Analyzer = AnalyzerSnowball
	assert.NoError(t, cfg.Validate())
}
