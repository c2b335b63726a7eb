// Package config loads and validates doquery configuration from YAML or TOML
// files with environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	apperrors "github.com/doquery/doquery/pkg/errors"
)

// Analyzer names accepted in AnalysisConfig.Analyzer.
const (
	AnalyzerSimple   = "simple"
	AnalyzerSnowball = "snowball"
)

// Scorer names accepted in SearchConfig.Scorer.
const (
	ScorerFrequency = "frequency"
	ScorerBM25      = "bm25"
)

// Config is the top-level application configuration.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis" toml:"analysis"`
	Search   SearchConfig   `yaml:"search" toml:"search"`
	Corpus   CorpusConfig   `yaml:"corpus" toml:"corpus"`
	Logging  LoggingConfig  `yaml:"logging" toml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics" toml:"metrics"`
}

// AnalysisConfig selects the text analyzer used for both indexing and querying.
type AnalysisConfig struct {
	Analyzer       string   `yaml:"analyzer" toml:"analyzer"`
	ExtraStopWords []string `yaml:"extraStopWords" toml:"extraStopWords"`
}

// SearchConfig controls result limits and the scoring function.
type SearchConfig struct {
	DefaultLimit int    `yaml:"defaultLimit" toml:"defaultLimit"`
	MaxResults   int    `yaml:"maxResults" toml:"maxResults"`
	Scorer       string `yaml:"scorer" toml:"scorer"`
}

// CorpusConfig lists the files or directories documents are loaded from.
type CorpusConfig struct {
	Paths   []string `yaml:"paths" toml:"paths"`
	Workers int      `yaml:"workers" toml:"workers"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
}

// MetricsConfig toggles Prometheus collectors.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" toml:"enabled"`
}

// Load reads a config file (if provided), applies environment-variable
// overrides and validates the result. The file format is chosen by extension:
// .toml is TOML, anything else is YAML.
func Load(path string) (*Config, error) {
	cfg, err := Read(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read is Load without validation, for callers that apply further overrides
// (such as command-line flags) and validate afterwards.
func Read(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := decode(path, data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	applyEnvOverrides(cfg)
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			Analyzer: AnalyzerSimple,
		},
		Search: SearchConfig{
			DefaultLimit: 10,
			MaxResults:   100,
			Scorer:       ScorerFrequency,
		},
		Corpus: CorpusConfig{
			Workers: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate reports the first invalid setting as an ErrInvalidArgument.
func (c *Config) Validate() error {
	const op = "config.Validate"
	switch c.Analysis.Analyzer {
	case AnalyzerSimple, AnalyzerSnowball:
	default:
		return apperrors.Newf(apperrors.ErrInvalidArgument, op, "unknown analyzer %q", c.Analysis.Analyzer)
	}
	switch c.Search.Scorer {
	case ScorerFrequency, ScorerBM25:
	default:
		return apperrors.Newf(apperrors.ErrInvalidArgument, op, "unknown scorer %q", c.Search.Scorer)
	}
	if c.Search.DefaultLimit <= 0 {
		return apperrors.Newf(apperrors.ErrInvalidArgument, op, "search.defaultLimit must be positive, got %d", c.Search.DefaultLimit)
	}
	if c.Search.MaxResults <= 0 {
		return apperrors.Newf(apperrors.ErrInvalidArgument, op, "search.maxResults must be positive, got %d", c.Search.MaxResults)
	}
	if c.Search.DefaultLimit > c.Search.MaxResults {
		return apperrors.Newf(apperrors.ErrInvalidArgument, op, "search.defaultLimit %d exceeds search.maxResults %d",
			c.Search.DefaultLimit, c.Search.MaxResults)
	}
	if c.Corpus.Workers <= 0 {
		return apperrors.Newf(apperrors.ErrInvalidArgument, op, "corpus.workers must be positive, got %d", c.Corpus.Workers)
	}
	return nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Unmarshal(data, cfg)
	default:
		return yaml.Unmarshal(data, cfg)
	}
}

// applyEnvOverrides reads DQ_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DQ_ANALYZER"); v != "" {
		cfg.Analysis.Analyzer = v
	}
	if v := os.Getenv("DQ_SEARCH_DEFAULT_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.DefaultLimit = n
		}
	}
	if v := os.Getenv("DQ_SEARCH_MAX_RESULTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Search.MaxResults = n
		}
	}
	if v := os.Getenv("DQ_SEARCH_SCORER"); v != "" {
		cfg.Search.Scorer = v
	}
	if v := os.Getenv("DQ_CORPUS_PATHS"); v != "" {
		cfg.Corpus.Paths = strings.Split(v, ",")
	}
	if v := os.Getenv("DQ_CORPUS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Corpus.Workers = n
		}
	}
	if v := os.Getenv("DQ_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("DQ_LOGGING_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("DQ_METRICS_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Metrics.Enabled = b
		}
	}
}
