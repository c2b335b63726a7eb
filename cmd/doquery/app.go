package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/doquery/doquery/internal/analysis"
	"github.com/doquery/doquery/internal/analytics"
	"github.com/doquery/doquery/internal/corpus"
	"github.com/doquery/doquery/internal/document"
	"github.com/doquery/doquery/internal/indexer"
	"github.com/doquery/doquery/internal/searcher/ranker"
	"github.com/doquery/doquery/pkg/config"
	apperrors "github.com/doquery/doquery/pkg/errors"
	"github.com/doquery/doquery/pkg/logger"
	"github.com/doquery/doquery/pkg/metrics"
)

// app holds the state shared by all subcommands of one invocation.
type app struct {
	configPath string
	corpus     []string
	analyzer   string
	logLevel   string

	cfg       *config.Config
	registry  *prometheus.Registry
	metrics   *metrics.Metrics
	analytics *analytics.Aggregator
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "doquery",
		Short:         "In-memory full-text search over a document corpus",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "path to a YAML or TOML config file")
	flags.StringArrayVar(&a.corpus, "corpus", nil, "corpus file or directory (repeatable)")
	flags.StringVar(&a.analyzer, "analyzer", "", "text analyzer: simple or snowball")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		newSearchCmd(a),
		newStatsCmd(a),
		newTermsCmd(a),
		newDocCmd(a),
		newDemoCmd(a),
	)
	return root
}

// setup reads configuration, applies flag overrides on top of file and
// environment values, validates the result and installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Read(a.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if a.analyzer != "" {
		cfg.Analysis.Analyzer = a.analyzer
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if len(a.corpus) > 0 {
		cfg.Corpus.Paths = a.corpus
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	a.cfg = cfg

	logger.Setup(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
	a.analytics = analytics.NewAggregator()
	if cfg.Metrics.Enabled {
		a.registry = prometheus.NewRegistry()
		a.metrics = metrics.New(a.registry)
	}
	return nil
}

// engine builds an Engine and indexes the configured corpus, or the demo
// documents when no corpus is configured. An empty scorerName uses the
// configured scorer.
func (a *app) engine(ctx context.Context, scorerName string) (*indexer.Engine, error) {
	analyzer, err := analysis.ForName(a.cfg.Analysis.Analyzer, a.cfg.Analysis.ExtraStopWords)
	if err != nil {
		return nil, err
	}
	if scorerName == "" {
		scorerName = a.cfg.Search.Scorer
	}
	scorer, err := scorerFor(scorerName)
	if err != nil {
		return nil, err
	}
	e, err := indexer.NewEngine(analyzer,
		indexer.WithScorer(scorer),
		indexer.WithMetrics(a.metrics),
		indexer.WithAnalytics(a.analytics),
	)
	if err != nil {
		return nil, err
	}

	docs := demoDocuments()
	if len(a.cfg.Corpus.Paths) > 0 {
		docs, err = corpus.NewLoader(a.cfg.Corpus.Workers).Load(ctx, a.cfg.Corpus.Paths...)
		if err != nil {
			return nil, err
		}
	} else {
		slog.Debug("no corpus configured, using demo documents")
	}
	if _, err := e.IndexAll(docs); err != nil {
		return nil, err
	}
	return e, nil
}

func scorerFor(name string) (ranker.Scorer, error) {
	switch name {
	case config.ScorerFrequency:
		return ranker.Frequency{}, nil
	case config.ScorerBM25:
		return ranker.NewBM25(), nil
	default:
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "scorer", "unknown scorer %q", name)
	}
}

// limit resolves a --limit flag value against the search config.
func (a *app) limit(n int) int {
	if n <= 0 {
		return a.cfg.Search.DefaultLimit
	}
	return min(n, a.cfg.Search.MaxResults)
}

func demoDocuments() []*document.Document {
	return []*document.Document{
		document.MustNew("1", document.F("content", "jumps  fox the lazy dog")),
		document.MustNew("2", document.F("content", " over dog lazy dog")),
		document.MustNew("3", document.F("content", "dog jumps over the lazy fox")),
		document.MustNew("4", document.F("content", "this test star fox over values")),
	}
}
