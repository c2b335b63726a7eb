package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/doquery/doquery/internal/analysis"
	"github.com/doquery/doquery/internal/analytics"
	"github.com/doquery/doquery/internal/document"
	"github.com/doquery/doquery/internal/indexer/index"
	"github.com/doquery/doquery/internal/searcher"
	"github.com/doquery/doquery/internal/searcher/ranker"
	apperrors "github.com/doquery/doquery/pkg/errors"
	"github.com/doquery/doquery/pkg/logger"
	"github.com/doquery/doquery/pkg/metrics"
)

// Stats are the index counters at one point in time.
type Stats struct {
	Documents   int `json:"documents"`
	UniqueTerms int `json:"unique_terms"`
	TotalTerms  int `json:"total_terms"`
}

type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) { e.metrics = m }
}

// WithAnalytics records every search in agg.
func WithAnalytics(agg *analytics.Aggregator) Option {
	return func(e *Engine) { e.analytics = agg }
}

func WithScorer(s ranker.Scorer) Option {
	return func(e *Engine) {
		if s != nil {
			e.scorer = s
		}
	}
}

// Engine makes an InvertedIndex safe for concurrent use: mutations take the
// write lock, lookups and searches the read lock. One analyzer is used for
// both indexing and querying.
type Engine struct {
	mu        sync.RWMutex
	index     *index.InvertedIndex
	analyzer  analysis.Analyzer
	scorer    ranker.Scorer
	metrics   *metrics.Metrics
	analytics *analytics.Aggregator
	logger    *slog.Logger

	// service is rebuilt lazily after every mutation.
	service atomic.Pointer[searcher.Service]
	group   singleflight.Group
}

func NewEngine(analyzer analysis.Analyzer, opts ...Option) (*Engine, error) {
	if analyzer == nil {
		return nil, apperrors.InvalidArgument("indexer.NewEngine", "analyzer must not be nil")
	}
	e := &Engine{
		index:    index.New(),
		analyzer: analyzer,
		scorer:   ranker.Frequency{},
		logger:   logger.WithComponent("indexer"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Index adds or replaces doc and returns the number of term occurrences
// recorded for it.
func (e *Engine) Index(doc *document.Document) (int, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	n, err := e.index.AddDocument(doc, e.analyzer)
	if err != nil {
		return 0, err
	}
	e.afterWrite()
	if e.metrics != nil {
		e.metrics.DocsIndexedTotal.Inc()
		e.metrics.TermsIndexedTotal.Add(float64(n))
	}
	e.logger.Debug("document indexed",
		"doc_id", doc.ID(),
		"term_count", n,
		"unique_terms", e.index.UniqueTermCount(),
	)
	return n, nil
}

// IndexAll indexes docs in order under a single write lock. Every document is
// validated first; nothing is indexed if any is nil or has an empty ID.
func (e *Engine) IndexAll(docs []*document.Document) (int, error) {
	for i, doc := range docs {
		if doc == nil {
			return 0, apperrors.Newf(apperrors.ErrInvalidArgument, "indexer.IndexAll", "document %d is nil", i)
		}
		if doc.ID() == "" {
			return 0, apperrors.Newf(apperrors.ErrInvalidArgument, "indexer.IndexAll", "document %d has an empty id", i)
		}
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	total := 0
	for _, doc := range docs {
		n, err := e.index.AddDocument(doc, e.analyzer)
		if err != nil {
			e.afterWrite()
			return total, fmt.Errorf("indexing document %s: %w", doc.ID(), err)
		}
		total += n
		if e.metrics != nil {
			e.metrics.DocsIndexedTotal.Inc()
			e.metrics.TermsIndexedTotal.Add(float64(n))
		}
	}
	e.afterWrite()
	e.logger.Info("documents indexed",
		"documents", len(docs),
		"term_count", total,
		"index_documents", e.index.DocumentCount(),
		"unique_terms", e.index.UniqueTermCount(),
	)
	return total, nil
}

// Remove deletes a document and reports whether it existed.
func (e *Engine) Remove(docID string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	removed, err := e.index.RemoveDocument(docID)
	if err != nil || !removed {
		return removed, err
	}
	e.afterWrite()
	if e.metrics != nil {
		e.metrics.DocsRemovedTotal.Inc()
	}
	e.logger.Debug("document removed", "doc_id", docID)
	return true, nil
}

func (e *Engine) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.index.Clear()
	e.afterWrite()
	e.logger.Info("index cleared")
}

// afterWrite must be called with the write lock held.
func (e *Engine) afterWrite() {
	e.service.Store(nil)
	e.metrics.SetIndexSize(e.index.DocumentCount(), e.index.UniqueTermCount(), e.index.TotalTermCount())
}

func (e *Engine) Document(docID string) (*document.Document, bool, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.Document(docID)
}

func (e *Engine) DocumentsForTerm(term string) (map[string][]int, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.DocumentsForTerm(term)
}

// Postings analyses text with the engine's analyzer and returns the postings
// of each resulting term.
func (e *Engine) Postings(text string) ([]index.TermEntry, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	terms := e.analyzer.Analyze(text)
	entries := make([]index.TermEntry, 0, len(terms))
	seen := make(map[string]struct{}, len(terms))
	for _, term := range terms {
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		list, err := e.index.Postings(term)
		if err != nil {
			return nil, err
		}
		entries = append(entries, index.TermEntry{Term: term, Postings: list})
	}
	return entries, nil
}

func (e *Engine) AllDocuments() []*document.Document {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.AllDocuments()
}

func (e *Engine) Snapshot() []index.TermEntry {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.index.Snapshot()
}

func (e *Engine) Stats() Stats {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return Stats{
		Documents:   e.index.DocumentCount(),
		UniqueTerms: e.index.UniqueTermCount(),
		TotalTerms:  e.index.TotalTermCount(),
	}
}

// Search runs query and returns up to topN results joined with their
// documents; 0 means searcher.DefaultMaxResults. Identical concurrent calls
// share one execution.
func (e *Engine) Search(ctx context.Context, query string, topN int) ([]searcher.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if logger.QueryID(ctx) == "" {
		ctx = logger.WithQueryID(ctx, uuid.NewString())
	}
	log := logger.FromContext(ctx).With("component", "indexer")

	start := time.Now()
	key := fmt.Sprintf("%d\x00%s", topN, query)
	val, err, shared := e.group.Do(key, func() (interface{}, error) {
		return e.search(query, topN)
	})
	elapsed := time.Since(start)
	event := analytics.SearchEvent{
		QueryID:   logger.QueryID(ctx),
		Query:     query,
		Latency:   elapsed,
		Shared:    shared,
		Failed:    err != nil,
		Timestamp: start,
	}
	if err != nil {
		e.analytics.Record(event)
		e.metrics.ObserveSearch(elapsed.Seconds(), 0, err)
		log.Debug("search rejected", "query", query, "error", err)
		return nil, err
	}
	results := val.([]searcher.Result)
	event.Returned = len(results)
	e.analytics.Record(event)
	e.metrics.ObserveSearch(elapsed.Seconds(), len(results), nil)
	log.Info("search completed",
		"query", query,
		"returned", len(results),
		"shared", shared,
		"latency_ms", elapsed.Milliseconds(),
	)
	if shared {
		results = append([]searcher.Result(nil), results...)
	}
	return results, nil
}

func (e *Engine) search(query string, topN int) ([]searcher.Result, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	svc := e.service.Load()
	if svc == nil {
		var err error
		svc, err = searcher.NewService(e.analyzer, e.index, searcher.WithScorer(e.scorer))
		if err != nil {
			return nil, fmt.Errorf("building search service: %w", err)
		}
		e.service.Store(svc)
	}
	return svc.Search(query, topN)
}
