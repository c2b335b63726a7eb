// Package searcher resolves free-text queries against an inverted index: the
// query is analysed into terms, documents matching any term are scored and the
// best ones returned.
package searcher

import (
	"strings"

	"github.com/doquery/doquery/internal/analysis"
	"github.com/doquery/doquery/internal/document"
	"github.com/doquery/doquery/internal/indexer/index"
	"github.com/doquery/doquery/internal/searcher/ranker"
	apperrors "github.com/doquery/doquery/pkg/errors"
)

// Index is the read side of index.InvertedIndex used for searching.
type Index interface {
	DocumentsForTerm(term string) (map[string][]int, error)
	AllDocuments() []*document.Document
	ranker.CorpusStats
}

var _ Index = (*index.InvertedIndex)(nil)

type Option func(*Searcher)

// WithScorer replaces the default frequency-sum scorer.
func WithScorer(scorer ranker.Scorer) Option {
	return func(s *Searcher) {
		if scorer != nil {
			s.scorer = scorer
		}
	}
}

// Searcher ranks document IDs for a query. It must be given the analyzer the
// index was built with.
type Searcher struct {
	analyzer analysis.Analyzer
	index    Index
	scorer   ranker.Scorer
}

func New(analyzer analysis.Analyzer, idx Index, opts ...Option) (*Searcher, error) {
	if analyzer == nil {
		return nil, apperrors.InvalidArgument("searcher.New", "analyzer must not be nil")
	}
	if idx == nil {
		return nil, apperrors.InvalidArgument("searcher.New", "index must not be nil")
	}
	s := &Searcher{
		analyzer: analyzer,
		index:    idx,
		scorer:   ranker.Frequency{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Search returns up to topN document IDs matching any query term, best first.
func (s *Searcher) Search(query string, topN int) ([]string, error) {
	scored, err := s.SearchScored(query, topN)
	if err != nil {
		return nil, err
	}
	ids := make([]string, len(scored))
	for i, d := range scored {
		ids[i] = d.DocID
	}
	return ids, nil
}

// SearchScored is Search with scores attached.
func (s *Searcher) SearchScored(query string, topN int) ([]ranker.ScoredDoc, error) {
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.InvalidArgument("searcher.Search", "query must not be blank")
	}
	if topN <= 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "searcher.Search", "topN must be positive, got %d", topN)
	}
	postingsPerTerm := make(map[string]index.PostingList)
	for _, term := range uniqueTerms(s.analyzer.Analyze(query)) {
		docs, err := s.index.DocumentsForTerm(term)
		if err != nil {
			return nil, err
		}
		if len(docs) > 0 {
			postingsPerTerm[term] = index.NewPostingList(docs)
		}
	}
	return ranker.Rank(postingsPerTerm, s.scorer, s.index, topN), nil
}

// Terms returns the distinct analysed terms of query, in first-seen order.
func (s *Searcher) Terms(query string) []string {
	return uniqueTerms(s.analyzer.Analyze(query))
}

func uniqueTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(term)
		if term == "" {
			continue
		}
		if _, dup := seen[term]; dup {
			continue
		}
		seen[term] = struct{}{}
		out = append(out, term)
	}
	return out
}
