package searcher

import (
	"github.com/doquery/doquery/internal/analysis"
	"github.com/doquery/doquery/internal/document"
	apperrors "github.com/doquery/doquery/pkg/errors"
)

// DefaultMaxResults applies when Service.Search is called with maxResults 0.
const DefaultMaxResults = 10

// Result is one search hit joined with its document.
type Result struct {
	DocumentID string             `json:"document_id"`
	Score      float64            `json:"score"`
	Document   *document.Document `json:"-"`
}

// Service joins ranked IDs back to documents. The ID → document lookup is
// taken from the index once, at construction; IDs missing from it are
// dropped from results.
type Service struct {
	searcher *Searcher
	lookup   map[string]*document.Document
}

func NewService(analyzer analysis.Analyzer, idx Index, opts ...Option) (*Service, error) {
	s, err := New(analyzer, idx, opts...)
	if err != nil {
		return nil, err
	}
	docs := idx.AllDocuments()
	lookup := make(map[string]*document.Document, len(docs))
	for _, doc := range docs {
		lookup[doc.ID()] = doc
	}
	return &Service{searcher: s, lookup: lookup}, nil
}

// Search returns up to maxResults hits; 0 means DefaultMaxResults.
func (s *Service) Search(query string, maxResults int) ([]Result, error) {
	if maxResults == 0 {
		maxResults = DefaultMaxResults
	}
	if maxResults < 0 {
		return nil, apperrors.Newf(apperrors.ErrInvalidArgument, "searcher.Service.Search", "maxResults must not be negative, got %d", maxResults)
	}
	scored, err := s.searcher.SearchScored(query, maxResults)
	if err != nil {
		return nil, err
	}
	results := make([]Result, 0, len(scored))
	for _, d := range scored {
		doc, ok := s.lookup[d.DocID]
		if !ok {
			continue
		}
		results = append(results, Result{
			DocumentID: d.DocID,
			Score:      d.Score,
			Document:   doc,
		})
	}
	return results, nil
}

// Searcher exposes the underlying ID searcher.
func (s *Service) Searcher() *Searcher {
	return s.searcher
}
