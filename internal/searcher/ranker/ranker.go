package ranker

import (
	"math"
	"sort"

	"github.com/doquery/doquery/internal/indexer/index"
)

const (
	k1 = 1.2
	b  = 0.75
)

type ScoredDoc struct {
	DocID string  `json:"doc_id"`
	Score float64 `json:"score"`
}

// CorpusStats exposes the index counters some scorers need.
type CorpusStats interface {
	DocumentCount() int
	TotalTermCount() int
	DocumentLength(docID string) int
}

// Scorer returns the contribution of one posting of one query term. A
// document's score is the sum of its contributions over all query terms.
type Scorer interface {
	Score(posting index.Posting, docFreq int, stats CorpusStats) float64
}

// Frequency scores a document by the number of query-term occurrences in it.
type Frequency struct{}

func (Frequency) Score(posting index.Posting, _ int, _ CorpusStats) float64 {
	return float64(posting.Frequency())
}

// BM25 is the Okapi BM25 scorer.
type BM25 struct {
	K1 float64
	B  float64
}

func NewBM25() BM25 {
	return BM25{K1: k1, B: b}
}

func (s BM25) Score(posting index.Posting, docFreq int, stats CorpusStats) float64 {
	if stats == nil {
		return 0
	}
	totalDocs := stats.DocumentCount()
	if totalDocs == 0 {
		return 0
	}
	avgDocLength := float64(stats.TotalTermCount()) / float64(totalDocs)
	idf := computeIDF(int64(totalDocs), int64(docFreq))
	tfNorm := s.computeTFNorm(
		float64(posting.Frequency()),
		float64(stats.DocumentLength(posting.DocID)),
		avgDocLength,
	)
	return idf * tfNorm
}

// Rank scores every document appearing under any term and returns the top
// limit documents by score descending, ties broken by DocID ascending. A
// non-positive limit returns all documents.
func Rank(
	postingsPerTerm map[string]index.PostingList,
	scorer Scorer,
	stats CorpusStats,
	limit int,
) []ScoredDoc {
	if scorer == nil {
		scorer = Frequency{}
	}
	scores := make(map[string]float64)
	for _, postings := range postingsPerTerm {
		docFreq := len(postings)
		for _, posting := range postings {
			scores[posting.DocID] += scorer.Score(posting, docFreq, stats)
		}
	}
	result := make([]ScoredDoc, 0, len(scores))
	for docID, score := range scores {
		result = append(result, ScoredDoc{
			DocID: docID,
			Score: math.Round(score*10000) / 10000,
		})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Score != result[j].Score {
			return result[i].Score > result[j].Score
		}
		return result[i].DocID < result[j].DocID
	})
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result
}

func computeIDF(totalDocs int64, docFreq int64) float64 {
	numerator := float64(totalDocs) - float64(docFreq)
	denominator := float64(docFreq) + 0.5
	return math.Log(numerator/denominator + 1)
}

func (s BM25) computeTFNorm(termFreq float64, docLength float64, avgDocLength float64) float64 {
	if avgDocLength == 0 {
		return 0
	}
	lengthRatio := docLength / avgDocLength
	denominator := termFreq + s.K1*(1-s.B+s.B*lengthRatio)
	return (termFreq * (s.K1 + 1)) / denominator
}
