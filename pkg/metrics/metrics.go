// Package metrics defines the Prometheus collectors used by the index engine
// and the search path, and renders gathered samples for the CLI.
package metrics

import (
	"fmt"
	"io"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/common/expfmt"
)

// Result types recorded in SearchQueriesTotal.
const (
	ResultHit        = "hit"
	ResultZeroResult = "zero_result"
	ResultError      = "error"
)

// Metrics holds all Prometheus collectors for doquery.
type Metrics struct {
	DocsIndexedTotal   prometheus.Counter
	DocsRemovedTotal   prometheus.Counter
	TermsIndexedTotal  prometheus.Counter
	SearchQueriesTotal *prometheus.CounterVec
	SearchLatency      prometheus.Histogram
	SearchResultsCount prometheus.Histogram
	IndexDocuments     prometheus.Gauge
	IndexUniqueTerms   prometheus.Gauge
	IndexTotalTerms    prometheus.Gauge
}

// New creates all collectors and registers them with reg. A nil reg creates
// unregistered collectors.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		DocsIndexedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "doquery_documents_indexed_total",
			Help: "Total documents indexed, including re-indexed documents.",
		}),
		DocsRemovedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "doquery_documents_removed_total",
			Help: "Total documents removed from the index.",
		}),
		TermsIndexedTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "doquery_terms_indexed_total",
			Help: "Total term occurrences recorded by add operations.",
		}),
		SearchQueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "doquery_search_queries_total",
			Help: "Total search queries by result type (hit, zero_result, error).",
		}, []string{"result_type"}),
		SearchLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "doquery_search_latency_seconds",
			Help:    "Search latency in seconds.",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		SearchResultsCount: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "doquery_search_results_count",
			Help:    "Number of results returned per search query.",
			Buckets: []float64{0, 1, 5, 10, 25, 50, 100},
		}),
		IndexDocuments: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doquery_index_documents",
			Help: "Documents currently held by the index.",
		}),
		IndexUniqueTerms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doquery_index_unique_terms",
			Help: "Distinct terms currently held by the index.",
		}),
		IndexTotalTerms: factory.NewGauge(prometheus.GaugeOpts{
			Name: "doquery_index_total_terms",
			Help: "Term occurrences currently held by the index.",
		}),
	}
}

// SetIndexSize updates the index gauges.
func (m *Metrics) SetIndexSize(documents, uniqueTerms, totalTerms int) {
	if m == nil {
		return
	}
	m.IndexDocuments.Set(float64(documents))
	m.IndexUniqueTerms.Set(float64(uniqueTerms))
	m.IndexTotalTerms.Set(float64(totalTerms))
}

// ObserveSearch records one completed query.
func (m *Metrics) ObserveSearch(seconds float64, results int, err error) {
	if m == nil {
		return
	}
	resultType := ResultHit
	switch {
	case err != nil:
		resultType = ResultError
	case results == 0:
		resultType = ResultZeroResult
	}
	m.SearchQueriesTotal.WithLabelValues(resultType).Inc()
	if err != nil {
		return
	}
	m.SearchLatency.Observe(seconds)
	m.SearchResultsCount.Observe(float64(results))
}

// Dump writes the gathered samples in the Prometheus text exposition format.
func Dump(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gathering metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("writing metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
