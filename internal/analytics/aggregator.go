package analytics

import (
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/doquery/doquery/pkg/logger"
)

// maxLatencySamples bounds the latency window used for percentiles.
const maxLatencySamples = 10000

// topQueries is the length of the ranked query lists in Stats.
const topQueries = 10

type AggregatedStats struct {
	TotalSearches     int64        `json:"total_searches"`
	FailedSearches    int64        `json:"failed_searches"`
	SharedSearches    int64        `json:"shared_searches"`
	ZeroResultCount   int64        `json:"zero_result_count"`
	AvgLatencyMs      float64      `json:"avg_latency_ms"`
	P50LatencyMs      float64      `json:"p50_latency_ms"`
	P95LatencyMs      float64      `json:"p95_latency_ms"`
	P99LatencyMs      float64      `json:"p99_latency_ms"`
	TopQueries        []QueryCount `json:"top_queries"`
	ZeroResultQueries []QueryCount `json:"zero_result_queries"`
}

type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Aggregator accumulates SearchEvents. It is safe for concurrent use; a nil
// *Aggregator ignores events.
type Aggregator struct {
	mu                sync.Mutex
	stats             AggregatedStats
	latencies         []time.Duration
	next              int
	queryCounts       map[string]int64
	zeroResultQueries map[string]int64
	logger            *slog.Logger
}

func NewAggregator() *Aggregator {
	return &Aggregator{
		latencies:         make([]time.Duration, 0, 64),
		queryCounts:       make(map[string]int64),
		zeroResultQueries: make(map[string]int64),
		logger:            logger.WithComponent("analytics"),
	}
}

// Record adds one event. Queries are grouped case-insensitively after
// collapsing whitespace.
func (a *Aggregator) Record(event SearchEvent) {
	if a == nil {
		return
	}
	query := normalize(event.Query)

	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.TotalSearches++
	if event.Failed {
		a.stats.FailedSearches++
		return
	}
	if event.Shared {
		a.stats.SharedSearches++
	}
	a.queryCounts[query]++
	if event.Returned == 0 {
		a.stats.ZeroResultCount++
		a.zeroResultQueries[query]++
	}
	if len(a.latencies) < maxLatencySamples {
		a.latencies = append(a.latencies, event.Latency)
	} else {
		a.latencies[a.next] = event.Latency
		a.next = (a.next + 1) % maxLatencySamples
	}
	a.logger.Debug("search recorded", "query_id", event.QueryID, "returned", event.Returned)
}

func (a *Aggregator) Stats() AggregatedStats {
	if a == nil {
		return AggregatedStats{}
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	stats := a.stats
	if len(a.latencies) > 0 {
		sorted := make([]time.Duration, len(a.latencies))
		copy(sorted, a.latencies)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

		var sum time.Duration
		for _, l := range sorted {
			sum += l
		}
		stats.AvgLatencyMs = millis(sum) / float64(len(sorted))
		stats.P50LatencyMs = millis(percentile(sorted, 50))
		stats.P95LatencyMs = millis(percentile(sorted, 95))
		stats.P99LatencyMs = millis(percentile(sorted, 99))
	}
	stats.TopQueries = topN(a.queryCounts, topQueries)
	stats.ZeroResultQueries = topN(a.zeroResultQueries, topQueries)
	return stats
}

func normalize(query string) string {
	return strings.ToLower(strings.Join(strings.Fields(query), " "))
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func percentile(sorted []time.Duration, pct int) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	idx := (pct * len(sorted)) / 100
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// topN orders by count desc, then query asc.
func topN(counts map[string]int64, n int) []QueryCount {
	result := make([]QueryCount, 0, len(counts))
	for query, count := range counts {
		result = append(result, QueryCount{Query: query, Count: count})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return result[i].Query < result[j].Query
	})
	if len(result) > n {
		result = result[:n]
	}
	return result
}
