package analytics

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregator_Stats(t *testing.T) {
	a := NewAggregator()
	a.Record(SearchEvent{Query: "fox over", Returned: 4, Latency: 2 * time.Millisecond})
	a.Record(SearchEvent{Query: "  Fox   OVER ", Returned: 4, Latency: 4 * time.Millisecond, Shared: true})
	a.Record(SearchEvent{Query: "unicorn", Returned: 0, Latency: 6 * time.Millisecond})
	a.Record(SearchEvent{Query: "", Failed: true})

	stats := a.Stats()
	assert.Equal(t, int64(4), stats.TotalSearches)
	assert.Equal(t, int64(1), stats.FailedSearches)
	assert.Equal(t, int64(1), stats.SharedSearches)
	assert.Equal(t, int64(1), stats.ZeroResultCount)
	assert.InDelta(t, 4.0, stats.AvgLatencyMs, 1e-9)
	assert.Equal(t, 4.0, stats.P50LatencyMs)
	assert.Equal(t, 6.0, stats.P99LatencyMs)

	assert.Equal(t, []QueryCount{{Query: "fox over", Count: 2}, {Query: "unicorn", Count: 1}}, stats.TopQueries)
	assert.Equal(t, []QueryCount{{Query: "unicorn", Count: 1}}, stats.ZeroResultQueries)
}

func TestAggregator_TopQueriesTieBreak(t *testing.T) {
	a := NewAggregator()
	for _, q := range []string{"b", "a", "c", "a", "b"} {
		a.Record(SearchEvent{Query: q, Returned: 1})
	}
	assert.Equal(t, []QueryCount{
		{Query: "a", Count: 2},
		{Query: "b", Count: 2},
		{Query: "c", Count: 1},
	}, a.Stats().TopQueries)
}

func TestAggregator_LatencyWindowIsBounded(t *testing.T) {
	a := NewAggregator()
	for i := 0; i < maxLatencySamples+50; i++ {
		a.Record(SearchEvent{Query: "q", Returned: 1, Latency: time.Millisecond})
	}
	a.mu.Lock()
	n := len(a.latencies)
	a.mu.Unlock()
	assert.Equal(t, maxLatencySamples, n)
	assert.Equal(t, int64(maxLatencySamples+50), a.Stats().TotalSearches)
}

func TestAggregator_Nil(t *testing.T) {
	var a *Aggregator
	a.Record(SearchEvent{Query: "fox"})
	assert.Equal(t, AggregatedStats{}, a.Stats())
}

func TestAggregator_Concurrent(t *testing.T) {
	a := NewAggregator()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				a.Record(SearchEvent{Query: "fox", Returned: j % 2})
			}
		}()
	}
	wg.Wait()
	stats := a.Stats()
	require.Len(t, stats.TopQueries, 1)
	assert.Equal(t, int64(800), stats.TopQueries[0].Count)
	assert.Equal(t, int64(400), stats.ZeroResultCount)
}
