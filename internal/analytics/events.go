// Package analytics keeps an in-process log of executed searches and
// summarizes it: query counts, zero-result queries and latency percentiles.
package analytics

import "time"

// SearchEvent describes one completed or rejected search.
type SearchEvent struct {
	QueryID   string        `json:"query_id"`
	Query     string        `json:"query"`
	Returned  int           `json:"returned"`
	Latency   time.Duration `json:"latency"`
	Shared    bool          `json:"shared"`
	Failed    bool          `json:"failed"`
	Timestamp time.Time     `json:"timestamp"`
}
