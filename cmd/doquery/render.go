package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/doquery/doquery/internal/analytics"
	"github.com/doquery/doquery/internal/document"
	"github.com/doquery/doquery/internal/indexer"
	"github.com/doquery/doquery/internal/indexer/index"
	"github.com/doquery/doquery/internal/searcher"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7C3AED"))
	idStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#06B6D4"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6C7086"))
	scoreStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#A6E3A1"))
)

// snippetWidth bounds the first-field preview shown next to each hit.
const snippetWidth = 60

func renderResults(w io.Writer, query string, results []searcher.Result) {
	fmt.Fprintln(w, headerStyle.Render(fmt.Sprintf("Results for %q", query)))
	if len(results) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("  no matching documents"))
		return
	}
	for i, r := range results {
		line := fmt.Sprintf("  [%d] %s %s", i+1,
			idStyle.Render(r.DocumentID),
			scoreStyle.Render("("+strconv.FormatFloat(r.Score, 'f', -1, 64)+")"))
		if snippet := preview(r.Document); snippet != "" {
			line += " " + mutedStyle.Render(snippet)
		}
		fmt.Fprintln(w, line)
	}
}

func preview(doc *document.Document) string {
	fields := doc.Fields()
	if len(fields) == 0 {
		return ""
	}
	text := strings.Join(strings.Fields(fields[0].Value.String()), " ")
	if r := []rune(text); len(r) > snippetWidth {
		text = string(r[:snippetWidth-3]) + "..."
	}
	return text
}

func renderStats(w io.Writer, s indexer.Stats) {
	fmt.Fprintln(w, headerStyle.Render("Index"))
	fmt.Fprintf(w, "  documents     %d\n", s.Documents)
	fmt.Fprintf(w, "  unique terms  %d\n", s.UniqueTerms)
	fmt.Fprintf(w, "  total terms   %d\n", s.TotalTerms)
}

func renderPostings(w io.Writer, entries []index.TermEntry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, mutedStyle.Render("no indexable terms"))
		return
	}
	for _, entry := range entries {
		fmt.Fprintf(w, "%s %s\n", headerStyle.Render(entry.Term),
			mutedStyle.Render(fmt.Sprintf("(%d documents)", len(entry.Postings))))
		for _, p := range entry.Postings {
			fmt.Fprintf(w, "  %s %v\n", idStyle.Render(p.DocID), p.Positions)
		}
	}
}

func renderDocument(w io.Writer, doc *document.Document) {
	fmt.Fprintln(w, idStyle.Render(doc.String()))
	for _, f := range doc.Fields() {
		fmt.Fprintf(w, "  %s: %s\n", mutedStyle.Render(f.Name), f.Value.String())
	}
}

func renderQueryStats(w io.Writer, s analytics.AggregatedStats) {
	fmt.Fprintln(w, headerStyle.Render("Queries"))
	fmt.Fprintf(w, "  searches      %d\n", s.TotalSearches)
	fmt.Fprintf(w, "  zero results  %d\n", s.ZeroResultCount)
	fmt.Fprintf(w, "  latency ms    avg %.3f  p50 %.3f  p95 %.3f  p99 %.3f\n",
		s.AvgLatencyMs, s.P50LatencyMs, s.P95LatencyMs, s.P99LatencyMs)
	for _, q := range s.TopQueries {
		fmt.Fprintf(w, "  %s %s\n", idStyle.Render(fmt.Sprintf("%q", q.Query)), mutedStyle.Render(fmt.Sprintf("x%d", q.Count)))
	}
}
