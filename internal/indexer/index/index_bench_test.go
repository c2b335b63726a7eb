package index

import (
	"fmt"
	"testing"

	"github.com/doquery/doquery/internal/analysis"
	"github.com/doquery/doquery/internal/document"
)

// BenchmarkAddDocument measures per-document insert throughput.
func BenchmarkAddDocument(b *testing.B) {
	idx := New()
	a := analysis.NewSimpleAnalyzer()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := document.MustNew(fmt.Sprintf("doc-%d", i),
			document.F("title", "benchmark title"),
			document.F("body", "this is a benchmark document with several terms for testing the indexing performance"),
		)
		if _, err := idx.AddDocument(doc, a); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkReindex measures upserts over a fixed set of IDs.
func BenchmarkReindex(b *testing.B) {
	idx := New()
	a := analysis.NewSimpleAnalyzer()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc := document.MustNew(fmt.Sprintf("doc-%d", i%100),
			document.F("body", "search engine with inverted indexing and query processing"),
		)
		if _, err := idx.AddDocument(doc, a); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkDocumentsForTerm measures single-term lookup over 10 000 documents.
func BenchmarkDocumentsForTerm(b *testing.B) {
	idx := New()
	a := analysis.NewSimpleAnalyzer()
	for i := 0; i < 10000; i++ {
		doc := document.MustNew(fmt.Sprintf("doc-%d", i),
			document.F("body", "search engine with inverted indexing and query processing"),
		)
		if _, err := idx.AddDocument(doc, a); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := idx.DocumentsForTerm("search"); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkSnapshot measures the cost of listing every term.
func BenchmarkSnapshot(b *testing.B) {
	idx := New()
	a := analysis.NewSimpleAnalyzer()
	for i := 0; i < 5000; i++ {
		doc := document.MustNew(fmt.Sprintf("doc-%d", i),
			document.F("body", fmt.Sprintf("snapshot benchmark term%d with shared words", i%200)),
		)
		if _, err := idx.AddDocument(doc, a); err != nil {
			b.Fatal(err)
		}
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = idx.Snapshot()
	}
}
