package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/doquery/doquery/internal/searcher"
	apperrors "github.com/doquery/doquery/pkg/errors"
	"github.com/doquery/doquery/pkg/metrics"
)

const demoQuery = "fox over"

func newSearchCmd(a *app) *cobra.Command {
	var (
		limit     int
		asJSON    bool
		scorer    string
		showStats bool
	)
	cmd := &cobra.Command{
		Use:   "search <query> [query...]",
		Short: "Rank documents matching any query term",
		Long: `Runs each query against the corpus and prints the ranked documents.
With --json, one JSON array of results is written per query.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(cmd.Context(), scorer)
			if err != nil {
				return err
			}
			for _, query := range args {
				results, err := e.Search(cmd.Context(), query, a.limit(limit))
				if err != nil {
					return err
				}
				if asJSON {
					if err := writeJSON(cmd, results); err != nil {
						return err
					}
					continue
				}
				renderResults(cmd.OutOrStdout(), query, results)
			}
			if showStats {
				renderQueryStats(cmd.OutOrStdout(), a.analytics.Stats())
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "maximum number of results (0 uses search.defaultLimit)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	cmd.Flags().StringVar(&scorer, "scorer", "", "scoring function: frequency or bm25")
	cmd.Flags().BoolVar(&showStats, "stats", false, "print a summary of the executed queries")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var withMetrics bool
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show index counters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := a.engine(cmd.Context(), "")
			if err != nil {
				return err
			}
			renderStats(cmd.OutOrStdout(), e.Stats())
			if withMetrics {
				if a.registry == nil {
					return apperrors.InvalidArgument("stats", "metrics are disabled in config")
				}
				return metrics.Dump(a.registry, cmd.OutOrStdout())
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withMetrics, "metrics", false, "also print collected metrics")
	return cmd
}

func newTermsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "terms <text>",
		Short: "Show postings for the analyzed terms of text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(cmd.Context(), "")
			if err != nil {
				return err
			}
			entries, err := e.Postings(args[0])
			if err != nil {
				return err
			}
			renderPostings(cmd.OutOrStdout(), entries)
			return nil
		},
	}
}

func newDocCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "doc <id>",
		Short: "Print a document's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := a.engine(cmd.Context(), "")
			if err != nil {
				return err
			}
			doc, ok, err := e.Document(args[0])
			if err != nil {
				return err
			}
			if !ok {
				return apperrors.Newf(apperrors.ErrNotFound, "doc", "no document with id %q", args[0])
			}
			renderDocument(cmd.OutOrStdout(), doc)
			return nil
		},
	}
}

func newDemoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "demo",
		Short: `Index the sample documents and query "fox over"`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a.cfg.Corpus.Paths = nil
			e, err := a.engine(cmd.Context(), "")
			if err != nil {
				return err
			}
			for _, doc := range e.AllDocuments() {
				renderDocument(cmd.OutOrStdout(), doc)
			}
			results, err := e.Search(cmd.Context(), demoQuery, searcher.DefaultMaxResults)
			if err != nil {
				return err
			}
			renderResults(cmd.OutOrStdout(), demoQuery, results)
			return nil
		},
	}
}

type jsonField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type jsonResult struct {
	DocumentID string      `json:"document_id"`
	Score      float64     `json:"score"`
	Fields     []jsonField `json:"fields"`
}

// writeJSON writes one JSON array of results; fields keep document order.
func writeJSON(cmd *cobra.Command, results []searcher.Result) error {
	out := make([]jsonResult, 0, len(results))
	for _, r := range results {
		fields := make([]jsonField, 0, r.Document.Len())
		for _, f := range r.Document.Fields() {
			fields = append(fields, jsonField{Name: f.Name, Value: f.Value.String()})
		}
		out = append(out, jsonResult{DocumentID: r.DocumentID, Score: r.Score, Fields: fields})
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	return nil
}
