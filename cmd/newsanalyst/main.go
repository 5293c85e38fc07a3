package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"NewsAnalyst/internal/app"
	"NewsAnalyst/internal/config"
	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/logging"
	"NewsAnalyst/internal/usecase"
)

func main() {
	query := flag.String("query", "", "search query (required)")
	analysis := flag.String("analysis", "", "analysis intent for the report; defaults to the search query")
	flag.Parse()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if *query == "" {
		fmt.Fprintln(os.Stderr, "usage: newsanalyst -query \"...\" [-analysis \"...\"]")
		os.Exit(2)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("application setup failed", "error", err)
		os.Exit(1)
	}

	result, err := application.Run(context.Background(), *query, *analysis)
	if errors.Is(err, usecase.ErrNoResults) {
		fmt.Println("No results found for the query.")
		return
	}
	if err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}

	fmt.Printf("Found %d results total, %d accessible, %d distilled\n",
		result.Summary.TotalCandidates,
		result.Summary.Usable,
		result.Summary.Distilled)
	fmt.Println()
	fmt.Println(result.Report.Body)

	if cfg.Output.ResultsPath != "" {
		if err := writeResults(cfg.Output.ResultsPath, result); err != nil {
			logger.Warn("cannot save results", "path", cfg.Output.ResultsPath, "error", err)
		}
	}
}

// writeResults saves the per-run document set as JSON next to the report,
// mirroring what the presentation layer receives.
func writeResults(path string, result domain.RunResult) error {
	type item struct {
		URL             string `json:"url"`
		PublicationDate string `json:"publication_date,omitempty"`
		Content         string `json:"content"`
		Status          string `json:"status"`
		Accessibility   string `json:"accessibility"`
	}

	items := make([]item, 0, len(result.Documents))
	for _, doc := range result.Documents {
		entry := item{
			URL:           doc.URL,
			Content:       doc.Content,
			Status:        string(doc.Status),
			Accessibility: string(doc.Accessibility),
		}
		if !doc.PublishedAt.IsZero() {
			entry.PublicationDate = doc.PublishedAt.Format("2006-01-02")
		}
		items = append(items, entry)
	}

	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	return nil
}
