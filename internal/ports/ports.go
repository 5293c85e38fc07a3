package ports

import (
	"context"

	"NewsAnalyst/internal/domain"
)

// QueryEnhancer rewrites a raw query into a search-optimized one. It never
// fails: on any model error it returns the raw query unchanged.
type QueryEnhancer interface {
	Enhance(ctx context.Context, raw string) string
}

// SearchBackend resolves a query to an ordered sequence of candidate URLs,
// capped at maxResults. Implementations are interchangeable and selected by
// configuration.
type SearchBackend interface {
	Name() string
	Search(ctx context.Context, query string, maxResults int) ([]domain.CandidateURL, error)
}

// ContentExtractor fetches one URL and returns a Document with cleaned text
// or a classified fetch error. It never returns an error: failures are
// captured in the document's status.
type ContentExtractor interface {
	Extract(ctx context.Context, candidate domain.CandidateURL) domain.Document
}

// AccessibilityProber runs the lightweight reachability check, independent
// of content extraction. Uncertainty excludes: probe errors read as Denied.
type AccessibilityProber interface {
	Probe(ctx context.Context, url string) domain.AccessibilityVerdict
}

// Distiller extracts facts from one usable document via a model call.
// Failures are captured inside the returned document, never raised.
type Distiller interface {
	Distill(ctx context.Context, doc domain.Document, analysisQuery string) domain.DistilledDocument
}

// ReportSynthesizer aggregates all distilled documents into one markdown
// report. The report is always returned; a failed call yields an error body.
type ReportSynthesizer interface {
	Synthesize(ctx context.Context, distilled []domain.DistilledDocument, analysisQuery string) domain.Report
}

// CompletionRequest is one chat-completion call to the model service.
type CompletionRequest struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// CompletionClient pushes prompts to an OpenAI-compatible completion API.
// No retries: a failed call degrades that call's output only.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
