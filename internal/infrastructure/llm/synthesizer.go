package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

// Synthesizer aggregates all distilled documents into one markdown report
// with a single analyst-tier model call. The report object is always
// returned: a failed call yields an explanatory error body, never an absent
// report.
type Synthesizer struct {
	client ports.CompletionClient
	model  string
	now    func() time.Time
}

var _ ports.ReportSynthesizer = (*Synthesizer)(nil)

// NewSynthesizer wires the completion client and the analyst model tier.
func NewSynthesizer(client ports.CompletionClient, model string) *Synthesizer {
	return &Synthesizer{client: client, model: model, now: time.Now}
}

// Synthesize concatenates all entries with source and date headers and
// issues the final report call.
func (s *Synthesizer) Synthesize(ctx context.Context, distilled []domain.DistilledDocument, analysisQuery string) domain.Report {
	report := domain.Report{
		Query:       analysisQuery,
		GeneratedAt: s.now(),
	}

	body, err := s.client.Complete(ctx, ports.CompletionRequest{
		System:      synthesizerSystemPrompt,
		Prompt:      synthesizerPrompt(distilled, analysisQuery),
		Model:       s.model,
		MaxTokens:   4000,
		Temperature: 0.5,
	})
	if err != nil {
		report.Status = domain.ReportFailed
		report.Body = fmt.Sprintf("Error in report generation: %v", err)
		return report
	}
	if strings.TrimSpace(body) == "" {
		report.Status = domain.ReportFailed
		report.Body = "Error in report generation: model returned an empty report"
		return report
	}

	report.Status = domain.ReportGenerated
	report.Body = body
	return report
}
