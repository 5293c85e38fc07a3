package llm

import (
	"context"
	"fmt"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

// distillErrorPrefix marks facts that hold an error message instead of
// genuine extractions. Kept distinct so completeness audits can tell the
// two apart; the Status field is the canonical signal.
const distillErrorPrefix = "Error in distillation: "

// Distiller extracts facts, quotes, and statistics from one document with a
// single analyst-tier model call. Failures are recorded in the result, not
// raised: a failed distillation is reported, never silently dropped.
type Distiller struct {
	client ports.CompletionClient
	model  string
}

var _ ports.Distiller = (*Distiller)(nil)

// NewDistiller wires the completion client and the analyst model tier.
func NewDistiller(client ports.CompletionClient, model string) *Distiller {
	return &Distiller{client: client, model: model}
}

// Distill runs the per-document fact extraction.
func (d *Distiller) Distill(ctx context.Context, doc domain.Document, analysisQuery string) domain.DistilledDocument {
	result := domain.DistilledDocument{
		URL:         doc.URL,
		PublishedAt: doc.PublishedAt,
	}

	facts, err := d.client.Complete(ctx, ports.CompletionRequest{
		System:      distillerSystemPrompt,
		Prompt:      distillerPrompt(doc, analysisQuery),
		Model:       d.model,
		MaxTokens:   2000,
		Temperature: 0.3,
	})
	if err != nil {
		result.Status = domain.DistillFailed
		result.Facts = fmt.Sprintf("%s%v", distillErrorPrefix, err)
		return result
	}

	result.Status = domain.Distilled
	result.Facts = facts
	return result
}
