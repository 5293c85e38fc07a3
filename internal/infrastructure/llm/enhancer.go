package llm

import (
	"context"
	"log/slog"
	"strings"

	"NewsAnalyst/internal/ports"
)

// Enhancer rewrites a raw query into a search-optimized one with a single
// lightweight-tier model call. Enhancement is strictly best-effort: any
// model failure falls back to the raw query.
type Enhancer struct {
	client ports.CompletionClient
	model  string
	logger *slog.Logger
}

var _ ports.QueryEnhancer = (*Enhancer)(nil)

// NewEnhancer wires the completion client and the lightweight model tier.
func NewEnhancer(client ports.CompletionClient, model string, logger *slog.Logger) *Enhancer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Enhancer{client: client, model: model, logger: logger}
}

// Enhance returns the rewritten query, or the raw query unchanged on any
// failure.
func (e *Enhancer) Enhance(ctx context.Context, raw string) string {
	if e.client == nil {
		return raw
	}

	enhanced, err := e.client.Complete(ctx, ports.CompletionRequest{
		System:      enhancerSystemPrompt,
		Prompt:      enhancerPrompt(raw),
		Model:       e.model,
		MaxTokens:   100,
		Temperature: 0.3,
	})
	if err != nil {
		e.logger.Warn("query enhancement failed, using raw query", "error", err)
		return raw
	}

	enhanced = strings.TrimSpace(enhanced)
	if enhanced == "" {
		return raw
	}
	return enhanced
}
