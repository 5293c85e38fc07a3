package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/ports"
)

// ErrNoResults signals that the search backend produced zero candidates.
// It is the only fatal outcome of a run; every downstream failure is
// captured per document and carried forward as data.
var ErrNoResults = errors.New("no search results for query")

// PipelineDeps wires all driven adapters into the orchestration pipeline.
// Enhancer and Distiller may be nil: without an enhancer the raw query is
// searched as-is, and without a distiller raw cleaned content stands in for
// facts at synthesis time.
type PipelineDeps struct {
	Enhancer    ports.QueryEnhancer
	Backend     ports.SearchBackend
	Extractor   ports.ContentExtractor
	Prober      ports.AccessibilityProber
	Distiller   ports.Distiller
	Synthesizer ports.ReportSynthesizer
	MaxResults  int
	FetchDelay  time.Duration
	Logger      *slog.Logger
}

// Pipeline implements the query-to-report workflow: enhance, search,
// extract per URL, filter by accessibility, distill per document,
// synthesize. Documents are processed strictly in backend order.
type Pipeline struct {
	enhancer    ports.QueryEnhancer
	backend     ports.SearchBackend
	extractor   ports.ContentExtractor
	prober      ports.AccessibilityProber
	distiller   ports.Distiller
	synthesizer ports.ReportSynthesizer
	maxResults  int
	fetchDelay  time.Duration
	logger      *slog.Logger
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	maxResults := deps.MaxResults
	if maxResults <= 0 {
		maxResults = 2
	}
	fetchDelay := deps.FetchDelay
	if fetchDelay <= 0 {
		fetchDelay = time.Second
	}
	return &Pipeline{
		enhancer:    deps.Enhancer,
		backend:     deps.Backend,
		extractor:   deps.Extractor,
		prober:      deps.Prober,
		distiller:   deps.Distiller,
		synthesizer: deps.Synthesizer,
		maxResults:  maxResults,
		fetchDelay:  fetchDelay,
		logger:      logger,
	}
}

// Run executes one full pipeline pass for rawQuery. analysisQuery steers
// distillation and synthesis and defaults to rawQuery when empty. The
// returned result is always populated as far as the run progressed; the
// only errors are ErrNoResults, a context error, or an empty raw query.
func (p *Pipeline) Run(ctx context.Context, rawQuery, analysisQuery string) (domain.RunResult, error) {
	result := domain.RunResult{RunID: uuid.NewString()}

	if rawQuery == "" {
		return result, fmt.Errorf("raw query is empty")
	}
	if analysisQuery == "" {
		analysisQuery = rawQuery
	}

	logger := p.logger.With("run_id", result.RunID)

	result.Query = domain.Query{Raw: rawQuery, Enhanced: rawQuery}
	if p.enhancer != nil {
		result.Query.Enhanced = p.enhancer.Enhance(ctx, rawQuery)
	}
	logger.Info("query prepared", "raw", result.Query.Raw, "enhanced", result.Query.Enhanced)

	candidates, err := p.backend.Search(ctx, result.Query.Enhanced, p.maxResults)
	if err != nil {
		logger.Warn("search backend failed", "backend", p.backend.Name(), "error", err)
		candidates = nil
	}
	result.Candidates = candidates
	result.Summary.TotalCandidates = len(candidates)

	if len(candidates) == 0 {
		logger.Info("search produced no candidates", "backend", p.backend.Name())
		return result, ErrNoResults
	}

	if err := p.extractAll(ctx, &result, logger); err != nil {
		return result, err
	}

	p.filterAccessibility(ctx, &result, logger)

	if err := p.distillUsable(ctx, &result, analysisQuery, logger); err != nil {
		return result, err
	}

	result.Report = p.synthesize(ctx, &result, analysisQuery)
	logger.Info("run complete",
		"candidates", result.Summary.TotalCandidates,
		"fetched", result.Summary.Fetched,
		"denied", result.Summary.DeniedByProbe,
		"distilled", result.Summary.Distilled,
		"report_status", result.Report.Status)

	return result, nil
}

// extractAll fetches each candidate in backend order. A rate limiter spaces
// successive fetches by fetchDelay; the first fetch is never delayed and no
// delay trails the last. Each loop iteration is a cancellation seam.
func (p *Pipeline) extractAll(ctx context.Context, result *domain.RunResult, logger *slog.Logger) error {
	limiter := rate.NewLimiter(rate.Every(p.fetchDelay), 1)

	for _, candidate := range result.Candidates {
		if err := limiter.Wait(ctx); err != nil {
			return err
		}

		doc := p.extractor.Extract(ctx, candidate)
		result.Documents = append(result.Documents, doc)

		if doc.Fetched() {
			result.Summary.Fetched++
			logger.Debug("document fetched", "url", doc.URL, "length", len(doc.Content))
		} else {
			result.Summary.FetchFailures++
			logger.Warn("document fetch failed", "url", doc.URL, "kind", doc.ErrorKind, "status_code", doc.HTTPStatusCode)
		}
	}

	return nil
}

// filterAccessibility probes every document independently of its fetch
// status. Both gates (successful GET and a non-denying probe) must pass
// before a document reaches distillation.
func (p *Pipeline) filterAccessibility(ctx context.Context, result *domain.RunResult, logger *slog.Logger) {
	for i := range result.Documents {
		if p.prober == nil {
			result.Documents[i].Accessibility = domain.Accessible
			continue
		}

		verdict := p.prober.Probe(ctx, result.Documents[i].URL)
		result.Documents[i].Accessibility = verdict
		if verdict == domain.Denied {
			result.Summary.DeniedByProbe++
			logger.Info("document denied by probe", "url", result.Documents[i].URL)
		}
	}

	for _, doc := range result.Documents {
		if doc.Usable() {
			result.Summary.Usable++
		}
	}
}

// distillUsable runs fact extraction over documents that passed both gates,
// preserving order. Failed distillations stay in the aggregate. Each loop
// iteration is a cancellation seam.
func (p *Pipeline) distillUsable(ctx context.Context, result *domain.RunResult, analysisQuery string, logger *slog.Logger) error {
	for _, doc := range result.Documents {
		if !doc.Usable() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		distilled := p.distillOne(ctx, doc, analysisQuery)
		result.Distilled = append(result.Distilled, distilled)

		if distilled.Status == domain.Distilled {
			result.Summary.Distilled++
		} else {
			result.Summary.DistillFailures++
			logger.Warn("distillation failed", "url", doc.URL)
		}
	}

	return nil
}

// distillOne delegates to the distiller when one is wired; otherwise the
// cleaned content itself stands in for facts (the non-distilling variant).
func (p *Pipeline) distillOne(ctx context.Context, doc domain.Document, analysisQuery string) domain.DistilledDocument {
	if p.distiller == nil {
		return domain.DistilledDocument{
			URL:         doc.URL,
			PublishedAt: doc.PublishedAt,
			Facts:       doc.Content,
			Status:      domain.Distilled,
		}
	}
	return p.distiller.Distill(ctx, doc, analysisQuery)
}

func (p *Pipeline) synthesize(ctx context.Context, result *domain.RunResult, analysisQuery string) domain.Report {
	if p.synthesizer == nil {
		return domain.Report{
			Query:       analysisQuery,
			Body:        "Error in report generation: no synthesizer configured",
			GeneratedAt: time.Now(),
			Status:      domain.ReportFailed,
		}
	}
	return p.synthesizer.Synthesize(ctx, result.Distilled, analysisQuery)
}
