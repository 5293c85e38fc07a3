package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"NewsAnalyst/internal/config"
	"NewsAnalyst/internal/domain"
	"NewsAnalyst/internal/infrastructure/extract"
	"NewsAnalyst/internal/infrastructure/llm"
	"NewsAnalyst/internal/infrastructure/probe"
	infrasearch "NewsAnalyst/internal/infrastructure/search"
	"NewsAnalyst/internal/logging"
	"NewsAnalyst/internal/ports"
	"NewsAnalyst/internal/search"
	"NewsAnalyst/internal/usecase"
)

// Application wires configs to the pipeline and lifecycle orchestration.
type Application struct {
	cfg      config.Config
	pipeline *usecase.Pipeline
}

// New builds a runnable application instance. Returns an error when the
// configured search backend is unknown, surfacing the configuration problem
// before any pipeline run.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	registry := search.NewRegistry()
	registry.Register(infrasearch.NewDuckDuckGo(nil))
	registry.Register(infrasearch.NewGoogleCSE(cfg.Search.GoogleAPIKey, cfg.Search.GoogleCSEID, nil))
	registry.Register(infrasearch.NewNewsAPI(cfg.Search.NewsAPIKey, cfg.Search.DaysBack, nil))

	backend, err := registry.Resolve(cfg.Search.Backend)
	if err != nil {
		return nil, fmt.Errorf("resolve search backend: %w", err)
	}

	client := llm.NewClient(cfg.LLM)

	var enhancer ports.QueryEnhancer
	var distiller ports.Distiller
	var synthesizer ports.ReportSynthesizer
	if cfg.LLM.APIKey != "" {
		enhancer = llm.NewEnhancer(client, cfg.LLM.EnhancerModel, baseLogger.With("component", "enhancer"))
		synthesizer = llm.NewSynthesizer(client, cfg.LLM.AnalystModel)
		if !cfg.Pipeline.SkipDistillation {
			distiller = llm.NewDistiller(client, cfg.LLM.AnalystModel)
		}
	}

	extractor := extract.NewExtractor(&http.Client{Timeout: cfg.Pipeline.FetchTimeout}, cfg.Pipeline.ContentLimit)
	prober := probe.NewProber(&http.Client{Timeout: cfg.Pipeline.ProbeTimeout})

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Enhancer:    enhancer,
		Backend:     backend,
		Extractor:   extractor,
		Prober:      prober,
		Distiller:   distiller,
		Synthesizer: synthesizer,
		MaxResults:  cfg.Search.MaxResults,
		FetchDelay:  cfg.Pipeline.FetchDelay,
		Logger:      baseLogger.With("component", "pipeline"),
	})

	return &Application{cfg: cfg, pipeline: pipeline}, nil
}

// Run executes a single query-to-report pipeline pass.
func (a *Application) Run(ctx context.Context, rawQuery, analysisQuery string) (domain.RunResult, error) {
	return a.pipeline.Run(ctx, rawQuery, analysisQuery)
}
