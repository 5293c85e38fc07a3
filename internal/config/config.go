package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	configPathEnv    = "NEWS_ANALYST_CONFIG"
	openAIAPIKeyEnv  = "OPENAI_API_KEY"
	openAIModelEnv   = "OPENAI_MODEL"
	googleAPIKeyEnv  = "GOOGLE_API_KEY"
	googleCSEIDEnv   = "GOOGLE_CSE_ID"
	newsAPIKeyEnv    = "NEWS_API_KEY"
	searchBackendEnv = "SEARCH_BACKEND"
)

// Config holds high-level settings required across the application.
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Search   SearchConfig   `yaml:"search"`
	LLM      LLMConfig      `yaml:"llm"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Output   OutputConfig   `yaml:"output"`
}

// LoggingConfig controls console log verbosity.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// SearchConfig selects and parameterizes the search backend.
type SearchConfig struct {
	Backend      string `yaml:"backend"`
	MaxResults   int    `yaml:"maxResults"`
	DaysBack     int    `yaml:"daysBack"`
	GoogleAPIKey string `yaml:"googleApiKey"`
	GoogleCSEID  string `yaml:"googleCseId"`
	NewsAPIKey   string `yaml:"newsApiKey"`
}

// LLMConfig defines how to contact the OpenAI-compatible completion API.
// EnhancerModel is the lightweight tier used for query rewriting;
// AnalystModel is the larger-context tier used for distillation and the
// final report.
type LLMConfig struct {
	Endpoint      string `yaml:"endpoint"`
	APIKey        string `yaml:"apiKey"`
	EnhancerModel string `yaml:"enhancerModel"`
	AnalystModel  string `yaml:"analystModel"`
}

// PipelineConfig bounds the network-facing stages of a run.
// SkipDistillation switches to the simpler variant that synthesizes the
// report from raw cleaned content instead of per-document facts.
type PipelineConfig struct {
	FetchTimeout     time.Duration `yaml:"fetchTimeout"`
	ProbeTimeout     time.Duration `yaml:"probeTimeout"`
	FetchDelay       time.Duration `yaml:"fetchDelay"`
	ContentLimit     int           `yaml:"contentLimit"`
	SkipDistillation bool          `yaml:"skipDistillation"`
}

// OutputConfig describes where the per-run artifacts are written.
type OutputConfig struct {
	ResultsPath string `yaml:"resultsPath"`
}

// Load reads YAML configuration (if present) and applies environment overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	cfg.clampBounds()

	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(openAIAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}

	if v := os.Getenv(openAIModelEnv); v != "" {
		c.LLM.AnalystModel = v
	}

	if v := os.Getenv(googleAPIKeyEnv); v != "" {
		c.Search.GoogleAPIKey = v
	}

	if v := os.Getenv(googleCSEIDEnv); v != "" {
		c.Search.GoogleCSEID = v
	}

	if v := os.Getenv(newsAPIKeyEnv); v != "" {
		c.Search.NewsAPIKey = v
	}

	if v := os.Getenv(searchBackendEnv); v != "" {
		c.Search.Backend = v
	}
}

// clampBounds keeps the result cap inside the supported 2..15 window and
// restores defaults for values the file zeroed out.
func (c *Config) clampBounds() {
	def := defaultConfig()

	if c.Search.MaxResults < 2 {
		c.Search.MaxResults = def.Search.MaxResults
	}
	if c.Search.MaxResults > 15 {
		c.Search.MaxResults = 15
	}
	if c.Search.DaysBack <= 0 {
		c.Search.DaysBack = def.Search.DaysBack
	}
	if c.Pipeline.FetchTimeout <= 0 {
		c.Pipeline.FetchTimeout = def.Pipeline.FetchTimeout
	}
	if c.Pipeline.ProbeTimeout <= 0 {
		c.Pipeline.ProbeTimeout = def.Pipeline.ProbeTimeout
	}
	if c.Pipeline.FetchDelay <= 0 {
		c.Pipeline.FetchDelay = def.Pipeline.FetchDelay
	}
	if c.Pipeline.ContentLimit <= 0 {
		c.Pipeline.ContentLimit = def.Pipeline.ContentLimit
	}
}

func mergeConfig(base, override Config) Config {
	if override.Logging.Level != "" {
		base.Logging.Level = override.Logging.Level
	}

	if override.Search.Backend != "" {
		base.Search.Backend = override.Search.Backend
	}
	if override.Search.MaxResults != 0 {
		base.Search.MaxResults = override.Search.MaxResults
	}
	if override.Search.DaysBack != 0 {
		base.Search.DaysBack = override.Search.DaysBack
	}
	if override.Search.GoogleAPIKey != "" {
		base.Search.GoogleAPIKey = override.Search.GoogleAPIKey
	}
	if override.Search.GoogleCSEID != "" {
		base.Search.GoogleCSEID = override.Search.GoogleCSEID
	}
	if override.Search.NewsAPIKey != "" {
		base.Search.NewsAPIKey = override.Search.NewsAPIKey
	}

	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.EnhancerModel != "" {
		base.LLM.EnhancerModel = override.LLM.EnhancerModel
	}
	if override.LLM.AnalystModel != "" {
		base.LLM.AnalystModel = override.LLM.AnalystModel
	}

	if override.Pipeline.FetchTimeout != 0 {
		base.Pipeline.FetchTimeout = override.Pipeline.FetchTimeout
	}
	if override.Pipeline.ProbeTimeout != 0 {
		base.Pipeline.ProbeTimeout = override.Pipeline.ProbeTimeout
	}
	if override.Pipeline.FetchDelay != 0 {
		base.Pipeline.FetchDelay = override.Pipeline.FetchDelay
	}
	if override.Pipeline.ContentLimit != 0 {
		base.Pipeline.ContentLimit = override.Pipeline.ContentLimit
	}
	base.Pipeline.SkipDistillation = base.Pipeline.SkipDistillation || override.Pipeline.SkipDistillation

	if override.Output.ResultsPath != "" {
		base.Output.ResultsPath = override.Output.ResultsPath
	}

	return base
}

func defaultConfig() Config {
	return Config{
		Logging: LoggingConfig{Level: "info"},
		Search: SearchConfig{
			Backend:    "duckduckgo",
			MaxResults: 2,
			DaysBack:   7,
		},
		LLM: LLMConfig{
			Endpoint:      "https://api.openai.com/v1/chat/completions",
			EnhancerModel: "gpt-3.5-turbo",
			AnalystModel:  "gpt-4-turbo",
		},
		Pipeline: PipelineConfig{
			FetchTimeout: 10 * time.Second,
			ProbeTimeout: 5 * time.Second,
			FetchDelay:   time.Second,
			ContentLimit: 10000,
		},
		Output: OutputConfig{ResultsPath: "search_results.json"},
	}
}
