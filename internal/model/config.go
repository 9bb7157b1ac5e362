package model

import "time"

// Config is the full runtime configuration.
// Hierarchy (highest to lowest priority): CLI flags, EXORANK_* environment
// variables, config file, defaults.
type Config struct {
	HTTP      HTTPConfig      `json:"http" yaml:"http"`
	Cache     CacheConfig     `json:"cache" yaml:"cache"`
	Reference ReferenceConfig `json:"reference" yaml:"reference"`
	Output    OutputConfig    `json:"output" yaml:"output"`
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring"`
	LLM       LLMConfig       `json:"llm" yaml:"llm"`
}

// HTTPConfig controls the catalog and reference-list fetches.
type HTTPConfig struct {
	Timeout      time.Duration `json:"timeout" yaml:"timeout"`
	UserAgent    string        `json:"user_agent" yaml:"user_agent"`
	MaxBodyBytes int64         `json:"max_body_bytes" yaml:"max_body_bytes"`
	RatePerHost  float64       `json:"rate_per_host" yaml:"rate_per_host"` // requests per second
}

// CacheConfig controls caching of downloaded reference payloads.
type CacheConfig struct {
	Enabled   bool          `json:"enabled" yaml:"enabled"`
	Dir       string        `json:"dir" yaml:"dir"`
	MemoryTTL time.Duration `json:"memory_ttl" yaml:"memory_ttl"`
	DiskTTL   time.Duration `json:"disk_ttl" yaml:"disk_ttl"`
}

// ReferenceConfig locates the authoritative habitable-zone catalog.
type ReferenceConfig struct {
	URL       string `json:"url" yaml:"url"`
	LocalPath string `json:"local_path" yaml:"local_path"`
}

// OutputConfig controls the exported artifacts.
type OutputConfig struct {
	Dir     string `json:"dir" yaml:"dir"`
	TopN    int    `json:"top_n" yaml:"top_n"`
	Verbose bool   `json:"verbose" yaml:"verbose"`
}

// ScoringConfig selects the scoring profile and worker parallelism.
type ScoringConfig struct {
	Workers int `json:"workers" yaml:"workers"` // 0 means single-threaded
}

// LLMConfig controls the optional narrative summary of the validation
// report. Disabled by default; never affects scores or check statuses.
type LLMConfig struct {
	Provider  string `json:"provider" yaml:"provider"` // "" disables
	Model     string `json:"model" yaml:"model"`
	APIKey    string `json:"-" yaml:"-"`
	BaseURL   string `json:"base_url,omitempty" yaml:"base_url,omitempty"`
	Timeout   int    `json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxTokens int    `json:"max_tokens" yaml:"max_tokens"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "Exorank/0.1 (+https://github.com/ppiankov/exorank)",
			MaxBodyBytes: 50_000_000,
			RatePerHost:  2.0,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       ".exorank-cache",
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   7 * 24 * time.Hour,
		},
		Reference: ReferenceConfig{
			URL:       "https://phl.upr.edu/projects/habitable-exoplanets-catalog/data/habitable_exoplanets_catalog.csv",
			LocalPath: "data/authoritative_habitable_sample.csv",
		},
		Output: OutputConfig{
			Dir:  "results",
			TopN: 20,
		},
		Scoring: ScoringConfig{
			Workers: 0,
		},
		LLM: LLMConfig{
			Provider:  "",
			Timeout:   30,
			MaxTokens: 800,
		},
	}
}
