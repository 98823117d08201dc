package model

// Config is the full arblens configuration, loadable from
// ~/.arblens/config.yaml, ARBLENS_* environment variables, and CLI flags.
type Config struct {
	Store StoreConfig `yaml:"store"`
	AI    AIConfig    `yaml:"ai"`
	Cache CacheConfig `yaml:"cache"`

	// Concurrency bounds the per-name aggregation fan-out.
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// StoreConfig configures the SQLite case store.
type StoreConfig struct {
	Path string `yaml:"path"` // path to the case database file
}

// AIConfig configures the generative-AI collaborator used for
// escalation. An empty Provider disables escalation entirely.
type AIConfig struct {
	Provider  string  `yaml:"provider"` // "openai", "" to disable
	Model     string  `yaml:"model"`
	APIKey    string  `yaml:"api_key,omitempty"`
	BaseURL   string  `yaml:"base_url,omitempty"` // custom endpoints (proxies, local servers)
	Timeout   int     `yaml:"timeout"`            // seconds, caller-visible
	MaxTokens int     `yaml:"max_tokens"`
	MinTrust  float64 `yaml:"min_trust"` // confidence gate for AI classifications

	// RatePerMinute caps collaborator calls across a process.
	RatePerMinute int `yaml:"rate_per_minute"`
}

// CacheConfig configures the in-memory name-variant cache.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

// ConcurrencyConfig bounds aggregation fan-out.
type ConcurrencyConfig struct {
	AggregationWorkers int `yaml:"aggregation_workers"`
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "cases.db",
		},
		AI: AIConfig{
			Provider:      "", // escalation disabled unless configured
			Timeout:       30,
			MaxTokens:     1000,
			MinTrust:      0.7,
			RatePerMinute: 20,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: 300,
		},
		Concurrency: ConcurrencyConfig{
			AggregationWorkers: 4,
		},
	}
}
