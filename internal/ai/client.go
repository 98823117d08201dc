// Package ai is the boundary to the generative-AI collaborator used
// when deterministic classification fails: intent classification with a
// confidence score, ad-hoc read-only query generation, and prose
// summarization of raw rows. Collaborator failures never propagate past
// the escalator.
package ai

import (
	"context"
	"fmt"
	"strings"
)

// Classification is the collaborator's reading of a query. All fields
// are untrusted and re-validated before execution.
type Classification struct {
	Intent         string  `json:"intent"`
	ArbitratorName string  `json:"arbitrator_name"`
	RespondentName string  `json:"respondent_name"`
	Disposition    string  `json:"disposition"`
	CaseType       string  `json:"case_type"`
	Timeframe      string  `json:"timeframe"`
	Confidence     float64 `json:"confidence"`
}

// GeneratedQuery is a collaborator-written read-only SQL query with its
// rationale. It is vetted before execution.
type GeneratedQuery struct {
	QueryText   string `json:"query"`
	Explanation string `json:"explanation"`
}

// Collaborator is the generative-AI contract. Implementations are
// opaque beyond these three calls.
type Collaborator interface {
	// Name identifies the provider.
	Name() string

	// Classify maps a free-text query to an intent plus parameters.
	Classify(ctx context.Context, query string) (*Classification, error)

	// GenerateQuery writes a read-only SQL query answering the question.
	GenerateQuery(ctx context.Context, query string) (*GeneratedQuery, error)

	// Summarize turns raw result rows into a prose answer.
	Summarize(ctx context.Context, query string, rows []map[string]any) (string, error)
}

// Config holds collaborator configuration.
type Config struct {
	// Provider name: "openai" or "" (disabled).
	Provider string

	// Model name (provider-specific).
	Model string

	// APIKey authenticates against the provider.
	APIKey string

	// BaseURL overrides the endpoint for proxies and local servers.
	BaseURL string

	// Timeout in seconds for each collaborator call.
	Timeout int

	// MaxTokens limits response length.
	MaxTokens int

	// RatePerMinute caps calls across the process.
	RatePerMinute int
}

// NewCollaborator creates a collaborator from configuration. An empty
// provider returns nil, nil: escalation disabled.
func NewCollaborator(cfg Config) (Collaborator, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIClient(cfg)
	case "":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown AI provider: %s (supported: openai)", cfg.Provider)
	}
}
