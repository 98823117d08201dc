package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

const classifySystemPrompt = `You classify questions about arbitration case records.
Respond with a single JSON object and nothing else:
{"intent": one of [ARBITRATOR_CASE_COUNT, ARBITRATOR_OUTCOME_ANALYSIS,
 ARBITRATOR_AVERAGE_AWARD, ARBITRATOR_CASE_LISTING, RESPONDENT_OUTCOME_ANALYSIS,
 COMBINED_OUTCOME_ANALYSIS, ARBITRATOR_RANKING, TIME_BASED_ANALYSIS,
 COMPLEX_ANALYSIS, UNKNOWN],
 "arbitrator_name": string or "", "respondent_name": string or "",
 "disposition": one of [award, dismiss, settle, withdraw, ""],
 "case_type": string or "", "timeframe": string or "",
 "confidence": number between 0 and 1}`

const generateSystemPrompt = `You write SQLite SELECT queries against this table:
cases(case_id, forum, arbitrator_name, respondent_name, consumer_attorney,
 filing_date, disposition, claim_amount, award_amount, case_type, duplicate_of)
Rules: exactly one SELECT statement; no writes, PRAGMA, or ATTACH; exclude rows
where duplicate_of is non-empty; amounts are free text, do not CAST them.
Respond with a single JSON object and nothing else:
{"query": string, "explanation": string}`

const summarizeSystemPrompt = `You summarize arbitration case query results.
Describe only what the rows show, in 2-4 plain sentences. Do not speculate
beyond the data, and say so explicitly if the rows are empty.`

// OpenAIClient implements Collaborator over the OpenAI-compatible chat
// completions API.
type OpenAIClient struct {
	client  *openai.Client
	config  Config
	limiter *rate.Limiter
}

// NewOpenAIClient creates an OpenAI-backed collaborator.
func NewOpenAIClient(cfg Config) (*OpenAIClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("OpenAI API key is required")
	}

	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	perMinute := cfg.RatePerMinute
	if perMinute <= 0 {
		perMinute = 20
	}

	return &OpenAIClient{
		client:  openai.NewClientWithConfig(clientConfig),
		config:  cfg,
		limiter: rate.NewLimiter(rate.Limit(float64(perMinute)/60.0), 2),
	}, nil
}

// Name returns the provider name.
func (c *OpenAIClient) Name() string {
	return "openai"
}

// Classify asks the model for an intent classification of the query.
func (c *OpenAIClient) Classify(ctx context.Context, query string) (*Classification, error) {
	raw, err := c.complete(ctx, classifySystemPrompt, query, true)
	if err != nil {
		return nil, err
	}
	var cls Classification
	if err := json.Unmarshal([]byte(raw), &cls); err != nil {
		return nil, fmt.Errorf("parse classification: %w", err)
	}
	if cls.Confidence < 0 || cls.Confidence > 1 {
		return nil, fmt.Errorf("classification confidence %v out of range", cls.Confidence)
	}
	return &cls, nil
}

// GenerateQuery asks the model for a read-only SQL query.
func (c *OpenAIClient) GenerateQuery(ctx context.Context, query string) (*GeneratedQuery, error) {
	raw, err := c.complete(ctx, generateSystemPrompt, query, true)
	if err != nil {
		return nil, err
	}
	var gq GeneratedQuery
	if err := json.Unmarshal([]byte(raw), &gq); err != nil {
		return nil, fmt.Errorf("parse generated query: %w", err)
	}
	if strings.TrimSpace(gq.QueryText) == "" {
		return nil, fmt.Errorf("empty generated query")
	}
	return &gq, nil
}

// Summarize asks the model to turn raw rows into prose.
func (c *OpenAIClient) Summarize(ctx context.Context, query string, rows []map[string]any) (string, error) {
	payload, err := json.Marshal(rows)
	if err != nil {
		return "", fmt.Errorf("encode rows: %w", err)
	}
	user := fmt.Sprintf("Question: %s\n\nResult rows (JSON):\n%s", query, payload)
	summary, err := c.complete(ctx, summarizeSystemPrompt, user, false)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(summary), nil
}

// complete issues one chat completion under the rate limit and the
// configured timeout.
func (c *OpenAIClient) complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	timeout := time.Duration(c.config.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model := c.config.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	maxTokens := c.config.MaxTokens
	if maxTokens == 0 {
		maxTokens = 1000
	}

	req := openai.ChatCompletionRequest{
		Model: model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens:   maxTokens,
		Temperature: 0.2,
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no response from OpenAI")
	}
	return resp.Choices[0].Message.Content, nil
}
