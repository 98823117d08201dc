// Package engine wires extraction, classification, execution, and AI
// escalation into a single question-answering entry point.
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/arblens/arblens/internal/ai"
	"github.com/arblens/arblens/internal/cache"
	"github.com/arblens/arblens/internal/classify"
	"github.com/arblens/arblens/internal/execute"
	"github.com/arblens/arblens/internal/extract"
	"github.com/arblens/arblens/internal/model"
	"github.com/arblens/arblens/internal/store"
)

// Engine answers free-text questions about arbitration case records.
type Engine struct {
	store      *store.SQLiteStore
	classifier *classify.Classifier
	executor   *execute.Executor
	escalator  *ai.Escalator
	log        *zap.SugaredLogger
}

// New opens the case store and assembles the full resolution chain from
// configuration. The caller owns Close.
func New(cfg *model.Config, log *zap.SugaredLogger) (*Engine, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}

	cs, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		return nil, fmt.Errorf("open case store: %w", err)
	}

	var nameCache *cache.NameCache
	if cfg.Cache.Enabled {
		nameCache = cache.NewNameCache(time.Duration(cfg.Cache.TTLSeconds) * time.Second)
	}

	timeframes := extract.NewTimeframeExtractor()
	classifier := classify.New(timeframes, extract.NewEntityExtractor())
	executor := execute.New(cs, timeframes, nameCache, cfg.Concurrency.AggregationWorkers, log)

	collab, err := ai.NewCollaborator(ai.Config{
		Provider:      cfg.AI.Provider,
		Model:         cfg.AI.Model,
		APIKey:        cfg.AI.APIKey,
		BaseURL:       cfg.AI.BaseURL,
		Timeout:       cfg.AI.Timeout,
		MaxTokens:     cfg.AI.MaxTokens,
		RatePerMinute: cfg.AI.RatePerMinute,
	})
	if err != nil {
		log.Warnw("AI collaborator unavailable, escalation disabled", "error", err)
		collab = nil
	}
	escalator := ai.NewEscalator(collab, executor, cs, timeframes, cfg.AI.MinTrust, log)

	return &Engine{
		store:      cs,
		classifier: classifier,
		executor:   executor,
		escalator:  escalator,
		log:        log,
	}, nil
}

// Answer resolves a question end to end. Every outcome is an Answer; the
// engine errors only on empty input.
func (e *Engine) Answer(ctx context.Context, question string) (*model.Answer, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, fmt.Errorf("empty question")
	}

	sq := e.classifier.Classify(question)
	e.log.Debugw("classified query",
		"intent", sq.Intent,
		"arbitrator", sq.ArbitratorName,
		"respondent", sq.RespondentName)

	res := e.executor.Execute(ctx, sq)
	if res == nil {
		// Rules could not resolve this one. Hand it to the escalator,
		// which always produces a result.
		res = e.escalator.Escalate(ctx, question)
	}

	return &model.Answer{
		Answer:    res.Message,
		Data:      res.Data,
		QueryType: string(sq.Intent),
	}, nil
}

// Close releases the case store.
func (e *Engine) Close() error {
	return e.store.Close()
}
