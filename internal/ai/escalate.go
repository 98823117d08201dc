package ai

import (
	"context"

	"go.uber.org/zap"

	"github.com/arblens/arblens/internal/extract"
	"github.com/arblens/arblens/internal/model"
)

const (
	msgNoCollaborator = "I couldn't understand that question. Try asking about an arbitrator's case count, outcomes, average awards, or case listings."
	msgAIUnavailable  = "I wasn't able to analyze that question right now. Please try rephrasing it, or ask about an arbitrator's cases directly."

	// rawRowCap bounds how many rows a generated query may return for
	// summarization.
	rawRowCap = 200
)

// QueryRunner re-enters deterministic execution with collaborator-extracted
// parameters. The parameters go through the same validation as rule-classified
// ones.
type QueryRunner interface {
	Execute(ctx context.Context, sq model.StructuredQuery) *model.QueryResult
}

// RawQuerier runs a vetted read-only query and returns generic rows.
type RawQuerier interface {
	RawQuery(ctx context.Context, query string, limit int) ([]map[string]any, error)
}

// Escalator handles queries the deterministic classifier could not: first a
// confidence-gated reclassification, then generated-query summarization. It
// always produces a result; collaborator failures degrade to a fixed message.
type Escalator struct {
	collab     Collaborator
	runner     QueryRunner
	raw        RawQuerier
	timeframes *extract.TimeframeExtractor
	minTrust   float64
	log        *zap.SugaredLogger
}

// NewEscalator creates an escalator. A nil collaborator is valid and
// disables escalation.
func NewEscalator(collab Collaborator, runner QueryRunner, raw RawQuerier, tf *extract.TimeframeExtractor, minTrust float64, log *zap.SugaredLogger) *Escalator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if minTrust <= 0 {
		minTrust = 0.7
	}
	return &Escalator{
		collab:     collab,
		runner:     runner,
		raw:        raw,
		timeframes: tf,
		minTrust:   minTrust,
		log:        log,
	}
}

// Escalate resolves a query the rules gave up on. It never returns nil and
// never lets a collaborator panic escape.
func (e *Escalator) Escalate(ctx context.Context, query string) (res *model.QueryResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorw("collaborator panicked", "panic", r)
			res = &model.QueryResult{Message: msgAIUnavailable}
		}
	}()

	if e.collab == nil {
		return &model.QueryResult{Message: msgNoCollaborator}
	}

	cls, err := e.collab.Classify(ctx, query)
	if err != nil {
		e.log.Warnw("AI classification failed", "error", err)
		return &model.QueryResult{Message: msgAIUnavailable}
	}

	if sq, ok := e.trusted(cls); ok {
		e.log.Infow("AI classification accepted",
			"intent", sq.Intent, "confidence", cls.Confidence)
		if r := e.runner.Execute(ctx, sq); r != nil {
			return r
		}
	}

	return e.generateAndSummarize(ctx, query)
}

// trusted converts a classification into a structured query when the
// collaborator is confident and the intent is one the executor can run
// deterministically.
func (e *Escalator) trusted(cls *Classification) (model.StructuredQuery, bool) {
	if cls.Confidence < e.minTrust {
		return model.StructuredQuery{}, false
	}
	kind, ok := model.ParseIntentKind(cls.Intent)
	if !ok || kind == model.IntentUnknown || kind == model.IntentComplexAnalysis {
		return model.StructuredQuery{}, false
	}

	sq := model.StructuredQuery{
		Intent:         kind,
		ArbitratorName: cls.ArbitratorName,
		RespondentName: cls.RespondentName,
		Disposition:    cls.Disposition,
		CaseType:       cls.CaseType,
	}
	if cls.Timeframe != "" && e.timeframes != nil {
		tf := e.timeframes.Extract(cls.Timeframe)
		sq.Year = tf.Year
		sq.TimeframeLabel = tf.Label
	}
	return sq, true
}

// generateAndSummarize is the second escalation stage: a collaborator-written
// read-only query, vetted and row-capped by the store, summarized back into
// prose.
func (e *Escalator) generateAndSummarize(ctx context.Context, query string) *model.QueryResult {
	gq, err := e.collab.GenerateQuery(ctx, query)
	if err != nil {
		e.log.Warnw("AI query generation failed", "error", err)
		return &model.QueryResult{Message: msgAIUnavailable}
	}

	rows, err := e.raw.RawQuery(ctx, gq.QueryText, rawRowCap)
	if err != nil {
		e.log.Warnw("generated query rejected", "query", gq.QueryText, "error", err)
		return &model.QueryResult{Message: msgAIUnavailable}
	}

	summary, err := e.collab.Summarize(ctx, query, rows)
	if err != nil || summary == "" {
		e.log.Warnw("AI summarization failed", "error", err)
		return &model.QueryResult{Message: msgAIUnavailable}
	}

	return &model.QueryResult{Data: rows, Message: summary}
}
