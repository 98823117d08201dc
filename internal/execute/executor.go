// Package execute runs classified queries against the case store: one
// aggregation routine per intent, name-variant resolution through the
// fuzzy matcher, and a uniform failure policy in which every outcome is
// a message-bearing result rather than an error.
package execute

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/arblens/arblens/internal/cache"
	"github.com/arblens/arblens/internal/extract"
	"github.com/arblens/arblens/internal/format"
	"github.com/arblens/arblens/internal/model"
	"github.com/arblens/arblens/internal/names"
	"github.com/arblens/arblens/internal/store"
	"github.com/arblens/arblens/internal/worker"
)

// ListingCap bounds rendered case listings; the true total is reported
// when the match count exceeds it.
const ListingCap = 50

// RankingMinCases is the minimum number of numerically valid award rows
// an arbitrator needs to appear in a ranking.
const RankingMinCases = 5

// RankingSize caps the ranking length.
const RankingSize = 10

// User-facing messages for the failure taxonomy. The store-failure
// wording deliberately differs from zero-result wording, and the
// timeframe clarification asks rather than guesses.
const (
	msgNoArbitrator = "I couldn't find an arbitrator name in your question. Try something like \"How many cases has John Smith handled?\""
	msgNoRespondent = "I couldn't find a respondent name in your question. Try something like \"What are the outcomes for Acme Corp as respondent?\""
	msgStoreFailure = "Something went wrong while searching the case records. Please try again."
	msgNoTimeframe  = "I couldn't tell which time period you meant. Try naming a year, like \"in 2020\", or a phrase like \"last year\"."
)

// Executor resolves names and runs per-intent aggregations.
type Executor struct {
	store      store.CaseStore
	matcher    *names.Matcher
	timeframes *extract.TimeframeExtractor
	formatter  *format.Formatter
	nameCache  *cache.NameCache // nil disables caching
	pool       *worker.Pool
	log        *zap.SugaredLogger
}

// New creates an executor. A nil nameCache disables variant caching; a
// nil logger disables logging.
func New(cs store.CaseStore, tf *extract.TimeframeExtractor, nameCache *cache.NameCache, workers int, log *zap.SugaredLogger) *Executor {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Executor{
		store:      cs,
		matcher:    names.NewMatcher(),
		timeframes: tf,
		formatter:  format.New(),
		nameCache:  nameCache,
		pool:       worker.NewPool(workers),
		log:        log,
	}
}

// Execute dispatches a structured query to its intent routine. The
// switch is exhaustive over the deterministic intents; UNKNOWN and
// COMPLEX_ANALYSIS signal escalation by returning nil.
func (e *Executor) Execute(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	switch sq.Intent {
	case model.IntentArbitratorCaseCount:
		return e.arbitratorCaseCount(ctx, sq)
	case model.IntentArbitratorOutcomeAnalysis:
		return e.arbitratorOutcomes(ctx, sq)
	case model.IntentArbitratorAverageAward:
		return e.arbitratorAverageAward(ctx, sq)
	case model.IntentArbitratorCaseListing:
		return e.arbitratorCaseListing(ctx, sq)
	case model.IntentRespondentOutcomeAnalysis:
		return e.respondentOutcomes(ctx, sq)
	case model.IntentCombinedOutcomeAnalysis:
		return e.combinedOutcomes(ctx, sq)
	case model.IntentArbitratorRanking:
		return e.arbitratorRanking(ctx, sq)
	case model.IntentTimeBasedAnalysis:
		return e.timeBasedAnalysis(ctx, sq)
	case model.IntentComplexAnalysis, model.IntentUnknown:
		return nil
	default:
		return nil
	}
}

// resolveArbitrators finds the stored arbitrator name variants matching
// a queried name: a coarse last-name substring pre-filter against the
// store, then the full matcher over the candidates. Results are cached
// briefly.
func (e *Executor) resolveArbitrators(ctx context.Context, queried string) ([]string, error) {
	if e.nameCache != nil {
		if variants, found := e.nameCache.Get(queried); found {
			return variants, nil
		}
	}

	last := lastToken(queried)
	candidates, err := e.store.DistinctNames(ctx, "arbitrator_name", store.Predicate{
		ArbitratorLastName: last,
	})
	if err != nil {
		return nil, err
	}

	var variants []string
	for _, candidate := range candidates {
		if e.matcher.Match(queried, candidate) {
			variants = append(variants, candidate)
		}
	}

	if e.nameCache != nil {
		e.nameCache.Set(queried, variants)
	}
	return variants, nil
}

func (e *Executor) arbitratorCaseCount(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	if sq.ArbitratorName == "" {
		return &model.QueryResult{Message: msgNoArbitrator}
	}
	variants, err := e.resolveArbitrators(ctx, sq.ArbitratorName)
	if err != nil {
		return e.storeFailure("resolve arbitrators", err)
	}
	if len(variants) == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	counts, err := e.store.NameCounts(ctx, "arbitrator_name", store.Predicate{
		ArbitratorIn: variants,
	})
	if err != nil {
		return e.storeFailure("count cases", err)
	}

	total := 0
	for _, nc := range counts {
		total += nc.Count
	}

	var b strings.Builder
	if len(counts) > 1 {
		fmt.Fprintf(&b, "%q matched %d arbitrators:\n", sq.ArbitratorName, len(counts))
		b.WriteString(e.formatter.NameList(counts, 0))
		fmt.Fprintf(&b, "Combined, they have handled %s cases.", e.formatter.Count(total))
	} else {
		fmt.Fprintf(&b, "%s has handled %s cases.", counts[0].Name, e.formatter.Count(total))
	}

	return &model.QueryResult{
		Data: map[string]any{
			"arbitrators": counts,
			"total":       total,
		},
		Message: b.String(),
	}
}

func (e *Executor) arbitratorOutcomes(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	if sq.ArbitratorName == "" {
		return &model.QueryResult{Message: msgNoArbitrator}
	}
	variants, err := e.resolveArbitrators(ctx, sq.ArbitratorName)
	if err != nil {
		return e.storeFailure("resolve arbitrators", err)
	}
	if len(variants) == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	// Per-name round trips, merged into disposition-keyed sums. The
	// merge is commutative, so the fan-out order is not observable.
	merged, err := e.fanOutDispositions(ctx, variants)
	if err != nil {
		return e.storeFailure("group outcomes", err)
	}

	counts := sortedCounts(merged)
	total := 0
	for _, dc := range counts {
		total += dc.Count
	}
	if total == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Outcomes for %s (%s cases", sq.ArbitratorName, e.formatter.Count(total))
	if len(variants) > 1 {
		fmt.Fprintf(&b, " across %d name variants", len(variants))
	}
	b.WriteString("):\n")
	b.WriteString(e.formatter.DispositionBreakdown(counts, total))

	return &model.QueryResult{
		Data: map[string]any{
			"outcomes": counts,
			"total":    total,
			"variants": variants,
		},
		Message: strings.TrimRight(b.String(), "\n"),
	}
}

// fanOutDispositions issues one grouped read per name variant through
// the bounded pool and merges the disposition counts.
func (e *Executor) fanOutDispositions(ctx context.Context, variants []string) (map[string]int, error) {
	merged := make(map[string]int)
	var mu sync.Mutex

	tasks := make([]worker.Task, 0, len(variants))
	for _, variant := range variants {
		tasks = append(tasks, func(ctx context.Context) error {
			counts, err := e.store.GroupCountByDisposition(ctx, store.Predicate{
				ArbitratorIn: []string{variant},
			})
			if err != nil {
				return err
			}
			mu.Lock()
			for _, dc := range counts {
				merged[dc.Disposition] += dc.Count
			}
			mu.Unlock()
			return nil
		})
	}
	if err := e.pool.Run(ctx, tasks); err != nil {
		return nil, err
	}
	return merged, nil
}

func (e *Executor) arbitratorAverageAward(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	if sq.ArbitratorName == "" {
		return &model.QueryResult{Message: msgNoArbitrator}
	}
	variants, err := e.resolveArbitrators(ctx, sq.ArbitratorName)
	if err != nil {
		return e.storeFailure("resolve arbitrators", err)
	}
	if len(variants) == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	pred := store.Predicate{ArbitratorIn: variants}
	if sq.Disposition != "" && sq.Disposition != "all" {
		pred.DispositionLike = sq.Disposition
	}
	total, err := e.store.CountWhere(ctx, pred)
	if err != nil {
		return e.storeFailure("count cases", err)
	}
	if total == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	// Award figures only make sense over rows whose disposition records
	// an award.
	awardPred := pred
	awardPred.DispositionLike = "award"
	stats, err := e.store.AverageNumericField(ctx, "award_amount", awardPred)
	if err != nil {
		return e.storeFailure("average award", err)
	}
	if stats.Count == 0 {
		return &model.QueryResult{
			Data: map[string]any{"total": total},
			Message: fmt.Sprintf(
				"%s has %s cases on record, but none of them carry usable award amounts.",
				sq.ArbitratorName, e.formatter.Count(total)),
		}
	}

	msg := fmt.Sprintf("Average award for %s: %s across %s awarded cases (total %s, %s cases overall).",
		sq.ArbitratorName,
		e.formatter.CurrencyAverage(stats.Average),
		e.formatter.Count(stats.Count),
		e.formatter.Currency(stats.Sum),
		e.formatter.Count(total),
	)
	return &model.QueryResult{
		Data: map[string]any{
			"average":     stats.Average,
			"sum":         stats.Sum,
			"award_cases": stats.Count,
			"total":       total,
			"variants":    variants,
		},
		Message: msg,
	}
}

func (e *Executor) arbitratorCaseListing(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	if sq.ArbitratorName == "" {
		return &model.QueryResult{Message: msgNoArbitrator}
	}
	variants, err := e.resolveArbitrators(ctx, sq.ArbitratorName)
	if err != nil {
		return e.storeFailure("resolve arbitrators", err)
	}
	if len(variants) == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	pred := store.Predicate{ArbitratorIn: variants}
	total, err := e.store.CountWhere(ctx, pred)
	if err != nil {
		return e.storeFailure("count cases", err)
	}
	if total == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	// Case identifiers sort descending as strings; filing dates are too
	// sparsely populated to order by.
	records, err := e.store.ListWhere(ctx, pred, ListingCap, "case_id")
	if err != nil {
		return e.storeFailure("list cases", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Cases handled by %s:\n", sq.ArbitratorName)
	b.WriteString(e.formatter.Cases(records))
	if total > len(records) {
		fmt.Fprintf(&b, "Showing %d of %s cases.", len(records), e.formatter.Count(total))
	}

	return &model.QueryResult{
		Data: map[string]any{
			"cases": records,
			"total": total,
		},
		Message: strings.TrimRight(b.String(), "\n"),
	}
}

func (e *Executor) respondentOutcomes(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	if sq.RespondentName == "" {
		return &model.QueryResult{Message: msgNoRespondent}
	}

	// Respondent matching is substring-based: corporate names have no
	// first/last structure to split.
	pred := store.Predicate{RespondentLike: sq.RespondentName}
	if sq.ArbitratorName != "" {
		pred.ArbitratorLastName = lastToken(sq.ArbitratorName)
	}

	variants, err := e.store.NameCounts(ctx, "respondent_name", pred)
	if err != nil {
		return e.storeFailure("resolve respondents", err)
	}
	if len(variants) == 0 {
		return e.noMatches("respondent", sq.RespondentName)
	}

	counts, err := e.store.GroupCountByDisposition(ctx, pred)
	if err != nil {
		return e.storeFailure("group outcomes", err)
	}
	total := 0
	for _, dc := range counts {
		total += dc.Count
	}

	var b strings.Builder
	if len(variants) > 1 {
		fmt.Fprintf(&b, "%q matched %d respondent name variants:\n", sq.RespondentName, len(variants))
		b.WriteString(e.formatter.NameList(variants, format.RespondentVariantCap))
	}
	fmt.Fprintf(&b, "Outcomes for %s (%s cases):\n", sq.RespondentName, e.formatter.Count(total))
	b.WriteString(e.formatter.DispositionBreakdown(counts, total))

	return &model.QueryResult{
		Data: map[string]any{
			"outcomes": counts,
			"total":    total,
			"variants": variants,
		},
		Message: strings.TrimRight(b.String(), "\n"),
	}
}

func (e *Executor) combinedOutcomes(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	if sq.ArbitratorName == "" {
		return &model.QueryResult{Message: msgNoArbitrator}
	}
	if sq.RespondentName == "" {
		return &model.QueryResult{Message: msgNoRespondent}
	}

	variants, err := e.resolveArbitrators(ctx, sq.ArbitratorName)
	if err != nil {
		return e.storeFailure("resolve arbitrators", err)
	}
	if len(variants) == 0 {
		return e.noMatches("arbitrator", sq.ArbitratorName)
	}

	respondents, err := e.store.DistinctNames(ctx, "respondent_name", store.Predicate{
		RespondentLike: sq.RespondentName,
	})
	if err != nil {
		return e.storeFailure("resolve respondents", err)
	}
	if len(respondents) == 0 {
		return e.noMatches("respondent", sq.RespondentName)
	}

	// One pushdown aggregate over the intersection, not a per-pair loop.
	counts, err := e.store.GroupCountByDisposition(ctx, store.Predicate{
		ArbitratorIn: variants,
		RespondentIn: respondents,
	})
	if err != nil {
		return e.storeFailure("group outcomes", err)
	}
	total := 0
	for _, dc := range counts {
		total += dc.Count
	}
	if total == 0 {
		return &model.QueryResult{
			Message: fmt.Sprintf("No cases found pairing arbitrator %q with respondent %q.",
				sq.ArbitratorName, sq.RespondentName),
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "How %s ruled in cases involving %s (%s cases):\n",
		sq.ArbitratorName, sq.RespondentName, e.formatter.Count(total))
	b.WriteString(e.formatter.DispositionBreakdown(counts, total))

	return &model.QueryResult{
		Data: map[string]any{
			"outcomes":    counts,
			"total":       total,
			"arbitrators": variants,
			"respondents": respondents,
		},
		Message: strings.TrimRight(b.String(), "\n"),
	}
}

func (e *Executor) arbitratorRanking(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	pred := store.Predicate{CaseType: sq.CaseType}
	ranked, err := e.store.TopAveragesByName(ctx, pred, RankingMinCases, RankingSize)
	if err != nil {
		return e.storeFailure("rank arbitrators", err)
	}
	if len(ranked) == 0 {
		return &model.QueryResult{
			Message: fmt.Sprintf("No arbitrators have at least %d cases with usable award amounts.", RankingMinCases),
		}
	}

	var b strings.Builder
	b.WriteString("Arbitrators by average award:\n")
	for i, r := range ranked {
		fmt.Fprintf(&b, "%d. %s: %s average over %d cases\n",
			i+1, r.Name, e.formatter.CurrencyAverage(r.AverageAward), r.CaseCount)
	}

	return &model.QueryResult{
		Data:    map[string]any{"ranking": ranked},
		Message: strings.TrimRight(b.String(), "\n"),
	}
}

func (e *Executor) timeBasedAnalysis(ctx context.Context, sq model.StructuredQuery) *model.QueryResult {
	tf := extract.Timeframe{Year: sq.Year, Label: sq.TimeframeLabel}
	if tf.IsZero() {
		return &model.QueryResult{Message: msgNoTimeframe}
	}
	// Label-only timeframes ("past 5 years") resolve to a window now,
	// not at classification time.
	if tf.Year == 0 {
		reparsed := e.timeframes.Extract(tf.Label)
		if reparsed.IsZero() {
			return &model.QueryResult{Message: msgNoTimeframe}
		}
		tf = reparsed
	}
	from, to := e.timeframes.Window(tf)

	pred := store.Predicate{YearFrom: from, YearTo: to, RequireFilingDate: true}
	if sq.Disposition != "" && sq.Disposition != "all" {
		pred.DispositionLike = sq.Disposition
	}
	count, err := e.store.CountWhere(ctx, pred)
	if err != nil {
		return e.storeFailure("count cases in window", err)
	}

	what := pastTense(sq.Disposition)
	label := sq.TimeframeLabel
	if label == "" {
		label = fmt.Sprintf("%d", sq.Year)
	}
	msg := fmt.Sprintf("%s cases were %s in %s.", e.formatter.Count(count), what, label)
	if count == 0 {
		msg = fmt.Sprintf("No cases were %s in %s.", what, label)
	}

	return &model.QueryResult{
		Data: map[string]any{
			"count": count,
			"from":  from,
			"to":    to,
		},
		Message: msg,
	}
}

// storeFailure logs the fault and returns the generic retry message;
// store errors never propagate past the executor.
func (e *Executor) storeFailure(op string, err error) *model.QueryResult {
	e.log.Errorw("store query failed", "operation", op, "error", err)
	return &model.QueryResult{Message: msgStoreFailure}
}

func (e *Executor) noMatches(role, name string) *model.QueryResult {
	return &model.QueryResult{
		Message: fmt.Sprintf("No cases found for %s %q.", role, name),
	}
}

// sortedCounts renders a disposition-keyed sum map as a descending list.
func sortedCounts(merged map[string]int) []model.DispositionCount {
	counts := make([]model.DispositionCount, 0, len(merged))
	for disposition, count := range merged {
		counts = append(counts, model.DispositionCount{Disposition: disposition, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Disposition < counts[j].Disposition
	})
	return counts
}

// pastTense renders a disposition stem for prose ("award" -> "awarded").
func pastTense(stem string) string {
	switch stem {
	case "award":
		return "awarded"
	case "dismiss":
		return "dismissed"
	case "settle":
		return "settled"
	case "withdraw":
		return "withdrawn"
	default:
		return "filed"
	}
}

// lastToken returns the last whitespace-separated token of a name, used
// as the coarse store pre-filter.
func lastToken(name string) string {
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return name
	}
	return fields[len(fields)-1]
}
