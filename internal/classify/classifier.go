// Package classify maps free-text questions to a tagged intent plus the
// parameters the downstream executor needs, using ordered
// first-match-wins rules over the lower-cased query text and the
// extractor outputs.
package classify

import (
	"strings"

	"github.com/arblens/arblens/internal/extract"
	"github.com/arblens/arblens/internal/model"
)

// Keyword stems for inferring a disposition filter from query wording.
var dispositionStems = []struct {
	keywords []string
	stem     string
}{
	{[]string{"award", "awarded", "won"}, "award"},
	{[]string{"dismiss", "dismissed"}, "dismiss"},
	{[]string{"settle", "settled", "settlement"}, "settle"},
	{[]string{"withdraw", "withdrawn", "withdrawal"}, "withdraw"},
}

// Classifier is the rule-based intent classifier.
type Classifier struct {
	timeframes *extract.TimeframeExtractor
	entities   *extract.EntityExtractor
	combined   *extract.CombinedQueryDetector
}

// New creates a classifier wired to the given extractors.
func New(timeframes *extract.TimeframeExtractor, entities *extract.EntityExtractor) *Classifier {
	return &Classifier{
		timeframes: timeframes,
		entities:   entities,
		combined:   extract.NewCombinedQueryDetector(entities),
	}
}

// Classify runs the rule cascade and returns a structured query. The
// intent is always populated; optional fields are filled on a
// best-effort basis, with one generic re-extraction pass when the chosen
// intent still lacks its name.
func (c *Classifier) Classify(query string) model.StructuredQuery {
	lower := strings.ToLower(query)
	tf := c.timeframes.Extract(query)

	sq := model.StructuredQuery{
		Intent:         model.IntentUnknown,
		Year:           tf.Year,
		TimeframeLabel: tf.Label,
	}

	asksCount := containsAny(lower, "how many", "number of")
	mentionsCases := containsAny(lower, "case", "cases")

	switch {
	// 1. Counting within a timeframe.
	case !tf.IsZero() && asksCount && mentionsCases:
		sq.Intent = model.IntentTimeBasedAnalysis
		sq.Disposition = inferDisposition(lower)

	// 2. Arbitrator-respondent pairing.
	case c.tryCombined(query, &sq):
		sq.Intent = model.IntentCombinedOutcomeAnalysis

	// 3. Plain case counting.
	case asksCount && mentionsCases:
		sq.Intent = model.IntentArbitratorCaseCount

	// 4. Outcome breakdowns.
	case containsAny(lower, "outcome", "result", "ruling") &&
		!strings.Contains(lower, "average") && !strings.Contains(lower, "award amount"):
		c.classifyOutcome(query, lower, &sq)

	// 5. Award averages.
	case containsAny(lower, "average", "mean") && containsAny(lower, "award", "amount", "damages"):
		sq.Intent = model.IntentArbitratorAverageAward
		sq.Disposition = awardSubFilter(lower)

	// 6. Listings.
	case containsAny(lower, "list", "show", "what case", "which case", "display"):
		if containsAny(lower, "against", "involving", "respondent") {
			sq.Intent = model.IntentRespondentOutcomeAnalysis
		} else {
			sq.Intent = model.IntentArbitratorCaseListing
		}
	}

	c.fillMissingNames(query, &sq)
	return sq
}

// tryCombined runs the combined-query detector, capturing both names
// into the structured query on success.
func (c *Classifier) tryCombined(query string, sq *model.StructuredQuery) bool {
	arb, resp, ok := c.combined.Detect(query)
	if !ok {
		return false
	}
	sq.ArbitratorName = arb
	sq.RespondentName = resp
	return true
}

// classifyOutcome decides between respondent- and arbitrator-side
// outcome analysis. Explicit markers win; otherwise intent follows
// whichever extraction succeeds, respondent first.
func (c *Classifier) classifyOutcome(query, lower string, sq *model.StructuredQuery) {
	switch {
	case containsAny(lower, "respondent", "company", "against", "involving"):
		sq.Intent = model.IntentRespondentOutcomeAnalysis
	case containsAny(lower, "arbitrator", "handled by", "decided by"):
		sq.Intent = model.IntentArbitratorOutcomeAnalysis
	default:
		if resp := c.entities.Respondent(query); resp != "" {
			sq.Intent = model.IntentRespondentOutcomeAnalysis
			sq.RespondentName = resp
			return
		}
		sq.Intent = model.IntentArbitratorOutcomeAnalysis
	}
}

// fillMissingNames is the post-pass: when the chosen intent needs a name
// the rules did not capture, retry the generic extractors once.
func (c *Classifier) fillMissingNames(query string, sq *model.StructuredQuery) {
	if sq.Intent.NeedsArbitrator() && sq.ArbitratorName == "" {
		sq.ArbitratorName = c.entities.Arbitrator(query)
	}
	if sq.Intent.NeedsRespondent() && sq.RespondentName == "" {
		sq.RespondentName = c.entities.Respondent(query)
	}
	// Respondent breakdowns may be narrowed by an arbitrator filter when
	// the query names one.
	if sq.Intent == model.IntentRespondentOutcomeAnalysis && sq.ArbitratorName == "" {
		sq.ArbitratorName = c.entities.Arbitrator(query)
	}
}

// inferDisposition maps outcome wording to a disposition stem, or "all"
// when the query names no outcome.
func inferDisposition(lower string) string {
	for _, d := range dispositionStems {
		for _, k := range d.keywords {
			if strings.Contains(lower, k) {
				return d.stem
			}
		}
	}
	return "all"
}

// awardSubFilter narrows average-award queries by party wording.
func awardSubFilter(lower string) string {
	switch {
	case strings.Contains(lower, "for consumer"), strings.Contains(lower, "for claimant"):
		return "award"
	case strings.Contains(lower, "for respondent"), strings.Contains(lower, "for business"):
		return "dismiss"
	}
	return ""
}

func containsAny(s string, keywords ...string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
