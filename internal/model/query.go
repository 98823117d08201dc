package model

// IntentKind is the closed set of query intents the deterministic
// classifier can produce. Execution switches exhaustively over this set;
// anything unrecognized is IntentUnknown and escalates to the AI
// collaborator.
type IntentKind string

const (
	IntentArbitratorCaseCount       IntentKind = "ARBITRATOR_CASE_COUNT"
	IntentArbitratorOutcomeAnalysis IntentKind = "ARBITRATOR_OUTCOME_ANALYSIS"
	IntentArbitratorAverageAward    IntentKind = "ARBITRATOR_AVERAGE_AWARD"
	IntentArbitratorCaseListing     IntentKind = "ARBITRATOR_CASE_LISTING"
	IntentRespondentOutcomeAnalysis IntentKind = "RESPONDENT_OUTCOME_ANALYSIS"
	IntentCombinedOutcomeAnalysis   IntentKind = "COMBINED_OUTCOME_ANALYSIS"
	IntentArbitratorRanking         IntentKind = "ARBITRATOR_RANKING"
	IntentTimeBasedAnalysis         IntentKind = "TIME_BASED_ANALYSIS"
	IntentComplexAnalysis           IntentKind = "COMPLEX_ANALYSIS"
	IntentUnknown                   IntentKind = "UNKNOWN"
)

// ParseIntentKind maps a string (typically from the AI collaborator) to a
// known IntentKind. Unrecognized values parse to IntentUnknown, false.
func ParseIntentKind(s string) (IntentKind, bool) {
	switch IntentKind(s) {
	case IntentArbitratorCaseCount,
		IntentArbitratorOutcomeAnalysis,
		IntentArbitratorAverageAward,
		IntentArbitratorCaseListing,
		IntentRespondentOutcomeAnalysis,
		IntentCombinedOutcomeAnalysis,
		IntentArbitratorRanking,
		IntentTimeBasedAnalysis,
		IntentComplexAnalysis:
		return IntentKind(s), true
	case IntentUnknown:
		return IntentUnknown, true
	default:
		return IntentUnknown, false
	}
}

// NeedsArbitrator reports whether the intent requires an arbitrator name.
func (k IntentKind) NeedsArbitrator() bool {
	switch k {
	case IntentArbitratorCaseCount,
		IntentArbitratorOutcomeAnalysis,
		IntentArbitratorAverageAward,
		IntentArbitratorCaseListing,
		IntentCombinedOutcomeAnalysis:
		return true
	}
	return false
}

// NeedsRespondent reports whether the intent requires a respondent name.
func (k IntentKind) NeedsRespondent() bool {
	return k == IntentRespondentOutcomeAnalysis || k == IntentCombinedOutcomeAnalysis
}

// StructuredQuery is the classifier's output: one intent plus whichever
// parameters the rules managed to extract. Which optional fields must be
// populated is dictated by the intent; a missing required field is an
// extraction failure for the request, never a crash.
type StructuredQuery struct {
	Intent         IntentKind `json:"intent"`
	ArbitratorName string     `json:"arbitrator_name,omitempty"`
	RespondentName string     `json:"respondent_name,omitempty"`
	Disposition    string     `json:"disposition,omitempty"` // stem: award, dismiss, settle, withdraw, or "all"
	CaseType       string     `json:"case_type,omitempty"`
	Year           int        `json:"year,omitempty"`
	TimeframeLabel string     `json:"timeframe_label,omitempty"`
}

// QueryResult is the executor's uniform output shape: an intent-specific
// payload (nil on empty or failed results) plus a rendered message.
// Executors always produce one; they never return application errors to
// the caller surface.
type QueryResult struct {
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// Answer is the caller-facing result of Engine.Answer.
type Answer struct {
	Answer    string `json:"answer"`
	Data      any    `json:"data"`
	QueryType string `json:"queryType"`
}
