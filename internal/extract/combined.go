package extract

import "strings"

var (
	rulingKeywords     = []string{"rule", "ruled", "decision", "decide"}
	relationalKeywords = []string{"against", "for", "involving", "with", "between"}
)

// CombinedQueryDetector recognizes questions about a specific
// arbitrator-respondent pairing ("How did Smith rule against Acme
// Corp?"). It requires a ruling keyword and a relational keyword to
// co-occur before attempting extraction, and succeeds only when both
// names were found. Single-entity queries therefore never trip it.
type CombinedQueryDetector struct {
	entities *EntityExtractor
}

// NewCombinedQueryDetector creates a new combined-query detector.
func NewCombinedQueryDetector(entities *EntityExtractor) *CombinedQueryDetector {
	return &CombinedQueryDetector{entities: entities}
}

// Detect returns both names when the query pairs an arbitrator with a
// respondent, or ok=false otherwise.
func (d *CombinedQueryDetector) Detect(query string) (arbitrator, respondent string, ok bool) {
	lower := strings.ToLower(query)

	if !containsAny(lower, rulingKeywords) || !containsAny(lower, relationalKeywords) {
		return "", "", false
	}

	arbitrator = d.entities.Arbitrator(query)
	respondent = d.entities.Respondent(query)
	if arbitrator == "" || respondent == "" {
		return "", "", false
	}
	return arbitrator, respondent, true
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
