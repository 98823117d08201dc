package extract

import (
	"regexp"
	"strings"

	"github.com/arblens/arblens/internal/names"
)

const (
	minNameLength = 2
	maxNameLength = 39
)

// Arbitrator-role patterns, tried in priority order. The first capture
// of plausible length wins.
var arbitratorPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:handled\s+by)\s+((?:(?i:(?:Hon|Dr|Mr|Ms|Judge)\.?)\s+)?(?:[A-Z][\w.']*\s*){1,4})`),
	regexp.MustCompile(`(?i:(?:decided|ruled|arbitrated)\s+by)\s+((?:[A-Z][\w.']*\s*){1,4})`),
	regexp.MustCompile(`(?i:arbitrator)\s+(?i:named\s+)?((?:[A-Z][\w.']*\s*){1,4})`),
	regexp.MustCompile(`(?i:\bby)\s+((?:(?i:(?:Hon|Dr|Mr|Ms|Judge)\.?)\s+)?(?:[A-Z][\w.']*\s*){1,4})`),
	regexp.MustCompile(`(?i:\bfor)\s+((?:[A-Z][\w.']*\s*){1,4})\s+(?i:as\s+arbitrator)`),
	regexp.MustCompile(`(?i:\b(?:has|did|does))\s+((?:[A-Z][\w.']*\s*){1,4})\s*(?i:(?:handle|handled|decide|decided|rule|ruled))`),
}

// Respondent-role patterns: explicit markers first, then corporate-suffix
// shapes ("... Corp", "... Inc", "... LLC").
var respondentPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i:for)\s+(.{2,60}?)\s+(?i:as\s+(?:the\s+)?respondent)`),
	regexp.MustCompile(`(?i:respondent)\s+(?i:(?:named|is)\s+)?((?:[A-Z][\w&.',-]*\s*){1,6})`),
	regexp.MustCompile(`(?i:(?:company|corporation|firm))\s+(?i:(?:named|called)\s+)?((?:[A-Z][\w&.',-]*\s*){1,6})`),
	regexp.MustCompile(`(?i:against)\s+((?:[A-Z][\w&.',-]*\s*){1,6})`),
	regexp.MustCompile(`(?i:involving)\s+((?:[A-Z][\w&.',-]*\s*){1,6})`),
	regexp.MustCompile(`\b((?:[A-Z][\w&.',-]*\s+){1,5}(?:Corp|Corporation|Inc|LLC|LLP|Co|Company|Bank|Group|Services|Financial)\.?)\b`),
}

// Honorifics that anchor the token-scan fallback even though they are
// not capitalized runs themselves.
var honorificTokens = map[string]bool{
	"hon.": true, "hon": true, "dr.": true, "dr": true,
	"mr.": true, "mr": true, "ms.": true, "ms": true,
	"judge": true, "justice": true,
}

// Trailing query words that regex captures frequently swallow.
var trailingStopwords = map[string]bool{
	"handled": true, "handle": true, "decided": true, "decide": true,
	"ruled": true, "rule": true, "in": true, "during": true, "as": true,
	"a": true, "an": true, "the": true, "arbitrator": true, "respondent": true,
	"have": true, "has": true, "had": true, "and": true, "with": true,
	"what": true, "how": true, "cases": true, "case": true,
}

// EntityExtractor extracts candidate arbitrator and respondent names via
// ordered pattern cascades, falling back to a token scan after anchor
// keywords. Extracted names pass through the standardizer.
type EntityExtractor struct {
	standardizer *names.Standardizer
}

// NewEntityExtractor creates a new entity extractor.
func NewEntityExtractor() *EntityExtractor {
	return &EntityExtractor{standardizer: names.NewStandardizer()}
}

// Arbitrator extracts an arbitrator name from query text. The empty
// string means no plausible candidate was found.
func (e *EntityExtractor) Arbitrator(query string) string {
	if name := e.cascade(query, arbitratorPatterns); name != "" {
		return name
	}
	return e.tokenScan(query, []string{"by", "arbitrator"})
}

// Respondent extracts a respondent (corporate party) name from query
// text. Respondent names are cleaned but not person-standardized.
func (e *EntityExtractor) Respondent(query string) string {
	for _, p := range respondentPatterns {
		m := p.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		candidate := cleanCapture(m[1])
		if plausible(candidate) {
			return candidate
		}
	}
	return ""
}

// cascade runs a pattern list in priority order and standardizes the
// first plausible capture.
func (e *EntityExtractor) cascade(query string, patterns []*regexp.Regexp) string {
	for _, p := range patterns {
		m := p.FindStringSubmatch(query)
		if m == nil {
			continue
		}
		candidate := cleanCapture(m[1])
		if plausible(candidate) {
			return e.standardizer.Standardize(candidate)
		}
	}
	return ""
}

// tokenScan is the fallback extractor: find an anchor keyword, then
// collect the capitalized run (or honorific-led run) that follows it.
func (e *EntityExtractor) tokenScan(query string, anchors []string) string {
	tokens := strings.Fields(query)
	for i, tok := range tokens[:max(len(tokens)-1, 0)] {
		lower := strings.ToLower(strings.TrimRight(tok, "?.,!"))
		anchored := false
		for _, a := range anchors {
			if lower == a {
				anchored = true
				break
			}
		}
		if !anchored {
			continue
		}

		var run []string
		for _, next := range tokens[i+1:] {
			word := strings.TrimRight(next, "?.,!")
			if word == "" {
				break
			}
			if honorificTokens[strings.ToLower(word)] || isCapitalized(word) {
				run = append(run, word)
				continue
			}
			break
		}
		candidate := cleanCapture(strings.Join(run, " "))
		if plausible(candidate) {
			return e.standardizer.Standardize(candidate)
		}
	}
	return ""
}

// cleanCapture trims punctuation and strips trailing query words that a
// greedy capture picked up ("John Smith handled" -> "John Smith").
func cleanCapture(s string) string {
	tokens := strings.Fields(strings.Trim(s, " ?.,!\"'"))
	for len(tokens) > 0 && trailingStopwords[strings.ToLower(strings.TrimRight(tokens[len(tokens)-1], "?.,!"))] {
		tokens = tokens[:len(tokens)-1]
	}
	return strings.TrimRight(strings.Join(tokens, " "), "?.,!")
}

func plausible(name string) bool {
	return len(name) >= minNameLength && len(name) <= maxNameLength
}

func isCapitalized(word string) bool {
	r := rune(word[0])
	return r >= 'A' && r <= 'Z'
}
