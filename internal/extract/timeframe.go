// Package extract pulls timeframes and party names out of free-text
// questions using ordered pattern cascades.
package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	yearPattern      = regexp.MustCompile(`\b(19|20)\d{2}\b`)
	pastYearsPattern = regexp.MustCompile(`(?i)(?:past|last)\s+(\d{1,2})\s+years`)
)

// Timeframe is the extracted time window of a query. A zero Timeframe
// means no timeframe was present. Span is non-zero only for "past/last N
// years" phrases, which resolve to a concrete window at execution time.
type Timeframe struct {
	Year  int
	Label string
	Span  int // "past N years"; window is [now-N, now]
}

// IsZero reports whether no timeframe was extracted.
func (t Timeframe) IsZero() bool {
	return t.Year == 0 && t.Label == ""
}

// TimeframeExtractor scans query text for an explicit year or a relative
// period phrase. The clock is injected so relative phrases are testable;
// it defaults to UTC wall time.
type TimeframeExtractor struct {
	now func() time.Time
}

// NewTimeframeExtractor creates a timeframe extractor on the UTC clock.
func NewTimeframeExtractor() *TimeframeExtractor {
	return &TimeframeExtractor{now: func() time.Time { return time.Now().UTC() }}
}

// NewTimeframeExtractorAt creates a timeframe extractor on a fixed clock.
func NewTimeframeExtractorAt(now func() time.Time) *TimeframeExtractor {
	return &TimeframeExtractor{now: now}
}

// Extract pulls a timeframe out of lower-cased query text. An explicit
// 4-digit year in [1900,2099] wins; the first occurrence is used when a
// query names several years (documented limitation). Relative phrases
// resolve against the injected clock, except "past N years" which keeps
// a span for execution-time resolution.
func (e *TimeframeExtractor) Extract(query string) Timeframe {
	if m := yearPattern.FindString(query); m != "" {
		year, _ := strconv.Atoi(m)
		return Timeframe{Year: year, Label: m}
	}

	if m := pastYearsPattern.FindStringSubmatch(query); m != nil {
		span, _ := strconv.Atoi(m[1])
		return Timeframe{Label: "past " + m[1] + " years", Span: span}
	}

	currentYear := e.now().Year()
	if containsPhrase(query, "last year") {
		return Timeframe{Year: currentYear - 1, Label: "last year"}
	}
	if containsPhrase(query, "this year") {
		return Timeframe{Year: currentYear, Label: "this year"}
	}

	return Timeframe{}
}

func containsPhrase(s, phrase string) bool {
	return strings.Contains(strings.ToLower(s), phrase)
}

// Window resolves the timeframe to an inclusive [from, to] year range at
// execution time.
func (e *TimeframeExtractor) Window(t Timeframe) (from, to int) {
	if t.Span > 0 {
		current := e.now().Year()
		return current - t.Span, current
	}
	return t.Year, t.Year
}
