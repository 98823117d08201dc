package format

import (
	"strconv"
	"strings"
	"testing"

	"github.com/arblens/arblens/internal/model"
)

func TestFormatter_Currency(t *testing.T) {
	f := New()

	tests := []struct {
		value float64
		want  string
	}{
		{15000, "$15,000"},
		{1234567.89, "$1,234,568"}, // totals round to whole dollars
		{0, "$0"},
	}

	for _, tt := range tests {
		got := f.Currency(tt.value)
		if got != tt.want {
			t.Errorf("Currency(%v) = %q, want %q", tt.value, got, tt.want)
		}
	}
}

func TestFormatter_CurrencyAverage(t *testing.T) {
	f := New()

	got := f.CurrencyAverage(15000.456)
	if got != "$15,000.46" {
		t.Errorf("CurrencyAverage(15000.456) = %q, want %q", got, "$15,000.46")
	}
}

func TestFormatter_Percent(t *testing.T) {
	f := New()

	tests := []struct {
		count, total int
		want         string
	}{
		{4, 6, "66.7%"},
		{2, 6, "33.3%"},
		{1, 1, "100.0%"},
		{0, 5, "0.0%"},
		{3, 0, "0.0%"}, // degenerate total
	}

	for _, tt := range tests {
		got := f.Percent(tt.count, tt.total)
		if got != tt.want {
			t.Errorf("Percent(%d, %d) = %q, want %q", tt.count, tt.total, got, tt.want)
		}
	}
}

func TestFormatter_PercentagesSumToHundred(t *testing.T) {
	f := New()

	counts := []model.DispositionCount{
		{Disposition: "Awarded", Count: 4},
		{Disposition: "Dismissed", Count: 2},
		{Disposition: "Settled", Count: 1},
	}
	total := 7
	text := f.DispositionBreakdown(counts, total)

	// Parse rendered percentages back out and sum them. The sum must be
	// within 0.1 * categories of 100.
	var sum float64
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		open := strings.LastIndex(line, "(")
		closing := strings.LastIndex(line, "%)")
		if open < 0 || closing < 0 {
			t.Fatalf("unparseable breakdown line: %q", line)
		}
		pct, err := strconv.ParseFloat(line[open+1:closing], 64)
		if err != nil {
			t.Fatalf("bad percentage in line %q: %v", line, err)
		}
		sum += pct
	}

	tolerance := 0.1 * float64(len(counts))
	if sum < 100-tolerance || sum > 100+tolerance {
		t.Errorf("percentages sum to %.2f, want 100 within %.2f", sum, tolerance)
	}
}

func TestFormatter_NameListCap(t *testing.T) {
	f := New()

	counts := make([]model.NameCount, 8)
	for i := range counts {
		counts[i] = model.NameCount{Name: "Respondent", Count: 8 - i}
	}

	text := f.NameList(counts, RespondentVariantCap)
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) != RespondentVariantCap+1 {
		t.Fatalf("expected %d lines (cap + tail), got %d", RespondentVariantCap+1, len(lines))
	}
	if !strings.Contains(lines[len(lines)-1], "+3 more") {
		t.Errorf("expected '+3 more' tail, got %q", lines[len(lines)-1])
	}

	// Uncapped lists render every entry.
	text = f.NameList(counts, 0)
	if got := len(strings.Split(strings.TrimSpace(text), "\n")); got != 8 {
		t.Errorf("uncapped list rendered %d lines, want 8", got)
	}
}
