// Package format renders currency, percentage, and name-list prose with
// a fixed en-US locale so answers read consistently regardless of host
// locale.
package format

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/arblens/arblens/internal/model"
)

// RespondentVariantCap bounds how many respondent name variants are
// listed before collapsing into a "+N more" tail. Arbitrator variants
// are uncapped.
const RespondentVariantCap = 5

// Formatter renders answer prose.
type Formatter struct {
	printer *message.Printer
}

// New creates an en-US formatter.
func New() *Formatter {
	return &Formatter{printer: message.NewPrinter(language.AmericanEnglish)}
}

// Currency renders an aggregate total with no fractional digits
// ("$1,234,568").
func (f *Formatter) Currency(v float64) string {
	return f.printer.Sprintf("$%.0f", v)
}

// CurrencyAverage renders an average with two fractional digits
// ("$1,234,567.89").
func (f *Formatter) CurrencyAverage(v float64) string {
	return f.printer.Sprintf("$%.2f", v)
}

// Percent renders a share of total to one decimal place. The total is
// the filtered total, so rendered percentages sum to 100 within
// rounding tolerance.
func (f *Formatter) Percent(count, total int) string {
	if total == 0 {
		return "0.0%"
	}
	return fmt.Sprintf("%.1f%%", float64(count)/float64(total)*100)
}

// Count renders an integer with locale grouping.
func (f *Formatter) Count(n int) string {
	return f.printer.Sprintf("%d", n)
}

// DispositionBreakdown renders "<disposition>: <count> cases (<pct>%)"
// lines against the given total.
func (f *Formatter) DispositionBreakdown(counts []model.DispositionCount, total int) string {
	var b strings.Builder
	for _, dc := range counts {
		fmt.Fprintf(&b, "- %s: %d cases (%s)\n", dc.Disposition, dc.Count, f.Percent(dc.Count, total))
	}
	return b.String()
}

// NameList renders a bulleted list of per-name counts, collapsing the
// tail into "+N more" when limit is positive and exceeded.
func (f *Formatter) NameList(counts []model.NameCount, limit int) string {
	var b strings.Builder
	shown := counts
	if limit > 0 && len(counts) > limit {
		shown = counts[:limit]
	}
	for _, nc := range shown {
		fmt.Fprintf(&b, "- %s: %d cases\n", nc.Name, nc.Count)
	}
	if rest := len(counts) - len(shown); rest > 0 {
		fmt.Fprintf(&b, "- ... +%d more\n", rest)
	}
	return b.String()
}

// Cases renders a numbered case listing line per record.
func (f *Formatter) Cases(records []model.CaseRecord) string {
	var b strings.Builder
	for i, rec := range records {
		line := fmt.Sprintf("%d. Case %s", i+1, rec.CaseID)
		if rec.RespondentName != "" {
			line += " vs " + rec.RespondentName
		}
		if rec.Disposition != "" {
			line += " (" + rec.Disposition + ")"
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
