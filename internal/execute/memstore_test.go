package execute

import (
	"context"
	"sort"
	"strings"

	"github.com/arblens/arblens/internal/model"
	"github.com/arblens/arblens/internal/store"
)

// memStore is an in-memory CaseStore used to test executor aggregation
// semantics without SQLite. Setting failWith makes every call fail.
type memStore struct {
	records  []model.CaseRecord
	failWith error
}

func (m *memStore) matching(p store.Predicate) []model.CaseRecord {
	var out []model.CaseRecord
	for _, rec := range m.records {
		if matches(rec, p) {
			out = append(out, rec)
		}
	}
	return out
}

func matches(rec model.CaseRecord, p store.Predicate) bool {
	if !p.IncludeDuplicates && rec.DuplicateOf != "" {
		return false
	}
	if p.ArbitratorLastName != "" &&
		!strings.Contains(strings.ToLower(rec.ArbitratorName), strings.ToLower(p.ArbitratorLastName)) {
		return false
	}
	if len(p.ArbitratorIn) > 0 && !containsString(p.ArbitratorIn, rec.ArbitratorName) {
		return false
	}
	if p.RespondentLike != "" &&
		!strings.Contains(strings.ToLower(rec.RespondentName), strings.ToLower(p.RespondentLike)) {
		return false
	}
	if len(p.RespondentIn) > 0 && !containsString(p.RespondentIn, rec.RespondentName) {
		return false
	}
	if p.DispositionLike != "" &&
		!strings.Contains(strings.ToLower(rec.Disposition), strings.ToLower(p.DispositionLike)) {
		return false
	}
	if p.CaseType != "" && !strings.EqualFold(rec.CaseType, p.CaseType) {
		return false
	}
	if p.RequireFilingDate || p.YearFrom > 0 || p.YearTo > 0 {
		if rec.FilingDate == nil {
			return false
		}
		year := rec.FilingDate.Year()
		if p.YearFrom > 0 && year < p.YearFrom {
			return false
		}
		if p.YearTo > 0 && year > p.YearTo {
			return false
		}
	}
	return true
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func (m *memStore) CountWhere(_ context.Context, p store.Predicate) (int, error) {
	if m.failWith != nil {
		return 0, m.failWith
	}
	return len(m.matching(p)), nil
}

func (m *memStore) GroupCountByDisposition(_ context.Context, p store.Predicate) ([]model.DispositionCount, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	grouped := map[string]int{}
	for _, rec := range m.matching(p) {
		d := rec.Disposition
		if d == "" {
			d = "Unknown"
		}
		grouped[d]++
	}
	var out []model.DispositionCount
	for d, c := range grouped {
		out = append(out, model.DispositionCount{Disposition: d, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

func (m *memStore) DistinctNames(_ context.Context, column string, p store.Predicate) ([]string, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	seen := map[string]bool{}
	var out []string
	for _, rec := range m.matching(p) {
		name := rec.ArbitratorName
		if column == "respondent_name" {
			name = rec.RespondentName
		}
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (m *memStore) NameCounts(_ context.Context, column string, p store.Predicate) ([]model.NameCount, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	grouped := map[string]int{}
	for _, rec := range m.matching(p) {
		name := rec.ArbitratorName
		if column == "respondent_name" {
			name = rec.RespondentName
		}
		if name != "" {
			grouped[name]++
		}
	}
	var out []model.NameCount
	for n, c := range grouped {
		out = append(out, model.NameCount{Name: n, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (m *memStore) ListWhere(_ context.Context, p store.Predicate, limit int, orderBy string) ([]model.CaseRecord, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	out := m.matching(p)
	sort.Slice(out, func(i, j int) bool { return out[i].CaseID > out[j].CaseID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) AverageNumericField(_ context.Context, field string, p store.Predicate) (model.AwardStats, error) {
	if m.failWith != nil {
		return model.AwardStats{}, m.failWith
	}
	var stats model.AwardStats
	for _, rec := range m.matching(p) {
		raw := rec.AwardAmount
		if field == "claim_amount" {
			raw = rec.ClaimAmount
		}
		if v, ok := store.ParseAmount(raw); ok {
			stats.Count++
			stats.Sum += v
		}
	}
	if stats.Count > 0 {
		stats.Average = stats.Sum / float64(stats.Count)
	}
	return stats, nil
}

func (m *memStore) TopAveragesByName(_ context.Context, p store.Predicate, minRows, limit int) ([]store.RankedName, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	type agg struct {
		count int
		sum   float64
	}
	byName := map[string]*agg{}
	for _, rec := range m.matching(p) {
		v, ok := store.ParseAmount(rec.AwardAmount)
		if !ok || rec.ArbitratorName == "" {
			continue
		}
		a := byName[rec.ArbitratorName]
		if a == nil {
			a = &agg{}
			byName[rec.ArbitratorName] = a
		}
		a.count++
		a.sum += v
	}
	var out []store.RankedName
	for name, a := range byName {
		if a.count < minRows {
			continue
		}
		out = append(out, store.RankedName{Name: name, CaseCount: a.count, AverageAward: a.sum / float64(a.count)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AverageAward > out[j].AverageAward })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memStore) RawQuery(_ context.Context, query string, limit int) ([]map[string]any, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, err := store.VetReadOnly(query); err != nil {
		return nil, err
	}
	return []map[string]any{{"rows": len(m.records)}}, nil
}
