// Package store provides the read-only case store consumed by the query
// executor: a predicate-based aggregation surface over arbitration case
// records, backed by SQLite. All predicates compile to parameterized SQL;
// no query text is ever built from user-supplied strings.
package store

import (
	"context"

	"github.com/arblens/arblens/internal/model"
)

// Columns that may be named in DistinctNames and ListWhere ordering.
// Anything else is rejected before reaching SQL.
var allowedColumns = map[string]bool{
	"case_id":         true,
	"forum":           true,
	"arbitrator_name": true,
	"respondent_name": true,
	"disposition":     true,
	"case_type":       true,
	"filing_date":     true,
}

// CaseStore is the queryable read-only collection of case records.
// Implementations must be safe for concurrent reads.
type CaseStore interface {
	// CountWhere counts rows matching the predicate.
	CountWhere(ctx context.Context, p Predicate) (int, error)

	// GroupCountByDisposition counts matching rows grouped by their
	// disposition text, descending by count.
	GroupCountByDisposition(ctx context.Context, p Predicate) ([]model.DispositionCount, error)

	// DistinctNames returns the distinct values of a name column over
	// matching rows. The column must be in the allowed set.
	DistinctNames(ctx context.Context, column string, p Predicate) ([]string, error)

	// ListWhere returns matching rows ordered by the given column
	// descending, capped at limit.
	ListWhere(ctx context.Context, p Predicate, limit int, orderBy string) ([]model.CaseRecord, error)

	// AverageNumericField aggregates a free-text amount field over
	// matching rows. Values failing numeric validation are excluded,
	// never coerced to zero.
	AverageNumericField(ctx context.Context, field string, p Predicate) (model.AwardStats, error)

	// NameCounts returns per-name case counts for a name column over
	// matching rows, descending by count.
	NameCounts(ctx context.Context, column string, p Predicate) ([]model.NameCount, error)

	// TopAveragesByName computes average award per arbitrator over rows
	// with a numerically valid award amount, keeping only names with at
	// least minRows valid rows, descending by average, capped at limit.
	TopAveragesByName(ctx context.Context, p Predicate, minRows, limit int) ([]RankedName, error)

	// RawQuery executes a vetted read-only SQL query (AI-generated) and
	// returns generic rows, capped at limit.
	RawQuery(ctx context.Context, query string, limit int) ([]map[string]any, error)
}

// RankedName is one entry of an average-award ranking.
type RankedName struct {
	Name         string  `json:"name"`
	CaseCount    int     `json:"case_count"`
	AverageAward float64 `json:"average_award"`
}

// Predicate is the parameterized filter over case records. Zero values
// mean "no constraint"; duplicate-marked rows are excluded from every
// aggregate unless IncludeDuplicates is set.
type Predicate struct {
	ArbitratorLastName string   // case-insensitive substring on arbitrator_name
	ArbitratorIn       []string // exact arbitrator_name membership
	RespondentLike     string   // case-insensitive substring on respondent_name
	RespondentIn       []string // exact respondent_name membership
	DispositionLike    string   // case-insensitive substring on disposition
	CaseType           string
	YearFrom           int // inclusive filing-year window; 0 = unbounded
	YearTo             int
	RequireFilingDate  bool
	IncludeDuplicates  bool
}
