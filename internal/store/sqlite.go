package store

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/arblens/arblens/internal/model"
)

// moneyPattern validates a free-text amount before it is treated as a
// number. Rows that fail validation are excluded from numeric
// aggregates, never coerced to zero.
var moneyPattern = regexp.MustCompile(`^\$?\s*\d{1,3}(?:,\d{3})*(?:\.\d+)?$|^\$?\s*\d+(?:\.\d+)?$`)

// SQLiteStore implements CaseStore over a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// Open opens the case database at path with WAL mode and a busy timeout.
// A nil logger disables store logging.
func Open(path string, log *zap.SugaredLogger) (*SQLiteStore, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open case database: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("configure case database: %w", err)
		}
	}
	log.Debugw("case database opened", "path", path)
	return &SQLiteStore{db: db, log: log}, nil
}

// NewWithDB wraps an existing database handle; used by tests.
func NewWithDB(db *sql.DB, log *zap.SugaredLogger) *SQLiteStore {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SQLiteStore{db: db, log: log}
}

// Close closes the underlying database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CountWhere counts rows matching the predicate.
func (s *SQLiteStore) CountWhere(ctx context.Context, p Predicate) (int, error) {
	where, args := buildWhere(p)
	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM cases WHERE "+where, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count cases: %w", err)
	}
	return count, nil
}

// GroupCountByDisposition groups matching rows by disposition text.
func (s *SQLiteStore) GroupCountByDisposition(ctx context.Context, p Predicate) ([]model.DispositionCount, error) {
	where, args := buildWhere(p)
	query := `SELECT COALESCE(NULLIF(disposition, ''), 'Unknown'), COUNT(*)
		FROM cases WHERE ` + where + `
		GROUP BY 1 ORDER BY 2 DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("group by disposition: %w", err)
	}
	defer rows.Close()

	var out []model.DispositionCount
	for rows.Next() {
		var dc model.DispositionCount
		if err := rows.Scan(&dc.Disposition, &dc.Count); err != nil {
			return nil, fmt.Errorf("scan disposition count: %w", err)
		}
		out = append(out, dc)
	}
	return out, rows.Err()
}

// DistinctNames returns distinct values of a name column over matching rows.
func (s *SQLiteStore) DistinctNames(ctx context.Context, column string, p Predicate) ([]string, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	where, args := buildWhere(p)
	query := fmt.Sprintf(
		"SELECT DISTINCT %s FROM cases WHERE %s AND %s IS NOT NULL AND %s <> '' ORDER BY %s",
		column, where, column, column, column,
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("distinct %s: %w", column, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scan name: %w", err)
		}
		out = append(out, name)
	}
	return out, rows.Err()
}

// NameCounts returns per-name case counts for a name column.
func (s *SQLiteStore) NameCounts(ctx context.Context, column string, p Predicate) ([]model.NameCount, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	where, args := buildWhere(p)
	query := fmt.Sprintf(
		"SELECT %s, COUNT(*) FROM cases WHERE %s AND %s <> '' GROUP BY %s ORDER BY 2 DESC, 1",
		column, where, column, column,
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("name counts: %w", err)
	}
	defer rows.Close()

	var out []model.NameCount
	for rows.Next() {
		var nc model.NameCount
		if err := rows.Scan(&nc.Name, &nc.Count); err != nil {
			return nil, fmt.Errorf("scan name count: %w", err)
		}
		out = append(out, nc)
	}
	return out, rows.Err()
}

// ListWhere lists matching rows ordered by a column descending.
func (s *SQLiteStore) ListWhere(ctx context.Context, p Predicate, limit int, orderBy string) ([]model.CaseRecord, error) {
	if err := checkColumn(orderBy); err != nil {
		return nil, err
	}
	where, args := buildWhere(p)
	query := fmt.Sprintf(`SELECT case_id, forum, arbitrator_name, respondent_name,
		consumer_attorney, filing_date, disposition, claim_amount, award_amount,
		case_type, COALESCE(duplicate_of, '')
		FROM cases WHERE %s ORDER BY %s DESC LIMIT ?`, where, orderBy)
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list cases: %w", err)
	}
	defer rows.Close()

	var out []model.CaseRecord
	for rows.Next() {
		rec, err := scanCase(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// AverageNumericField aggregates a free-text amount field. Values are
// fetched raw and validated in Go so non-numeric text is excluded
// rather than silently cast.
func (s *SQLiteStore) AverageNumericField(ctx context.Context, field string, p Predicate) (model.AwardStats, error) {
	if field != "award_amount" && field != "claim_amount" {
		return model.AwardStats{}, fmt.Errorf("field %q not allowed in numeric aggregates", field)
	}
	where, args := buildWhere(p)
	query := fmt.Sprintf("SELECT %s FROM cases WHERE %s AND %s IS NOT NULL AND %s <> ''",
		field, where, field, field)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return model.AwardStats{}, fmt.Errorf("aggregate %s: %w", field, err)
	}
	defer rows.Close()

	var stats model.AwardStats
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return model.AwardStats{}, fmt.Errorf("scan amount: %w", err)
		}
		if v, ok := ParseAmount(raw); ok {
			stats.Count++
			stats.Sum += v
		}
	}
	if err := rows.Err(); err != nil {
		return model.AwardStats{}, err
	}
	if stats.Count > 0 {
		stats.Average = stats.Sum / float64(stats.Count)
	}
	return stats, nil
}

// TopAveragesByName ranks arbitrators by average award over rows with a
// numerically valid award amount. Names with fewer than minRows valid
// rows are excluded.
func (s *SQLiteStore) TopAveragesByName(ctx context.Context, p Predicate, minRows, limit int) ([]RankedName, error) {
	where, args := buildWhere(p)
	query := `SELECT arbitrator_name, award_amount FROM cases
		WHERE ` + where + `
		AND arbitrator_name <> '' AND award_amount IS NOT NULL AND award_amount <> ''`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("rank arbitrators: %w", err)
	}
	defer rows.Close()

	type agg struct {
		count int
		sum   float64
	}
	byName := make(map[string]*agg)
	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("scan award row: %w", err)
		}
		v, ok := ParseAmount(raw)
		if !ok {
			continue
		}
		a := byName[name]
		if a == nil {
			a = &agg{}
			byName[name] = a
		}
		a.count++
		a.sum += v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	var ranked []RankedName
	for name, a := range byName {
		if a.count < minRows {
			continue
		}
		ranked = append(ranked, RankedName{
			Name:         name,
			CaseCount:    a.count,
			AverageAward: a.sum / float64(a.count),
		})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].AverageAward != ranked[j].AverageAward {
			return ranked[i].AverageAward > ranked[j].AverageAward
		}
		return ranked[i].Name < ranked[j].Name
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// ParseAmount validates and parses a free-text money amount. Returns
// ok=false for anything that is not a plain or currency-formatted
// number ("pending", "see order", ...).
func ParseAmount(raw string) (float64, bool) {
	trimmed := strings.TrimSpace(raw)
	if !moneyPattern.MatchString(trimmed) {
		return 0, false
	}
	cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(trimmed)
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// scanner abstracts *sql.Row and *sql.Rows for scanCase.
type scanner interface {
	Scan(dest ...any) error
}

func scanCase(sc scanner) (model.CaseRecord, error) {
	var rec model.CaseRecord
	var forum, arb, resp, attorney, filing, disp, claim, award, caseType sql.NullString
	var dup string
	err := sc.Scan(&rec.CaseID, &forum, &arb, &resp, &attorney, &filing,
		&disp, &claim, &award, &caseType, &dup)
	if err != nil {
		return rec, fmt.Errorf("scan case: %w", err)
	}
	rec.Forum = forum.String
	rec.ArbitratorName = arb.String
	rec.RespondentName = resp.String
	rec.ConsumerAttorney = attorney.String
	rec.Disposition = disp.String
	rec.ClaimAmount = claim.String
	rec.AwardAmount = award.String
	rec.CaseType = caseType.String
	rec.DuplicateOf = dup
	if filing.String != "" {
		if t, err := time.Parse("2006-01-02", filing.String); err == nil {
			rec.FilingDate = &t
		}
	}
	return rec, nil
}
