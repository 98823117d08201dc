package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildWhere(t *testing.T) {
	t.Run("excludes duplicates by default", func(t *testing.T) {
		where, args := buildWhere(Predicate{})
		assert.Equal(t, "(duplicate_of IS NULL OR duplicate_of = '')", where)
		assert.Empty(t, args)
	})

	t.Run("no conditions when duplicates included", func(t *testing.T) {
		where, args := buildWhere(Predicate{IncludeDuplicates: true})
		assert.Equal(t, "1=1", where)
		assert.Empty(t, args)
	})

	t.Run("last name substring is parameterized", func(t *testing.T) {
		where, args := buildWhere(Predicate{ArbitratorLastName: "Smith"})
		assert.Contains(t, where, "arbitrator_name LIKE ? COLLATE NOCASE")
		assert.Contains(t, args, "%Smith%")
	})

	t.Run("IN clauses use placeholders only", func(t *testing.T) {
		where, args := buildWhere(Predicate{
			ArbitratorIn: []string{"John A. Smith", "John B. Smith"},
			RespondentIn: []string{"Acme Corp"},
		})
		assert.Contains(t, where, "arbitrator_name IN (?,?)")
		assert.Contains(t, where, "respondent_name IN (?)")
		assert.Len(t, args, 3)
		// Raw values travel as arguments, never spliced into SQL.
		assert.NotContains(t, where, "Smith")
		assert.NotContains(t, where, "Acme")
	})

	t.Run("year window requires filing date", func(t *testing.T) {
		where, args := buildWhere(Predicate{YearFrom: 2019, YearTo: 2021})
		assert.Contains(t, where, "filing_date IS NOT NULL")
		assert.Contains(t, where, "substr(filing_date, 1, 4) >= ?")
		assert.Contains(t, where, "substr(filing_date, 1, 4) <= ?")
		assert.Equal(t, []any{"2019", "2021"}, args)
	})
}

func TestCheckColumn(t *testing.T) {
	assert.NoError(t, checkColumn("arbitrator_name"))
	assert.NoError(t, checkColumn("case_id"))
	assert.Error(t, checkColumn("award_amount; DROP TABLE cases"))
	assert.Error(t, checkColumn(""))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw    string
		want   float64
		wantOK bool
	}{
		{"15000", 15000, true},
		{"$15,000", 15000, true},
		{"$15,000.50", 15000.50, true},
		{"  $1,234,567  ", 1234567, true},
		{"0", 0, true},
		{"pending", 0, false},
		{"see order", 0, false},
		{"$15,000 plus fees", 0, false},
		{"", 0, false},
		{"N/A", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseAmount(tt.raw)
		assert.Equal(t, tt.wantOK, ok, "ParseAmount(%q) ok", tt.raw)
		if tt.wantOK {
			assert.InDelta(t, tt.want, got, 0.001, "ParseAmount(%q) value", tt.raw)
		}
	}
}

func TestVetReadOnly(t *testing.T) {
	t.Run("accepts plain select", func(t *testing.T) {
		q, err := VetReadOnly("SELECT disposition, COUNT(*) FROM cases GROUP BY disposition;")
		assert.NoError(t, err)
		assert.Equal(t, "SELECT disposition, COUNT(*) FROM cases GROUP BY disposition", q)
	})

	t.Run("accepts CTE", func(t *testing.T) {
		_, err := VetReadOnly("WITH top AS (SELECT * FROM cases) SELECT * FROM top")
		assert.NoError(t, err)
	})

	t.Run("rejects writes", func(t *testing.T) {
		for _, q := range []string{
			"DELETE FROM cases",
			"INSERT INTO cases VALUES (1)",
			"SELECT 1; DROP TABLE cases",
			"PRAGMA journal_mode = DELETE",
			"SELECT * FROM cases; UPDATE cases SET disposition = 'x'",
			"",
		} {
			_, err := VetReadOnly(q)
			assert.Error(t, err, "expected rejection for %q", q)
		}
	})

	t.Run("keyword check is word-bounded", func(t *testing.T) {
		// Column names containing a forbidden fragment as a substring
		// should still pass.
		_, err := VetReadOnly("SELECT created_at FROM cases")
		assert.NoError(t, err)
	})
}
