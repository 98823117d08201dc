package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db, zaptest.NewLogger(t).Sugar()), mock
}

func TestCountWhere(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM cases WHERE`).
		WithArgs("%Smith%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := s.CountWhere(context.Background(), Predicate{ArbitratorLastName: "Smith"})
	require.NoError(t, err)
	assert.Equal(t, 7, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGroupCountByDisposition(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`GROUP BY 1 ORDER BY 2 DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"disposition", "count"}).
			AddRow("Awarded", 4).
			AddRow("Dismissed", 2))

	counts, err := s.GroupCountByDisposition(context.Background(), Predicate{ArbitratorIn: []string{"John Smith"}})
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "Awarded", counts[0].Disposition)
	assert.Equal(t, 4, counts[0].Count)
}

func TestDistinctNames_RejectsUnknownColumn(t *testing.T) {
	s, _ := newMockStore(t)

	_, err := s.DistinctNames(context.Background(), "award_amount; --", Predicate{})
	assert.Error(t, err)
}

func TestTopAveragesByName(t *testing.T) {
	s, mock := newMockStore(t)

	rows := sqlmock.NewRows([]string{"arbitrator_name", "award_amount"})
	// Five valid awards for Doe, four valid plus one junk for Smith.
	for i := 0; i < 5; i++ {
		rows.AddRow("Jane Doe", "$10,000")
	}
	for i := 0; i < 4; i++ {
		rows.AddRow("John Smith", "$50,000")
	}
	rows.AddRow("John Smith", "pending")

	mock.ExpectQuery(`SELECT arbitrator_name, award_amount FROM cases`).
		WillReturnRows(rows)

	ranked, err := s.TopAveragesByName(context.Background(), Predicate{}, 5, 10)
	require.NoError(t, err)

	// Smith has only four numerically valid rows and must be excluded.
	require.Len(t, ranked, 1)
	assert.Equal(t, "Jane Doe", ranked[0].Name)
	assert.Equal(t, 5, ranked[0].CaseCount)
	assert.InDelta(t, 10000.0, ranked[0].AverageAward, 0.01)
}

func TestAverageNumericField(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT award_amount FROM cases`).
		WillReturnRows(sqlmock.NewRows([]string{"award_amount"}).
			AddRow("$10,000").
			AddRow("$20,000").
			AddRow("not awarded"))

	stats, err := s.AverageNumericField(context.Background(), "award_amount", Predicate{})
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Count)
	assert.InDelta(t, 30000.0, stats.Sum, 0.01)
	assert.InDelta(t, 15000.0, stats.Average, 0.01)
}

func TestAverageNumericField_RejectsUnknownField(t *testing.T) {
	s, _ := newMockStore(t)

	_, err := s.AverageNumericField(context.Background(), "case_id", Predicate{})
	assert.Error(t, err)
}

func TestRawQuery_RejectsWrites(t *testing.T) {
	s, _ := newMockStore(t)

	_, err := s.RawQuery(context.Background(), "DELETE FROM cases", 100)
	assert.Error(t, err)
}
