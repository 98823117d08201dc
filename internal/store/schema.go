package store

import (
	"context"
	"fmt"

	"github.com/arblens/arblens/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS cases (
	case_id           TEXT PRIMARY KEY,
	forum             TEXT,
	arbitrator_name   TEXT,
	respondent_name   TEXT,
	consumer_attorney TEXT,
	filing_date       TEXT, -- ISO yyyy-mm-dd, may be empty
	disposition       TEXT,
	claim_amount      TEXT, -- free text as ingested
	award_amount      TEXT, -- free text as ingested
	case_type         TEXT,
	duplicate_of      TEXT NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_cases_arbitrator ON cases(arbitrator_name);
CREATE INDEX IF NOT EXISTS idx_cases_respondent ON cases(respondent_name);
CREATE INDEX IF NOT EXISTS idx_cases_disposition ON cases(disposition);
CREATE INDEX IF NOT EXISTS idx_cases_filing_date ON cases(filing_date);
`

// Init creates the cases table and its indexes if missing.
func (s *SQLiteStore) Init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// InsertCases bulk-inserts records in one transaction, replacing rows
// that share a case identifier. This is the ingestion seam; the engine
// itself never writes.
func (s *SQLiteStore) InsertCases(ctx context.Context, records []model.CaseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin insert: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR REPLACE INTO cases
		(case_id, forum, arbitrator_name, respondent_name, consumer_attorney,
		 filing_date, disposition, claim_amount, award_amount, case_type, duplicate_of)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		filing := ""
		if rec.FilingDate != nil {
			filing = rec.FilingDate.Format("2006-01-02")
		}
		_, err := stmt.ExecContext(ctx, rec.CaseID, rec.Forum, rec.ArbitratorName,
			rec.RespondentName, rec.ConsumerAttorney, filing, rec.Disposition,
			rec.ClaimAmount, rec.AwardAmount, rec.CaseType, rec.DuplicateOf)
		if err != nil {
			return fmt.Errorf("insert case %s: %w", rec.CaseID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit insert: %w", err)
	}
	s.log.Infow("cases loaded", "count", len(records))
	return nil
}
