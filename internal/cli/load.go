package cli

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/arblens/arblens/internal/model"
	"github.com/arblens/arblens/internal/store"
)

var loadDB string

// loadCmd represents the load command
var loadCmd = &cobra.Command{
	Use:   "load <cases.csv>",
	Short: "Load case records from a CSV export into the case database",
	Long: `Load ingests a CSV export of arbitration case records into the
SQLite case database, creating the schema if needed. Rows sharing a
case ID replace earlier ones.

The first row must be a header; recognized columns (any order):
  case_id, forum, arbitrator_name, respondent_name, consumer_attorney,
  filing_date (yyyy-mm-dd), disposition, claim_amount, award_amount,
  case_type, duplicate_of

Example:
  arblens load tx-arbitration-2024.csv --db cases.db`,
	Args: cobra.ExactArgs(1),
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().StringVar(&loadDB, "db", "", "case database path (overrides config)")
}

func runLoad(cmd *cobra.Command, args []string) error {
	path := args[0]

	cfg := loadConfig()
	if loadDB != "" {
		cfg.Store.Path = loadDB
	}

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	records, skipped, err := parseCaseCSV(f)
	if err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	if len(records) == 0 {
		return fmt.Errorf("no usable rows in %s", path)
	}

	log := newLogger()
	defer func() { _ = log.Sync() }()

	cs, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		return fmt.Errorf("open case store: %w", err)
	}
	defer cs.Close()

	ctx := context.Background()
	if err := cs.Init(ctx); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	if err := cs.InsertCases(ctx, records); err != nil {
		return fmt.Errorf("insert cases: %w", err)
	}

	fmt.Printf("Loaded %d cases into %s", len(records), cfg.Store.Path)
	if skipped > 0 {
		fmt.Printf(" (%d rows skipped, no case ID)", skipped)
	}
	fmt.Println()
	return nil
}

// parseCaseCSV reads a header-keyed CSV into case records. Rows without a
// case ID are skipped and counted; unknown columns are ignored so richer
// exports load unchanged.
func parseCaseCSV(r io.Reader) ([]model.CaseRecord, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := col["case_id"]; !ok {
		return nil, 0, fmt.Errorf("header has no case_id column")
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []model.CaseRecord
	skipped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", line, err)
		}

		rec := model.CaseRecord{
			CaseID:           field(row, "case_id"),
			Forum:            field(row, "forum"),
			ArbitratorName:   field(row, "arbitrator_name"),
			RespondentName:   field(row, "respondent_name"),
			ConsumerAttorney: field(row, "consumer_attorney"),
			Disposition:      field(row, "disposition"),
			ClaimAmount:      field(row, "claim_amount"),
			AwardAmount:      field(row, "award_amount"),
			CaseType:         field(row, "case_type"),
			DuplicateOf:      field(row, "duplicate_of"),
		}
		if rec.CaseID == "" {
			skipped++
			continue
		}
		if raw := field(row, "filing_date"); raw != "" {
			if d, err := time.Parse("2006-01-02", raw); err == nil {
				rec.FilingDate = &d
			}
		}
		records = append(records, rec)
	}

	return records, skipped, nil
}
