package store

import (
	"fmt"
	"strconv"
	"strings"
)

// buildWhere compiles a predicate into a WHERE clause and its argument
// list. The clause always contains at least one condition (the duplicate
// exclusion) unless IncludeDuplicates is set and nothing else matches,
// in which case it returns "1=1" for splice safety.
func buildWhere(p Predicate) (string, []any) {
	var conds []string
	var args []any

	if !p.IncludeDuplicates {
		conds = append(conds, "(duplicate_of IS NULL OR duplicate_of = '')")
	}
	if p.ArbitratorLastName != "" {
		conds = append(conds, "arbitrator_name LIKE ? COLLATE NOCASE")
		args = append(args, "%"+p.ArbitratorLastName+"%")
	}
	if len(p.ArbitratorIn) > 0 {
		conds = append(conds, inClause("arbitrator_name", len(p.ArbitratorIn)))
		for _, v := range p.ArbitratorIn {
			args = append(args, v)
		}
	}
	if p.RespondentLike != "" {
		conds = append(conds, "respondent_name LIKE ? COLLATE NOCASE")
		args = append(args, "%"+p.RespondentLike+"%")
	}
	if len(p.RespondentIn) > 0 {
		conds = append(conds, inClause("respondent_name", len(p.RespondentIn)))
		for _, v := range p.RespondentIn {
			args = append(args, v)
		}
	}
	if p.DispositionLike != "" {
		conds = append(conds, "disposition LIKE ? COLLATE NOCASE")
		args = append(args, "%"+p.DispositionLike+"%")
	}
	if p.CaseType != "" {
		conds = append(conds, "case_type = ? COLLATE NOCASE")
		args = append(args, p.CaseType)
	}
	if p.RequireFilingDate || p.YearFrom > 0 || p.YearTo > 0 {
		conds = append(conds, "filing_date IS NOT NULL AND filing_date <> ''")
	}
	if p.YearFrom > 0 {
		conds = append(conds, "substr(filing_date, 1, 4) >= ?")
		args = append(args, strconv.Itoa(p.YearFrom))
	}
	if p.YearTo > 0 {
		conds = append(conds, "substr(filing_date, 1, 4) <= ?")
		args = append(args, strconv.Itoa(p.YearTo))
	}

	if len(conds) == 0 {
		return "1=1", nil
	}
	return strings.Join(conds, " AND "), args
}

// inClause renders "col IN (?, ?, ...)" with n placeholders.
func inClause(column string, n int) string {
	return fmt.Sprintf("%s IN (%s)", column, strings.TrimSuffix(strings.Repeat("?,", n), ","))
}

// checkColumn rejects column names outside the allowed set before they
// are spliced into SQL.
func checkColumn(column string) error {
	if !allowedColumns[column] {
		return fmt.Errorf("column %q not allowed in queries", column)
	}
	return nil
}
