package model

import "time"

// CaseRecord is one arbitration case as stored in the case database.
// The engine treats records as read-only; free-text fields (claim and
// award amounts, disposition) are validated at aggregation time rather
// than at load time.
type CaseRecord struct {
	CaseID           string     `json:"case_id"`                     // unique within the store
	Forum            string     `json:"forum,omitempty"`             // administering body (AAA, JAMS, ...)
	ArbitratorName   string     `json:"arbitrator_name,omitempty"`   // as filed, unstandardized
	RespondentName   string     `json:"respondent_name,omitempty"`   // corporate party name
	ConsumerAttorney string     `json:"consumer_attorney,omitempty"`
	FilingDate       *time.Time `json:"filing_date,omitempty"`
	Disposition      string     `json:"disposition,omitempty"`  // free-text outcome label
	ClaimAmount      string     `json:"claim_amount,omitempty"` // free text, may be non-numeric
	AwardAmount      string     `json:"award_amount,omitempty"` // free text, may be non-numeric
	CaseType         string     `json:"case_type,omitempty"`
	DuplicateOf      string     `json:"duplicate_of,omitempty"` // non-empty marks a duplicate row
}

// DispositionCount is one row of a disposition-grouped aggregate.
type DispositionCount struct {
	Disposition string `json:"disposition"`
	Count       int    `json:"count"`
}

// NameCount pairs a stored name variant with its case count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// AwardStats holds award aggregates over rows with a numerically valid
// award amount.
type AwardStats struct {
	Count   int     `json:"count"`
	Sum     float64 `json:"sum"`
	Average float64 `json:"average"`
}
