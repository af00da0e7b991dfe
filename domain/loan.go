package domain

import "time"

type LoanStatus string

const LoanStatusDisbursed LoanStatus = "disbursed"

// LoanHistoryEntry is appended to the session's loan history on each
// successful disbursement. Entries are never mutated or removed.
type LoanHistoryEntry struct {
	ID     int64      `json:"id"`
	Amount float64    `json:"amount"`
	Date   time.Time  `json:"date"`
	Status LoanStatus `json:"status"`
}

// SavingsPlan is one catalog tier. LoanLimit is the effective limit after
// capping against the qualification ceiling; ExistingOnly tiers require a
// non-empty loan history.
type SavingsPlan struct {
	Savings      float64 `json:"savings"`
	LoanLimit    float64 `json:"loanLimit"`
	ExistingOnly bool    `json:"existingOnly,omitempty"`
}

// Qualification is one qualification attempt. The ceiling is drawn once when
// the attempt starts and stays stable until the attempt is consumed by a
// disbursement.
type Qualification struct {
	QualifiedLoanAmount float64      `json:"qualifiedLoanAmount"`
	Selected            *SavingsPlan `json:"selected,omitempty"`
}

// LoanApplicationDraft is the single-slot draft persisted when the user
// confirms a plan. The review step reads it without modifying it.
type LoanApplicationDraft struct {
	QualifiedLoanAmount float64 `json:"qualifiedLoanAmount"`
	Savings             float64 `json:"savings"`
	LoanLimit           float64 `json:"loanLimit"`
	ExistingOnly        bool    `json:"existingOnly,omitempty"`
}

// DisbursementBreakdown is derived from the awarded amount at review time and
// never persisted. Interest + ServiceFee + Disbursable always equals the
// awarded amount.
type DisbursementBreakdown struct {
	Interest    float64 `json:"interest"`
	ServiceFee  float64 `json:"serviceFee"`
	Disbursable float64 `json:"disbursable"`
}
