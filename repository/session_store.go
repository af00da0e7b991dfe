package repository

import (
	"context"

	"mwananchi-loans/domain"
)

// Persisted record names within a session. They mirror the storage keys the
// flow has always used, so a dump of the store reads the same way.
const (
	keyUser          = "user"
	keyLoanHistory   = "loanHistory"
	keyEligibility   = "eligibilityData"
	keyApplication   = "loanApplication"
	keyQualification = "qualification"
)

// SessionStore persists the per-session records of the loan flow. Every
// write is a full overwrite of a well-formed record; the loan history is
// append-only. There is a single logical writer per session, so no
// transactional discipline is needed.
type SessionStore interface {
	GetUser(ctx context.Context, sessionID string) (domain.UserRecord, bool, error)
	PutUser(ctx context.Context, sessionID string, user domain.UserRecord) error

	GetEligibility(ctx context.Context, sessionID string) (domain.EligibilityData, bool, error)
	PutEligibility(ctx context.Context, sessionID string, data domain.EligibilityData) error

	GetQualification(ctx context.Context, sessionID string) (domain.Qualification, bool, error)
	PutQualification(ctx context.Context, sessionID string, q domain.Qualification) error
	DeleteQualification(ctx context.Context, sessionID string) error

	GetDraft(ctx context.Context, sessionID string) (domain.LoanApplicationDraft, bool, error)
	PutDraft(ctx context.Context, sessionID string, draft domain.LoanApplicationDraft) error

	// LoanHistory returns the ordered history, empty when none exists.
	LoanHistory(ctx context.Context, sessionID string) ([]domain.LoanHistoryEntry, error)
	InitLoanHistory(ctx context.Context, sessionID string) error
	AppendLoan(ctx context.Context, sessionID string, entry domain.LoanHistoryEntry) error
}
