package repository

import (
	"context"
	"sync"

	"mwananchi-loans/domain"
)

// MemoryStore is an in-memory implementation of SessionStore used in
// development and tests.
type MemoryStore struct {
	mu             sync.RWMutex
	users          map[string]domain.UserRecord
	eligibility    map[string]domain.EligibilityData
	qualifications map[string]domain.Qualification
	drafts         map[string]domain.LoanApplicationDraft
	histories      map[string][]domain.LoanHistoryEntry
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:          make(map[string]domain.UserRecord),
		eligibility:    make(map[string]domain.EligibilityData),
		qualifications: make(map[string]domain.Qualification),
		drafts:         make(map[string]domain.LoanApplicationDraft),
		histories:      make(map[string][]domain.LoanHistoryEntry),
	}
}

func (s *MemoryStore) GetUser(_ context.Context, sessionID string) (domain.UserRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[sessionID]
	return u, ok, nil
}

func (s *MemoryStore) PutUser(_ context.Context, sessionID string, user domain.UserRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[sessionID] = user
	return nil
}

func (s *MemoryStore) GetEligibility(_ context.Context, sessionID string) (domain.EligibilityData, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.eligibility[sessionID]
	return e, ok, nil
}

func (s *MemoryStore) PutEligibility(_ context.Context, sessionID string, data domain.EligibilityData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.eligibility[sessionID] = data
	return nil
}

func (s *MemoryStore) GetQualification(_ context.Context, sessionID string) (domain.Qualification, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	q, ok := s.qualifications[sessionID]
	return q, ok, nil
}

func (s *MemoryStore) PutQualification(_ context.Context, sessionID string, q domain.Qualification) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.qualifications[sessionID] = q
	return nil
}

func (s *MemoryStore) DeleteQualification(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.qualifications, sessionID)
	return nil
}

func (s *MemoryStore) GetDraft(_ context.Context, sessionID string) (domain.LoanApplicationDraft, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.drafts[sessionID]
	return d, ok, nil
}

func (s *MemoryStore) PutDraft(_ context.Context, sessionID string, draft domain.LoanApplicationDraft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[sessionID] = draft
	return nil
}

func (s *MemoryStore) LoanHistory(_ context.Context, sessionID string) ([]domain.LoanHistoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	history := s.histories[sessionID]
	out := make([]domain.LoanHistoryEntry, len(history))
	copy(out, history)
	return out, nil
}

func (s *MemoryStore) InitLoanHistory(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[sessionID] = []domain.LoanHistoryEntry{}
	return nil
}

func (s *MemoryStore) AppendLoan(_ context.Context, sessionID string, entry domain.LoanHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.histories[sessionID] = append(s.histories[sessionID], entry)
	return nil
}
