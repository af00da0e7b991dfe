package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"mwananchi-loans/domain"
)

// RedisStore is a Redis-backed implementation of SessionStore. Records are
// stored as JSON under loan:<sessionID>:<record>.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr string) *RedisStore {
	rdb := redis.NewClient(&redis.Options{
		Addr: addr,
	})
	return &RedisStore{client: rdb}
}

// Ping verifies the connection at startup.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) key(sessionID, record string) string {
	return fmt.Sprintf("loan:%s:%s", sessionID, record)
}

func (s *RedisStore) get(ctx context.Context, sessionID, record string, out any) (bool, error) {
	raw, err := s.client.Get(ctx, s.key(sessionID, record)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, err
	}
	return true, nil
}

func (s *RedisStore) put(ctx context.Context, sessionID, record string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(sessionID, record), raw, 0).Err()
}

func (s *RedisStore) GetUser(ctx context.Context, sessionID string) (domain.UserRecord, bool, error) {
	var u domain.UserRecord
	ok, err := s.get(ctx, sessionID, keyUser, &u)
	return u, ok, err
}

func (s *RedisStore) PutUser(ctx context.Context, sessionID string, user domain.UserRecord) error {
	return s.put(ctx, sessionID, keyUser, user)
}

func (s *RedisStore) GetEligibility(ctx context.Context, sessionID string) (domain.EligibilityData, bool, error) {
	var e domain.EligibilityData
	ok, err := s.get(ctx, sessionID, keyEligibility, &e)
	return e, ok, err
}

func (s *RedisStore) PutEligibility(ctx context.Context, sessionID string, data domain.EligibilityData) error {
	return s.put(ctx, sessionID, keyEligibility, data)
}

func (s *RedisStore) GetQualification(ctx context.Context, sessionID string) (domain.Qualification, bool, error) {
	var q domain.Qualification
	ok, err := s.get(ctx, sessionID, keyQualification, &q)
	return q, ok, err
}

func (s *RedisStore) PutQualification(ctx context.Context, sessionID string, q domain.Qualification) error {
	return s.put(ctx, sessionID, keyQualification, q)
}

func (s *RedisStore) DeleteQualification(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, s.key(sessionID, keyQualification)).Err()
}

func (s *RedisStore) GetDraft(ctx context.Context, sessionID string) (domain.LoanApplicationDraft, bool, error) {
	var d domain.LoanApplicationDraft
	ok, err := s.get(ctx, sessionID, keyApplication, &d)
	return d, ok, err
}

func (s *RedisStore) PutDraft(ctx context.Context, sessionID string, draft domain.LoanApplicationDraft) error {
	return s.put(ctx, sessionID, keyApplication, draft)
}

func (s *RedisStore) LoanHistory(ctx context.Context, sessionID string) ([]domain.LoanHistoryEntry, error) {
	var history []domain.LoanHistoryEntry
	ok, err := s.get(ctx, sessionID, keyLoanHistory, &history)
	if err != nil {
		return nil, err
	}
	if !ok {
		return []domain.LoanHistoryEntry{}, nil
	}
	return history, nil
}

func (s *RedisStore) InitLoanHistory(ctx context.Context, sessionID string) error {
	return s.put(ctx, sessionID, keyLoanHistory, []domain.LoanHistoryEntry{})
}

// AppendLoan reads, appends and rewrites the history array. The session is
// the only writer, so the read-modify-write needs no locking.
func (s *RedisStore) AppendLoan(ctx context.Context, sessionID string, entry domain.LoanHistoryEntry) error {
	history, err := s.LoanHistory(ctx, sessionID)
	if err != nil {
		return err
	}
	return s.put(ctx, sessionID, keyLoanHistory, append(history, entry))
}
