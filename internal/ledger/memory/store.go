package memory

import (
	"context"
	"sync"

	"github.com/frahmantamala/budget-tracker/internal/ledger"
)

// Store keeps expense records in a slice so insertion order is the
// iteration order. All operations are linear scans.
type Store struct {
	mu      sync.RWMutex
	records []*ledger.ExpenseRecord
}

func NewStore() *Store {
	return &Store{records: make([]*ledger.ExpenseRecord, 0)}
}

func (s *Store) Insert(_ context.Context, rec *ledger.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *rec
	s.records = append(s.records, &stored)
	return nil
}

func (s *Store) Get(_ context.Context, id string) (*ledger.ExpenseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.records {
		if rec.ID == id {
			found := *rec
			return &found, nil
		}
	}
	return nil, ledger.ErrRecordNotFound
}

func (s *Store) Update(_ context.Context, rec *ledger.ExpenseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, existing := range s.records {
		if existing.ID == rec.ID {
			stored := *rec
			s.records[i] = &stored
			return nil
		}
	}
	return ledger.ErrRecordNotFound
}

func (s *Store) Delete(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, rec := range s.records {
		if rec.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) List(_ context.Context) ([]*ledger.ExpenseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*ledger.ExpenseRecord, len(s.records))
	for i, rec := range s.records {
		copied := *rec
		out[i] = &copied
	}
	return out, nil
}
