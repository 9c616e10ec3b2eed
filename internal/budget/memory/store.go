package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/frahmantamala/budget-tracker/internal/budget"
)

type Store struct {
	mu     sync.RWMutex
	limits map[string]budget.Limit
}

func NewStore() *Store {
	return &Store{limits: make(map[string]budget.Limit)}
}

func (s *Store) Put(_ context.Context, limit budget.Limit) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.limits[limit.Category] = limit
	return nil
}

func (s *Store) Get(_ context.Context, category string) (*budget.Limit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	limit, ok := s.limits[category]
	if !ok {
		return nil, budget.ErrLimitNotFound
	}
	return &limit, nil
}

func (s *Store) List(_ context.Context) ([]budget.Limit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]budget.Limit, 0, len(s.limits))
	for _, limit := range s.limits {
		out = append(out, limit)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}
