package memory

import (
	"context"
	"sync"

	"github.com/frahmantamala/budget-tracker/internal/auth"
)

type Store struct {
	mu      sync.RWMutex
	byEmail map[string]*auth.User
}

func NewStore() *Store {
	return &Store{byEmail: make(map[string]*auth.User)}
}

func (s *Store) Create(_ context.Context, user *auth.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[user.Email]; exists {
		return auth.ErrEmailTaken
	}
	stored := *user
	s.byEmail[user.Email] = &stored
	return nil
}

func (s *Store) GetByEmail(_ context.Context, email string) (*auth.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.byEmail[email]
	if !ok {
		return nil, auth.ErrUserNotFound
	}
	found := *user
	return &found, nil
}
