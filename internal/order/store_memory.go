package order

import (
	"context"
	"sync"
)

type MemStore struct {
	mu     sync.RWMutex
	byID   map[string]Order
	byUser map[string][]string // order ids in creation order
}

func NewMemStore() *MemStore {
	return &MemStore{
		byID:   make(map[string]Order),
		byUser: make(map[string][]string),
	}
}

func (s *MemStore) Create(ctx context.Context, o Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID[o.ID] = o
	s.byUser[o.UserID] = append(s.byUser[o.UserID], o.ID)
	return nil
}

func (s *MemStore) Get(ctx context.Context, id string) (Order, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.byID[id]
	return o, ok, nil
}

func (s *MemStore) ListByUser(ctx context.Context, userID string) ([]Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUser[userID]
	out := make([]Order, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.byID[id])
	}
	return out, nil
}
