package TaskGen

import (
	"context"
	"sync"
	"time"
)

// MemoryTaskStore is an in-process TaskStore used in tests and in local
// development without Firebase credentials.
type MemoryTaskStore struct {
	mu   sync.Mutex
	sets map[string]*DailyTaskSet
}

func NewMemoryTaskStore() *MemoryTaskStore {
	return &MemoryTaskStore{sets: make(map[string]*DailyTaskSet)}
}

func (s *MemoryTaskStore) Exists(ctx context.Context, dateKey string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sets[dateKey]
	return ok, nil
}

func (s *MemoryTaskStore) Create(ctx context.Context, set *DailyTaskSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sets[set.DateKey]; ok {
		return ErrAlreadyExists
	}
	stored := *set
	stored.CreatedAt = time.Now().UTC()
	s.sets[set.DateKey] = &stored
	return nil
}

func (s *MemoryTaskStore) Get(ctx context.Context, dateKey string) (*DailyTaskSet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	set, ok := s.sets[dateKey]
	if !ok {
		return nil, ErrNotFound
	}
	return set, nil
}
