package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/plantrace/pkg/domain"
)

// Store implements ports.TraceStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string][]byte
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string][]byte),
	}
}

// Save persists the list in memory.
func (s *Store) Save(ctx context.Context, list *domain.TraceList) error {
	// Serialize to ensure isolation: callers can't mutate stored lists by pointer
	data, err := json.Marshal(list)
	if err != nil {
		return fmt.Errorf("failed to marshal trace list: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[list.ID] = data
	return nil
}

// Load retrieves a list from memory.
func (s *Store) Load(ctx context.Context, id string) (*domain.TraceList, error) {
	s.mu.RLock()
	data, ok := s.data[id]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrTraceListNotFound
	}

	var list domain.TraceList
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to unmarshal trace list: %w", err)
	}
	return &list, nil
}

// Delete removes a list.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns stored list IDs, sorted.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
