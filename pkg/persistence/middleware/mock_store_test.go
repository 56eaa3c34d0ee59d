package middleware_test

import (
	"context"
	"errors"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/ports"
)

// MockStore is a simple map-based store for testing middleware.
type MockStore struct {
	data  map[string]*domain.TraceList
	loads int
	fail  error
}

func NewMockStore() *MockStore {
	return &MockStore{
		data: make(map[string]*domain.TraceList),
	}
}

func (s *MockStore) Save(ctx context.Context, list *domain.TraceList) error {
	if s.fail != nil {
		return s.fail
	}
	s.data[list.ID] = list
	return nil
}

func (s *MockStore) Load(ctx context.Context, id string) (*domain.TraceList, error) {
	s.loads++
	list, ok := s.data[id]
	if !ok {
		return nil, domain.ErrTraceListNotFound
	}
	return list, nil
}

func (s *MockStore) Delete(ctx context.Context, id string) error {
	delete(s.data, id)
	return nil
}

func (s *MockStore) List(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		keys = append(keys, k)
	}
	return keys, nil
}

var errBroken = errors.New("disk on fire")

var _ ports.TraceStore = (*MockStore)(nil)
