package middleware

import (
	"context"
	"time"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/ports"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

type cacheMiddleware struct {
	next  ports.TraceStore
	lists *expirable.LRU[string, *domain.TraceList]
}

// NewCacheMiddleware keeps up to size recently saved or loaded lists in
// memory and serves Load from them. Stored lists are immutable once saved.
// Entries leave on Delete, on LRU eviction or ttl after they were cached;
// ttl should not exceed the backend's own expiry. ttl <= 0 never expires.
// size <= 0 disables caching.
func NewCacheMiddleware(size int, ttl time.Duration) Middleware {
	return func(next ports.TraceStore) ports.TraceStore {
		if size <= 0 {
			return next
		}
		return &cacheMiddleware{
			next:  next,
			lists: expirable.NewLRU[string, *domain.TraceList](size, nil, ttl),
		}
	}
}

func (m *cacheMiddleware) Save(ctx context.Context, list *domain.TraceList) error {
	if err := m.next.Save(ctx, list); err != nil {
		return err
	}
	m.lists.Add(list.ID, list)
	return nil
}

func (m *cacheMiddleware) Load(ctx context.Context, id string) (*domain.TraceList, error) {
	if list, ok := m.lists.Get(id); ok {
		return list, nil
	}

	list, err := m.next.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	m.lists.Add(id, list)
	return list, nil
}

func (m *cacheMiddleware) Delete(ctx context.Context, id string) error {
	m.lists.Remove(id)
	return m.next.Delete(ctx, id)
}

func (m *cacheMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}
