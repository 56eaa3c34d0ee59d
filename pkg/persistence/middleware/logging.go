package middleware

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aretw0/plantrace/pkg/domain"
	"github.com/aretw0/plantrace/pkg/ports"
)

type loggingMiddleware struct {
	next   ports.TraceStore
	logger *slog.Logger
}

// NewLoggingMiddleware logs every store operation at debug level and
// failures at error level. A missing list is not a failure.
func NewLoggingMiddleware(logger *slog.Logger) Middleware {
	return func(next ports.TraceStore) ports.TraceStore {
		return &loggingMiddleware{next: next, logger: logger}
	}
}

func (m *loggingMiddleware) Save(ctx context.Context, list *domain.TraceList) error {
	start := time.Now()
	err := m.next.Save(ctx, list)
	m.log(ctx, "save", list.ID, start, err)
	return err
}

func (m *loggingMiddleware) Load(ctx context.Context, id string) (*domain.TraceList, error) {
	start := time.Now()
	list, err := m.next.Load(ctx, id)
	m.log(ctx, "load", id, start, err)
	return list, err
}

func (m *loggingMiddleware) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := m.next.Delete(ctx, id)
	m.log(ctx, "delete", id, start, err)
	return err
}

func (m *loggingMiddleware) List(ctx context.Context) ([]string, error) {
	start := time.Now()
	ids, err := m.next.List(ctx)
	m.log(ctx, "list", "", start, err)
	return ids, err
}

func (m *loggingMiddleware) log(ctx context.Context, op, id string, start time.Time, err error) {
	attrs := []any{"op", op, "duration", time.Since(start)}
	if id != "" {
		attrs = append(attrs, "id", id)
	}
	if err != nil && !errors.Is(err, domain.ErrTraceListNotFound) {
		m.logger.ErrorContext(ctx, "Store Operation Failed", append(attrs, "err", err)...)
		return
	}
	m.logger.DebugContext(ctx, "Store Operation", attrs...)
}
