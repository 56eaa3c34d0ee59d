package ports

import (
	"context"

	"github.com/aretw0/plantrace/pkg/domain"
)

// TraceStore defines the interface for persisting generated trace lists.
type TraceStore interface {
	// Save persists the list under its ID, replacing any previous version.
	Save(ctx context.Context, list *domain.TraceList) error

	// Load retrieves a list by ID.
	// Returns domain.ErrTraceListNotFound if the list does not exist.
	Load(ctx context.Context, id string) (*domain.TraceList, error)

	// Delete removes a list by ID.
	Delete(ctx context.Context, id string) error

	// List returns the IDs of the stored lists.
	List(ctx context.Context) ([]string, error)
}
