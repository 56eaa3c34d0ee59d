package registry

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/plantrace/pkg/ports"
	"github.com/aretw0/plantrace/pkg/strips"
)

// Registry manages the available planners by name.
type Registry struct {
	mu       sync.RWMutex
	planners map[string]ports.Planner
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		planners: make(map[string]ports.Planner),
	}
}

// Register adds a planner to the registry.
// If a planner with the same name exists, it is overwritten.
func (r *Registry) Register(name string, p ports.Planner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.planners[name] = p
}

// Get looks up a planner by name.
func (r *Registry) Get(name string) (ports.Planner, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.planners[name]
	return p, ok
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.planners))
	for name := range r.planners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Plan looks up a planner by name and runs it on problem.
// Returns an error if the planner is not found.
func (r *Registry) Plan(ctx context.Context, name string, problem *strips.Problem) ([]strips.Operator, error) {
	p, ok := r.Get(name)
	if !ok {
		return nil, fmt.Errorf("planner not found: %s", name)
	}
	return p.Plan(ctx, problem)
}
