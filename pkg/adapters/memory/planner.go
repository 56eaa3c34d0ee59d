package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aretw0/plantrace/pkg/strips"
)

// Planner implements ports.Planner by replaying scripted plans in rotation.
// Plans are operator calls resolved against the problem passed to Plan.
type Planner struct {
	mu    sync.Mutex
	plans [][]string
	delay time.Duration
	calls int
}

// NewPlanner creates a scripted planner. Each plan is a list of calls such as
// "(flip a)" or "flip(a)".
func NewPlanner(plans ...[]string) *Planner {
	return &Planner{plans: plans}
}

// WithDelay makes every Plan call take at least d, honoring cancellation.
func (p *Planner) WithDelay(d time.Duration) *Planner {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = d
	return p
}

// Plan returns the next scripted plan.
func (p *Planner) Plan(ctx context.Context, problem *strips.Problem) ([]strips.Operator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	if len(p.plans) == 0 {
		p.mu.Unlock()
		return nil, fmt.Errorf("scripted planner has no plans")
	}
	calls := p.plans[p.calls%len(p.plans)]
	p.calls++
	delay := p.delay
	p.mu.Unlock()

	if delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}

	return problem.ResolvePlan(calls)
}

// Calls reports how many plans were requested.
func (p *Planner) Calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.calls
}
