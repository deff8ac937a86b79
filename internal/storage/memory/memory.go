// Package memory holds the plan collection in process memory. It backs the
// "memory" data backend and keeps tests off the filesystem.
package memory

import (
	"context"
	"sync"

	"purse/internal/core"
	"purse/internal/engine"
)

var _ engine.PlanStore = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	plans []core.BudgetPlan
}

func New() *Store {
	return &Store{}
}

func (s *Store) LoadAll(_ context.Context) ([]core.BudgetPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.BudgetPlan, 0, len(s.plans))
	for _, p := range s.plans {
		out = append(out, p.Clone())
	}
	return out, nil
}

func (s *Store) SaveAll(_ context.Context, plans []core.BudgetPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.plans = s.plans[:0]
	for _, p := range plans {
		s.plans = append(s.plans, p.Clone())
	}
	return nil
}

func (s *Store) Save(_ context.Context, plan core.BudgetPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]core.BudgetPlan, 0, len(s.plans)+1)
	for _, p := range s.plans {
		if p.WeekIdentifier != plan.WeekIdentifier {
			kept = append(kept, p)
		}
	}
	s.plans = append(kept, plan.Clone())
	return nil
}

func (s *Store) Delete(_ context.Context, weekIdentifier string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]core.BudgetPlan, 0, len(s.plans))
	for _, p := range s.plans {
		if p.WeekIdentifier != weekIdentifier {
			kept = append(kept, p)
		}
	}
	s.plans = kept
	return nil
}
