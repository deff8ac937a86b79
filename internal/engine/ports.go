package engine

import (
	"context"

	"purse/internal/core"
)

// PlanStore is the engine's outbound port: a durable collection of budget
// plans keyed by week identifier.
//
// LoadAll returns the whole persisted collection; a malformed payload is an
// implementation concern and surfaces as an empty collection, not an error.
// Save upserts by week identifier (last write replaces). Delete is a no-op
// for an absent key.
type PlanStore interface {
	LoadAll(ctx context.Context) ([]core.BudgetPlan, error)
	SaveAll(ctx context.Context, plans []core.BudgetPlan) error
	Save(ctx context.Context, plan core.BudgetPlan) error
	Delete(ctx context.Context, weekIdentifier string) error
}
