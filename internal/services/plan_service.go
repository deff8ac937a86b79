// Package services orchestrates plan operations across the budget engine
// and the AMQP event stream.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"purse/internal/amqp"
	"purse/internal/core"
	"purse/internal/engine"
)

// EventPublisher publishes plan events. *amqp.Client satisfies it.
type EventPublisher interface {
	PublishPlanEvent(ctx context.Context, msg *amqp.PlanEventMessage) error
	Close() error
}

// PlanService wraps the budget engine and announces every successful
// mutation on the event stream. Publishing is best-effort: a broker
// failure never fails the request, the plan change is already persisted.
type PlanService struct {
	engine    *engine.Engine
	publisher EventPublisher
}

func NewPlanService(eng *engine.Engine, publisher EventPublisher) *PlanService {
	return &PlanService{
		engine:    eng,
		publisher: publisher,
	}
}

// Refresh reloads the active plan from storage.
func (s *PlanService) Refresh(ctx context.Context) {
	s.engine.Refresh(ctx)
}

// CurrentPlan returns a copy of the active plan, or nil when there is none.
func (s *PlanService) CurrentPlan() *core.BudgetPlan {
	return s.engine.CurrentPlan()
}

// TodayRecord returns a copy of today's day record, or nil.
func (s *PlanService) TodayRecord() *core.DayRecord {
	return s.engine.TodayRecord()
}

// Loading reports whether the first load has not yet completed.
func (s *PlanService) Loading() bool {
	return s.engine.Loading()
}

// CreatePlan creates this week's plan and publishes a plan_created event.
func (s *PlanService) CreatePlan(ctx context.Context, initialBudget float64) (*core.BudgetPlan, error) {
	plan, err := s.engine.CreatePlan(ctx, initialBudget)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, amqp.NewPlanEventMessage(
		core.EventPlanCreated, plan.WeekIdentifier, initialBudget, plan.CurrentBudget))

	return plan, nil
}

// RecordExpense charges amount against today and publishes an
// expense_recorded event when the charge was applied.
func (s *PlanService) RecordExpense(ctx context.Context, amount float64) bool {
	if !s.engine.RecordExpense(ctx, amount) {
		return false
	}

	if plan := s.engine.CurrentPlan(); plan != nil {
		s.publish(ctx, amqp.NewPlanEventMessage(
			core.EventExpenseRecorded, plan.WeekIdentifier, amount, plan.CurrentBudget))
	}

	return true
}

// DeletePlan removes the active plan and publishes a plan_deleted event.
func (s *PlanService) DeletePlan(ctx context.Context) {
	plan := s.engine.CurrentPlan()
	s.engine.DeletePlan(ctx)

	if plan != nil {
		s.publish(ctx, amqp.NewPlanEventMessage(
			core.EventPlanDeleted, plan.WeekIdentifier, 0, plan.CurrentBudget))
	}
}

func (s *PlanService) publish(ctx context.Context, msg *amqp.PlanEventMessage) {
	if s.publisher == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping plan event",
			"event", msg.Event)
		return
	}

	if err := s.publisher.PublishPlanEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish plan event",
			"event", msg.Event, "week", msg.WeekIdentifier, "error", err)
		// Don't fail the request - the plan change is saved locally
	}
}

// Close closes the AMQP connection, if any.
func (s *PlanService) Close() error {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			return fmt.Errorf("close plan service: %w", err)
		}
	}
	return nil
}
