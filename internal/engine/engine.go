// Package engine holds the weekly budgeting rules: one plan per calendar
// week, expenses recorded against today's record, and the untouched
// remainder spread evenly over the days still ahead.
package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"purse/internal/core"
	"purse/internal/week"
)

// Engine keeps an in-memory mirror of the active week's plan and writes
// every mutation through to the store before updating the mirror.
// All methods are safe for concurrent use.
type Engine struct {
	mu    sync.Mutex
	store PlanStore
	now   func() time.Time

	current *core.BudgetPlan
	loading bool
}

// New creates an engine backed by store, using the wall clock.
func New(store PlanStore) *Engine {
	return NewWithClock(store, time.Now)
}

// NewWithClock creates an engine with an injected clock. Tests use this to
// pin "today" to a known date.
func NewWithClock(store PlanStore, now func() time.Time) *Engine {
	return &Engine{
		store:   store,
		now:     now,
		loading: true,
	}
}

// Refresh reloads the persisted collection and selects the plan for the
// current week, if any. A storage failure is logged and treated as an
// empty collection so the caller can still create a fresh plan.
func (e *Engine) Refresh(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()
	defer func() { e.loading = false }()

	plans, err := e.store.LoadAll(ctx)
	if err != nil {
		slog.WarnContext(ctx, "Failed to load plans, starting empty", "error", err)
		e.current = nil
		return
	}

	id := week.Identifier(e.now())
	e.current = nil
	for i := range plans {
		if plans[i].WeekIdentifier == id {
			p := plans[i].Clone()
			e.current = &p
			return
		}
	}
}

// CreatePlan builds a plan for the current week from initialBudget and
// persists it, replacing any existing plan for the same week. Each day's
// allotment is the full budget divided by the days remaining at that day,
// so earlier days carry a smaller slice than the final one. The budget is
// taken as given; a non-positive value yields a plan with non-positive
// allotments. Input validation is the presentation layer's job.
func (e *Engine) CreatePlan(ctx context.Context, initialBudget float64) (*core.BudgetPlan, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	now := e.now()
	dates := week.CurrentWeekDates(now)
	days := make([]core.DayRecord, core.DaysPerWeek)
	for i := range days {
		remaining := core.DaysPerWeek - i
		allotment := initialBudget / float64(remaining)
		days[i] = core.DayRecord{
			DayOfWeek:       week.DayLabel(dates[i]),
			DaysRemaining:   remaining,
			DailyBudget:     core.Amount(allotment),
			Expenses:        0,
			RemainingBudget: core.Amount(allotment),
			Date:            dates[i],
		}
	}

	plan := core.BudgetPlan{
		CreatedAt:      now,
		WeekIdentifier: week.Identifier(now),
		InitialBudget:  initialBudget,
		CurrentBudget:  initialBudget,
		Days:           days,
	}

	if err := e.store.Save(ctx, plan); err != nil {
		return nil, err
	}

	stored := plan.Clone()
	e.current = &stored
	slog.InfoContext(ctx, "Plan created",
		"week", plan.WeekIdentifier, "initialBudget", initialBudget)

	out := plan.Clone()
	return &out, nil
}

// RecordExpense charges amount against today's record and reallocates the
// remaining overall budget over the days after today. The amount is
// applied as given, without bounds-checking. It reports whether the
// expense was applied: false when no plan is active, today has no matching
// day record, or persistence fails. On failure the in-memory plan is left
// untouched.
func (e *Engine) RecordExpense(ctx context.Context, amount float64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return false
	}
	idx := e.todayIndexLocked()
	if idx < 0 {
		slog.WarnContext(ctx, "No day record matches today, expense dropped",
			"week", e.current.WeekIdentifier)
		return false
	}

	next := e.current.Clone()
	day := &next.Days[idx]
	day.Expenses += core.Amount(amount)
	day.Recompute()

	// The overall budget is allowed to go negative when spending
	// overruns it; only per-day remainders are floored.
	next.CurrentBudget -= amount
	for i := idx + 1; i < len(next.Days); i++ {
		next.Days[i].DailyBudget = core.Amount(next.CurrentBudget / float64(len(next.Days)-i))
		next.Days[i].Recompute()
	}

	if err := e.store.Save(ctx, next); err != nil {
		slog.ErrorContext(ctx, "Failed to persist expense",
			"week", next.WeekIdentifier, "amount", amount, "error", err)
		return false
	}

	e.current = &next
	slog.InfoContext(ctx, "Expense recorded",
		"week", next.WeekIdentifier, "amount", amount,
		"currentBudget", next.CurrentBudget)
	return true
}

// DeletePlan removes the active week's plan from the store and clears the
// in-memory mirror. The mirror is cleared even when the store fails, so a
// stale plan never lingers after an explicit delete.
func (e *Engine) DeletePlan(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current != nil {
		if err := e.store.Delete(ctx, e.current.WeekIdentifier); err != nil {
			slog.ErrorContext(ctx, "Failed to delete plan",
				"week", e.current.WeekIdentifier, "error", err)
		}
	}
	e.current = nil
}

// CurrentPlan returns a deep copy of the active plan, or nil when the
// current week has none.
func (e *Engine) CurrentPlan() *core.BudgetPlan {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return nil
	}
	p := e.current.Clone()
	return &p
}

// TodayRecord returns a copy of today's day record, or nil when there is
// no active plan or no record dated today.
func (e *Engine) TodayRecord() *core.DayRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil {
		return nil
	}
	idx := e.todayIndexLocked()
	if idx < 0 {
		return nil
	}
	d := e.current.Days[idx]
	return &d
}

// Loading reports whether the first Refresh has not yet completed.
func (e *Engine) Loading() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loading
}

// todayIndexLocked finds the day record whose date matches today by
// calendar date, not by label. Callers must hold e.mu.
func (e *Engine) todayIndexLocked() int {
	if e.current == nil {
		return -1
	}
	now := e.now()
	for i := range e.current.Days {
		if week.IsToday(e.current.Days[i].Date, now) {
			return i
		}
	}
	return -1
}
