package core

import (
	"errors"
	"math"
	"time"
)

// DaysPerWeek is the fixed length of every plan, Monday through Sunday.
const DaysPerWeek = 7

type (
	// DayRecord is one calendar day's slice of a plan: what was allotted
	// to it at the last recompute, what has been spent, and what is left.
	DayRecord struct {
		DayOfWeek       string    `json:"dayOfWeek"`
		DaysRemaining   int       `json:"daysRemaining"`
		DailyBudget     Amount    `json:"dailyBudget"`
		Expenses        Amount    `json:"expenses"`
		RemainingBudget Amount    `json:"remainingBudget"`
		Date            time.Time `json:"date"`
	}

	// BudgetPlan is one week's plan. InitialBudget is fixed at creation;
	// CurrentBudget is the running total still available for the rest of
	// the week and may go negative when the user overspends.
	BudgetPlan struct {
		CreatedAt      time.Time   `json:"createdAt"`
		WeekIdentifier string      `json:"weekIdentifier"`
		InitialBudget  float64     `json:"initialBudget"`
		CurrentBudget  float64     `json:"currentBudget"`
		Days           []DayRecord `json:"days"`
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrNoActivePlan  = errors.New("no active plan")
	ErrMalformedPlan = errors.New("malformed plan")
)

// ValidateAmount rejects non-finite and non-positive money input. Only
// the HTTP layer gates on it; the engine applies whatever value it is
// handed and produces degenerate but well-defined plans for bad input.
func ValidateAmount(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the structural invariants of a persisted plan.
func (p BudgetPlan) Validate() error {
	if p.WeekIdentifier == "" {
		return ErrMalformedPlan
	}
	if len(p.Days) != DaysPerWeek {
		return ErrMalformedPlan
	}
	return nil
}

// TotalExpenses sums the recorded expenses across all days.
func (p BudgetPlan) TotalExpenses() float64 {
	var total float64
	for _, d := range p.Days {
		total += float64(d.Expenses)
	}
	return total
}

// Clone returns a deep copy; Days is the only reference field.
func (p BudgetPlan) Clone() BudgetPlan {
	out := p
	out.Days = append([]DayRecord(nil), p.Days...)
	return out
}

// Recompute re-derives the day's remaining budget, floored at zero.
func (d *DayRecord) Recompute() {
	remaining := float64(d.DailyBudget) - float64(d.Expenses)
	if remaining < 0 {
		remaining = 0
	}
	d.RemainingBudget = Amount(remaining)
}
