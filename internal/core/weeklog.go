package core

import "time"

// Plan event kinds carried on the message bus and written to the week log.
const (
	EventPlanCreated     = "plan_created"
	EventExpenseRecorded = "expense_recorded"
	EventPlanDeleted     = "plan_deleted"
	EventSnapshot        = "snapshot"
)

// WeekLogEntry is one flattened row of budget activity, exported to the
// external ledger by the worker.
type WeekLogEntry struct {
	WeekIdentifier string
	RecordedAt     time.Time
	Event          string
	Amount         float64
	CurrentBudget  float64
}
