// Package worker exports plan events from the event stream to the
// external week log.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"purse/internal/amqp"
	"purse/internal/core"
	"purse/internal/engine"
	"purse/internal/sheets"
	"purse/internal/week"
)

// ExportWorker consumes plan events and appends them to a week log. It can
// also export a snapshot of the stored plan directly, as a backstop for
// events lost while the worker was down.
type ExportWorker struct {
	store engine.PlanStore
	log   sheets.WeekLogWriter
	now   func() time.Time
}

func NewExportWorker(store engine.PlanStore, log sheets.WeekLogWriter) *ExportWorker {
	return &ExportWorker{
		store: store,
		log:   log,
		now:   time.Now,
	}
}

// HandleEvent processes a single plan event message from AMQP.
func (w *ExportWorker) HandleEvent(ctx context.Context, msg *amqp.PlanEventMessage) error {
	slog.InfoContext(ctx, "Processing plan event",
		"event", msg.Event,
		"week", msg.WeekIdentifier)

	entry := core.WeekLogEntry{
		WeekIdentifier: msg.WeekIdentifier,
		RecordedAt:     msg.Timestamp,
		Event:          msg.Event,
		Amount:         msg.Amount,
		CurrentBudget:  msg.CurrentBudget,
	}

	ref, err := w.log.AppendWeekLog(ctx, entry)
	if err != nil {
		return fmt.Errorf("append to week log: %w", err)
	}

	slog.InfoContext(ctx, "Exported plan event",
		"event", msg.Event,
		"week", msg.WeekIdentifier,
		"ref", ref)

	return nil
}

// ExportCurrentPlan looks up the stored plan for the current week and
// appends a snapshot entry for it. Used at startup and on a timer to
// recover from missed events. An absent plan is not an error; there is
// simply nothing to export.
func (w *ExportWorker) ExportCurrentPlan(ctx context.Context) error {
	plans, err := w.store.LoadAll(ctx)
	if err != nil {
		return fmt.Errorf("load plans: %w", err)
	}

	now := w.now()
	id := week.Identifier(now)
	for _, p := range plans {
		if p.WeekIdentifier != id {
			continue
		}

		entry := core.WeekLogEntry{
			WeekIdentifier: p.WeekIdentifier,
			RecordedAt:     now,
			Event:          core.EventSnapshot,
			Amount:         p.TotalExpenses(),
			CurrentBudget:  p.CurrentBudget,
		}

		ref, err := w.log.AppendWeekLog(ctx, entry)
		if err != nil {
			return fmt.Errorf("append snapshot: %w", err)
		}

		slog.InfoContext(ctx, "Exported plan snapshot",
			"week", p.WeekIdentifier,
			"currentBudget", p.CurrentBudget,
			"ref", ref)
		return nil
	}

	slog.InfoContext(ctx, "No plan for the current week, nothing to export", "week", id)
	return nil
}
