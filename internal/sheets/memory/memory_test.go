package memory

import (
	"context"
	"testing"
	"time"

	"purse/internal/core"
)

func TestAppendWeekLog(t *testing.T) {
	s := New()
	ctx := context.Background()

	entry := core.WeekLogEntry{
		WeekIdentifier: "2025-36",
		RecordedAt:     time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC),
		Event:          core.EventExpenseRecorded,
		Amount:         42.5,
		CurrentBudget:  657.5,
	}

	ref, err := s.AppendWeekLog(ctx, entry)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:1" {
		t.Errorf("ref = %q, want mem:1", ref)
	}

	ref, err = s.AppendWeekLog(ctx, entry)
	if err != nil {
		t.Fatalf("append: %v", err)
	}
	if ref != "mem:2" {
		t.Errorf("ref = %q, want mem:2", ref)
	}

	entries := s.Entries()
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Event != core.EventExpenseRecorded || entries[0].Amount != 42.5 {
		t.Errorf("entry mismatch: %+v", entries[0])
	}
}

func TestAppendWeekLogRejectsIncomplete(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.AppendWeekLog(ctx, core.WeekLogEntry{Event: "snapshot"}); err == nil {
		t.Error("missing week identifier should be rejected")
	}
	if _, err := s.AppendWeekLog(ctx, core.WeekLogEntry{WeekIdentifier: "2025-36"}); err == nil {
		t.Error("missing event should be rejected")
	}
	if len(s.Entries()) != 0 {
		t.Fatal("rejected entries must not be stored")
	}
}

func TestEntriesReturnsCopy(t *testing.T) {
	s := New()
	if _, err := s.AppendWeekLog(context.Background(), core.WeekLogEntry{
		WeekIdentifier: "2025-36",
		Event:          core.EventPlanCreated,
	}); err != nil {
		t.Fatalf("append: %v", err)
	}

	got := s.Entries()
	got[0].WeekIdentifier = "changed"

	if s.Entries()[0].WeekIdentifier != "2025-36" {
		t.Fatal("mutating the returned slice leaked into the store")
	}
}
