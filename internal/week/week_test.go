package week

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIdentifier(t *testing.T) {
	cases := []struct {
		in  time.Time
		out string
	}{
		{date(2025, time.September, 1), "2025-36"},
		{date(2025, time.September, 6), "2025-36"}, // Saturday of the same week
		{date(2024, time.January, 1), "2024-01"},
		{date(2023, time.December, 31), "2023-53"},
	}
	for _, tc := range cases {
		if got := Identifier(tc.in); got != tc.out {
			t.Fatalf("Identifier(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestIdentifierIdempotent(t *testing.T) {
	now := time.Date(2025, time.September, 3, 15, 42, 7, 0, time.Local)
	if a, b := Identifier(now), Identifier(now); a != b {
		t.Fatalf("same instant produced %q and %q", a, b)
	}
}

func TestIdentifierRollsOnSunday(t *testing.T) {
	// The formula's week number is Sunday-aligned while plans span
	// Monday..Sunday: the identifier is stable Monday through Saturday and
	// then changes on the plan's own Sunday. Known quirk of the preserved
	// formula; do not "fix" without changing the identifier semantics.
	monday := date(2025, time.September, 1)
	want := Identifier(monday)
	for i := 1; i < 6; i++ {
		d := monday.AddDate(0, 0, i)
		if got := Identifier(d); got != want {
			t.Fatalf("day %d of the week got %q, want %q", i, got, want)
		}
	}
	sunday := monday.AddDate(0, 0, 6)
	if got := Identifier(sunday); got == want {
		t.Fatalf("Sunday unexpectedly kept identifier %q", got)
	}
}

func TestLastMonday(t *testing.T) {
	cases := []struct {
		in, out time.Time
	}{
		{time.Date(2025, time.September, 1, 23, 30, 0, 0, time.Local), date(2025, time.September, 1)}, // Monday stays Monday
		{date(2025, time.September, 3), date(2025, time.September, 1)},                                // Wednesday
		{date(2025, time.September, 7), date(2025, time.September, 1)},                                // Sunday
	}
	for _, tc := range cases {
		got := LastMonday(tc.in)
		if !got.Equal(tc.out) {
			t.Fatalf("LastMonday(%v) = %v, want %v", tc.in, got, tc.out)
		}
		if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 {
			t.Fatalf("LastMonday(%v) not at midnight: %v", tc.in, got)
		}
	}
}

func TestCurrentWeekDates(t *testing.T) {
	now := time.Date(2025, time.September, 4, 9, 15, 0, 0, time.Local) // Thursday
	dates := CurrentWeekDates(now)
	if len(dates) != 7 {
		t.Fatalf("expected 7 dates, got %d", len(dates))
	}
	if dates[0].Weekday() != time.Monday {
		t.Fatalf("week starts on %v, want Monday", dates[0].Weekday())
	}
	for i := 1; i < 7; i++ {
		if !dates[i].Equal(dates[i-1].AddDate(0, 0, 1)) {
			t.Fatalf("dates not consecutive at index %d: %v after %v", i, dates[i], dates[i-1])
		}
	}
}

func TestDayLabel(t *testing.T) {
	cases := []struct {
		in  time.Time
		out string
	}{
		{date(2025, time.September, 1), "Seg - 01/set"},
		{date(2024, time.January, 6), "Sáb - 06/jan"},
		{date(2025, time.December, 25), "Qui - 25/dez"},
		{date(2025, time.September, 7), "Dom - 07/set"},
	}
	for _, tc := range cases {
		if got := DayLabel(tc.in); got != tc.out {
			t.Fatalf("DayLabel(%v) = %q, want %q", tc.in, got, tc.out)
		}
	}
}

func TestIsToday(t *testing.T) {
	now := time.Date(2025, time.September, 4, 18, 0, 0, 0, time.Local)
	if !IsToday(date(2025, time.September, 4), now) {
		t.Fatalf("same day at midnight should match")
	}
	if IsToday(date(2025, time.September, 5), now) {
		t.Fatalf("next day should not match")
	}
	if IsToday(date(2024, time.September, 4), now) {
		t.Fatalf("same day of a different year should not match")
	}
}

func TestTodayIndex(t *testing.T) {
	cases := []struct {
		in  time.Time
		out int
	}{
		{date(2025, time.September, 1), 0}, // Monday
		{date(2025, time.September, 4), 3}, // Thursday
		{date(2025, time.September, 7), 6}, // Sunday
	}
	for _, tc := range cases {
		if got := TodayIndex(tc.in); got != tc.out {
			t.Fatalf("TodayIndex(%v) = %d, want %d", tc.in, got, tc.out)
		}
	}
}
