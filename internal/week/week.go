// Package week implements the Monday-start calendar math that decides
// which persisted plan applies "now" and which day within it is "today".
//
// Plan creation and plan lookup must agree on the week identifier for the
// same instant, so both go through Identifier; there is deliberately no
// second formula anywhere else.
package week

import (
	"fmt"
	"time"
)

// Weekday abbreviations, Monday-first, as shown to the user.
var weekdayNames = [7]string{"Seg", "Ter", "Qua", "Qui", "Sex", "Sáb", "Dom"}

// Lowercase pt-BR month abbreviations used in day labels.
var monthNames = [12]string{
	"jan", "fev", "mar", "abr", "mai", "jun",
	"jul", "ago", "set", "out", "nov", "dez",
}

// MondayIndex converts time.Weekday (Sunday=0) to Monday-first indexing
// (Monday=0 .. Sunday=6).
func MondayIndex(wd time.Weekday) int {
	return (int(wd) + 6) % 7
}

// Identifier returns the "YYYY-WW" key grouping a plan to one Monday-start
// calendar week: the calendar year of now combined with
// ceil((daysSinceJan1 + weekday(Jan1) + 1) / 7), weekday Sunday-based.
//
// This is not a strict ISO-8601 week number and is known to behave
// inconsistently right at year boundaries. Keep the formula as is: a plan
// written under one identifier must be found under the same identifier for
// the rest of its week.
func Identifier(now time.Time) string {
	jan1 := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
	days := now.YearDay() - 1
	num := days + int(jan1.Weekday()) + 1
	weekNumber := (num + 6) / 7
	return fmt.Sprintf("%d-%02d", now.Year(), weekNumber)
}

// LastMonday returns the most recent Monday at local midnight, inclusive
// when now itself falls on a Monday.
func LastMonday(now time.Time) time.Time {
	d := now.AddDate(0, 0, -MondayIndex(now.Weekday()))
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, now.Location())
}

// CurrentWeekDates returns the 7 dates of now's week, Monday through
// Sunday, each at local midnight.
func CurrentWeekDates(now time.Time) []time.Time {
	monday := LastMonday(now)
	dates := make([]time.Time, 0, 7)
	for i := 0; i < 7; i++ {
		dates = append(dates, monday.AddDate(0, 0, i))
	}
	return dates
}

// WeekdayName returns the Monday-first weekday abbreviation for a date.
func WeekdayName(date time.Time) string {
	return weekdayNames[MondayIndex(date.Weekday())]
}

// DayLabel formats a date for display, e.g. "Seg - 01/set". The label is a
// display derivative only; day lookups compare dates, never labels.
func DayLabel(date time.Time) string {
	return fmt.Sprintf("%s - %02d/%s", WeekdayName(date), date.Day(), monthNames[int(date.Month())-1])
}

// IsToday reports whether date and now fall on the same local calendar
// day, ignoring time of day.
func IsToday(date, now time.Time) bool {
	y1, m1, d1 := date.Date()
	y2, m2, d2 := now.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// TodayIndex returns now's position within its week (Monday=0 .. Sunday=6).
func TodayIndex(now time.Time) int {
	return MondayIndex(now.Weekday())
}
