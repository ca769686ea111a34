package timecalc

import (
	"fmt"
	"time"
)

// ISOWeek returns the ISO-8601 week number (1–53) of t's calendar date.
// Week 1 is the week containing the year's first Thursday.
func ISOWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// WeekdayName returns the English weekday name of t, e.g. "Friday".
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}

// MonthDirName returns a directory name like "03-March". The zero-padded
// prefix keeps lexicographic order equal to chronological order.
func MonthDirName(t time.Time) string {
	return fmt.Sprintf("%02d-%s", int(t.Month()), t.Month().String())
}

// WeekRange returns the Monday and Sunday of the ISO week containing t.
func WeekRange(t time.Time) (time.Time, time.Time) {
	// Go's weekday: Sunday=0, Monday=1, …, Saturday=6
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7 // treat Sunday as 7 (ISO)
	}
	monday := t.AddDate(0, 0, -(wd - 1))
	monday = time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, t.Location())
	sunday := monday.AddDate(0, 0, 6)
	sunday = time.Date(sunday.Year(), sunday.Month(), sunday.Day(), 23, 59, 59, 0, t.Location())
	return monday, sunday
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// SameDay reports whether two times fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
