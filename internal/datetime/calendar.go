package datetime

import (
	"fmt"
	"time"
)

// StartOfWeek returns the first day of the week containing d.
func StartOfWeek(d Date, weekStart time.Weekday) Date {
	offset := (int(d.Weekday()) - int(weekStart) + 7) % 7
	return d.AddDays(-offset)
}

// WeekDates returns the seven days of the week containing d.
func WeekDates(d Date, weekStart time.Weekday) []Date {
	start := StartOfWeek(d, weekStart)
	out := make([]Date, 7)
	for i := range out {
		out[i] = start.AddDays(i)
	}
	return out
}

// MonthWeeks lays out the month of d as rows of seven day numbers, with 0
// for padding cells before the 1st and after the last day.
func MonthWeeks(d Date, weekStart time.Weekday) [][]int {
	first := NewDate(d.Year, d.Month, 1)
	lead := (int(first.Weekday()) - int(weekStart) + 7) % 7
	days := DaysInMonth(d.Year, d.Month)

	var weeks [][]int
	week := make([]int, 0, 7)
	for i := 0; i < lead; i++ {
		week = append(week, 0)
	}
	for day := 1; day <= days; day++ {
		week = append(week, day)
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]int, 0, 7)
		}
	}
	if len(week) > 0 {
		for len(week) < 7 {
			week = append(week, 0)
		}
		weeks = append(weeks, week)
	}
	return weeks
}

// InSameWeek reports whether a and b fall in the same calendar week.
func InSameWeek(a, b Date, weekStart time.Weekday) bool {
	return StartOfWeek(a, weekStart) == StartOfWeek(b, weekStart)
}

// InSameMonth reports whether a and b fall in the same calendar month.
func InSameMonth(a, b Date) bool {
	return a.Year == b.Year && a.Month == b.Month
}

// FormatMonth renders the month of d, e.g. "November 2025".
func FormatMonth(d Date) string {
	return fmt.Sprintf("%s %d", d.Month, d.Year)
}

// FormatWeek renders the week of d relative to the month owning its
// Thursday, e.g. "November 2025, week 2". Weeks straddling two months belong
// to the month that holds most of their days.
func FormatWeek(d Date, weekStart time.Weekday) string {
	start := StartOfWeek(d, weekStart)
	thursday := start.AddDays((int(time.Thursday) - int(weekStart) + 7) % 7)
	week := (thursday.Day-1)/7 + 1
	return fmt.Sprintf("%s %d, week %d", thursday.Month, thursday.Year, week)
}
