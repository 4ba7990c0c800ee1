package services

import (
	"time"
)

// Photo and weigh-in cadence, counted in days from the program start.
const (
	PhotoIntervalDays   = 30
	WeighInIntervalDays = 10
)

// DefaultProgramStart anchors the photo/weigh-in cadence for users who
// never set their own start date.
var DefaultProgramStart = time.Date(2025, time.December, 3, 0, 0, 0, 0, time.Local)

// dayStartLocal truncates t to local midnight.
func dayStartLocal(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateKey renders the local calendar day as YYYY-MM-DD. All per-day rows
// are keyed by this string.
func DateKey(t time.Time) string {
	return t.Local().Format("2006-01-02")
}

// DaysSinceStart counts whole local calendar days from the program start
// to the given day. Day one of the program yields 0.
func DaysSinceStart(start, today time.Time) int {
	s := dayStartLocal(start.Local())
	d := dayStartLocal(today.Local())
	return int(d.Sub(s).Hours() / 24)
}

// PhotosDueToday reports whether the given day falls on the photo cadence.
// The first due day is program day 30.
func PhotosDueToday(start, today time.Time) bool {
	n := DaysSinceStart(start, today)
	if n < 0 {
		return false
	}
	return (n+1)%PhotoIntervalDays == 0
}

// WeighInDueToday reports whether the given day falls on the weigh-in
// cadence. The first due day is program day 10.
func WeighInDueToday(start, today time.Time) bool {
	n := DaysSinceStart(start, today)
	if n < 0 {
		return false
	}
	return (n+1)%WeighInIntervalDays == 0
}
