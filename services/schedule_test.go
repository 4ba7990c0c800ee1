package services

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestDaysSinceStart(t *testing.T) {
	start := day(2025, 12, 3)
	cases := []struct {
		today time.Time
		want  int
	}{
		{day(2025, 12, 3), 0},
		{day(2025, 12, 4), 1},
		{day(2026, 1, 1), 29},
		// Time of day must not matter.
		{time.Date(2025, 12, 4, 23, 59, 0, 0, time.Local), 1},
	}
	for _, tc := range cases {
		if got := DaysSinceStart(start, tc.today); got != tc.want {
			t.Errorf("DaysSinceStart(%v) = %d, want %d", tc.today, got, tc.want)
		}
	}
}

func TestWeighInCadence(t *testing.T) {
	start := day(2025, 12, 3)

	// Program day 10 is the first due day.
	if !WeighInDueToday(start, day(2025, 12, 12)) {
		t.Error("day 10 of the program should be a weigh-in day")
	}
	if WeighInDueToday(start, day(2025, 12, 11)) {
		t.Error("day 9 should not be a weigh-in day")
	}
	if !WeighInDueToday(start, day(2025, 12, 22)) {
		t.Error("day 20 should be a weigh-in day")
	}
}

func TestPhotoCadence(t *testing.T) {
	start := day(2025, 12, 3)

	if !PhotosDueToday(start, day(2026, 1, 1)) {
		t.Error("day 30 of the program should be a photo day")
	}
	if PhotosDueToday(start, day(2025, 12, 31)) {
		t.Error("day 29 should not be a photo day")
	}
	if !PhotosDueToday(start, day(2026, 1, 31)) {
		t.Error("day 60 should be a photo day")
	}
}

func TestCadenceBeforeProgramStart(t *testing.T) {
	start := day(2025, 12, 3)
	before := day(2025, 12, 1)
	if WeighInDueToday(start, before) || PhotosDueToday(start, before) {
		t.Error("nothing is due before the program starts")
	}
}

func TestDateKey(t *testing.T) {
	if got := DateKey(time.Date(2025, 12, 5, 18, 30, 0, 0, time.Local)); got != "2025-12-05" {
		t.Fatalf("DateKey = %q, want 2025-12-05", got)
	}
}
