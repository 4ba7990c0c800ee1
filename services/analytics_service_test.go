package services

import (
	"context"
	"testing"
	"time"

	"github.com/Glory2TheLord/FitLogV1/models"
)

func TestWeeklyOverviewChart(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	hist := NewHistoryService(db)
	svc := NewAnalyticsService(db)

	// Two closed days in the week; the rest never happened.
	if err := hist.Upsert(&models.HistoryEntry{
		UserID: u.ID, DateKey: "2026-01-05", IsDayComplete: true,
		Steps: 5000, StepGoal: 10000,
		Water: 3, WaterGoal: 3,
		Calories: 1200, CalorieGoal: 1600,
		Protein: 165, ProteinGoal: 165,
	}); err != nil {
		t.Fatal(err)
	}
	if err := hist.Upsert(&models.HistoryEntry{
		UserID: u.ID, DateKey: "2026-01-07", IsDayComplete: true,
		Steps: 12000, StepGoal: 10000,
		Water: 1.5, WaterGoal: 3,
		Calories: 800, CalorieGoal: 0,
	}); err != nil {
		t.Fatal(err)
	}

	out, err := svc.WeeklyOverview(context.Background(), u.ID, day(2026, time.January, 5), "chart")
	if err != nil {
		t.Fatal(err)
	}
	if out.WeekStart != "2026-01-05" {
		t.Fatalf("week start = %s", out.WeekStart)
	}
	days, ok := out.Days.([]DayChart)
	if !ok {
		t.Fatalf("days = %T, want []DayChart", out.Days)
	}
	if len(days) != 7 {
		t.Fatalf("days = %d, want 7", len(days))
	}

	mon := days[0]
	if !mon.Complete {
		t.Fatal("monday should be complete")
	}
	if mon.Percentages["steps"] != 50 || mon.Percentages["calories"] != 75 ||
		mon.Percentages["water"] != 100 || mon.Percentages["protein"] != 100 {
		t.Fatalf("monday percentages = %v", mon.Percentages)
	}

	wed := days[2]
	if wed.Percentages["steps"] != 120 {
		t.Fatalf("steps pct = %v, want 120", wed.Percentages["steps"])
	}
	// No goal set but intake logged counts as met; no goal and no intake
	// stays at zero.
	if wed.Percentages["calories"] != 100 {
		t.Fatalf("calories pct = %v, want 100", wed.Percentages["calories"])
	}
	if wed.Percentages["protein"] != 0 {
		t.Fatalf("protein pct = %v, want 0", wed.Percentages["protein"])
	}

	// A day that was never closed renders as zeros, not an error.
	tue := days[1]
	if tue.Complete {
		t.Fatal("tuesday should not be complete")
	}
	for metric, p := range tue.Percentages {
		if p != 0 {
			t.Fatalf("tuesday %s = %v, want 0", metric, p)
		}
	}
}

func TestWeeklyOverviewDetailed(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	hist := NewHistoryService(db)
	svc := NewAnalyticsService(db)

	if err := hist.Upsert(&models.HistoryEntry{
		UserID: u.ID, DateKey: "2026-01-06", IsDayComplete: true,
		Water: 2.25, WaterGoal: 3,
	}); err != nil {
		t.Fatal(err)
	}

	out, err := svc.WeeklyOverview(context.Background(), u.ID, day(2026, time.January, 5), "detailed")
	if err != nil {
		t.Fatal(err)
	}
	days, ok := out.Days.([]DayDetailed)
	if !ok {
		t.Fatalf("days = %T, want []DayDetailed", out.Days)
	}

	water := days[1].Metrics["water_l"]
	if water.Actual != 2.25 || water.Target != 3 || water.Percent != 75 {
		t.Fatalf("water metric = %+v", water)
	}
}

func TestWeeklyOverviewRejectsUnknownMode(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)

	if _, err := NewAnalyticsService(db).WeeklyOverview(context.Background(), u.ID, day(2026, time.January, 5), "pie"); err == nil {
		t.Fatal("unknown mode should be rejected")
	}
}
