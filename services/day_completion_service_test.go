package services

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

// meetAllGoals drives today to a state where every category passes for a
// user whose program started today (so weigh-in and photos are not due).
func meetAllGoals(t *testing.T, db *gorm.DB, userID uint) {
	t.Helper()

	metrics := NewMetricsService(db)
	meals := NewMealTrackingService(db)
	workouts := NewWorkoutService(db)

	if _, err := metrics.AddSteps(userID, 10000); err != nil {
		t.Fatal(err)
	}
	if _, err := metrics.AddWater(userID, 3); err != nil {
		t.Fatal(err)
	}

	tmpl, err := meals.CreateTemplate(userID, MealTemplateInput{
		Name: "Chicken and rice", Calories: 1600, Protein: 165, Carbs: 120, Fats: 30,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := meals.AssignTemplate(userID, 1, uintPtr(tmpl.ID)); err != nil {
		t.Fatal(err)
	}
	if _, err := meals.SetSlotCompleted(userID, 1, true); err != nil {
		t.Fatal(err)
	}

	entry, err := workouts.AddWorkout(userID, WorkoutEntryInput{Name: "Bench press"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := workouts.ToggleCompleted(userID, entry.ID); err != nil {
		t.Fatal(err)
	}
}

func TestCompleteDayConfirmGate(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewDayCompletionService(db)

	_, err := svc.CompleteDay(u.ID, false)
	var confirm *ConfirmationRequiredError
	if !errors.As(err, &confirm) {
		t.Fatalf("expected ConfirmationRequiredError, got %v", err)
	}
	want := []string{models.GoalSteps, models.GoalCalories, models.GoalProtein,
		models.GoalWorkouts, models.GoalWater}
	if !reflect.DeepEqual(confirm.MissedGoals, want) {
		t.Fatalf("missed = %v, want %v", confirm.MissedGoals, want)
	}

	// Nothing was persisted by the rejected attempt.
	hist := NewHistoryService(db)
	if _, err := hist.Get(u.ID, DateKey(time.Now())); err != gorm.ErrRecordNotFound {
		t.Fatalf("history should be empty after rejection, got %v", err)
	}

	// Confirming closes the day with the missed list recorded.
	entry, err := svc.CompleteDay(u.ID, true)
	if err != nil {
		t.Fatal(err)
	}
	if entry.AllGoalsReached {
		t.Fatal("day with missed goals must not report all goals reached")
	}
	if !entry.IsDayComplete {
		t.Fatal("entry should be marked complete")
	}

	// The stored completion event carries the evaluation outcome,
	// including which goals were missed.
	events, err := EventsOf(entry)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != models.EventMarkDayComplete {
		t.Fatalf("events = %+v", events)
	}
	details := events[0].Details
	if reached, ok := details["allGoalsReached"].(bool); !ok || reached {
		t.Fatalf("allGoalsReached = %v", details["allGoalsReached"])
	}
	missed, ok := details["missedGoals"].([]any)
	if !ok || len(missed) != len(want) {
		t.Fatalf("missedGoals = %v, want %v", details["missedGoals"], want)
	}
	for i, goal := range want {
		if missed[i] != goal {
			t.Fatalf("missedGoals[%d] = %v, want %s", i, missed[i], goal)
		}
	}
}

func TestCompleteDayAllGoals(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewDayCompletionService(db)

	meetAllGoals(t, db, u.ID)

	entry, err := svc.CompleteDay(u.ID, false)
	if err != nil {
		t.Fatalf("all goals met, completion should not need confirmation: %v", err)
	}
	if !entry.AllGoalsReached {
		t.Fatal("expected all goals reached")
	}
	if entry.Steps != 10000 || entry.Calories != 1600 || entry.Protein != 165 {
		t.Fatalf("snapshot mismatch: steps=%d cal=%d protein=%d", entry.Steps, entry.Calories, entry.Protein)
	}
	if entry.MealsPlanned != 1 || entry.MealsCompleted != 1 || entry.WorkoutsCompleted != 1 {
		t.Fatalf("snapshot counts wrong: %+v", entry)
	}

	// Streak advanced.
	var streak models.EatingStreak
	if err := db.Where("user_id = ?", u.ID).First(&streak).Error; err != nil {
		t.Fatal(err)
	}
	if streak.GoodEatingStreak != 1 || streak.LongestStreak != 1 {
		t.Fatalf("streak = %d/%d, want 1/1", streak.GoodEatingStreak, streak.LongestStreak)
	}

	// Accumulators were reset.
	var m models.DayMetrics
	if err := db.Where("user_id = ?", u.ID).First(&m).Error; err != nil {
		t.Fatal(err)
	}
	if m.Steps != 0 || m.WaterLiters != 0 || m.Calories != 0 || m.Protein != 0 || m.CheatUsedToday {
		t.Fatalf("metrics not reset: %+v", m)
	}

	// Meal slot selection survives, completion does not.
	var slot models.MealSlot
	if err := db.Where("user_id = ? AND slot_index = ?", u.ID, 1).First(&slot).Error; err != nil {
		t.Fatal(err)
	}
	if slot.TemplateID == nil {
		t.Fatal("slot selection should survive day completion")
	}
	if slot.Completed {
		t.Fatal("slot completion should be cleared")
	}

	// Timeline was carried over and ends with the completion marker.
	events, err := SortedEventsOf(entry)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) == 0 {
		t.Fatal("expected timeline events on the snapshot")
	}
	if events[len(events)-1].Type != models.EventMarkDayComplete {
		t.Fatalf("last event = %s, want %s", events[len(events)-1].Type, models.EventMarkDayComplete)
	}
}

func TestCompleteDayIsIdempotentOnDateKey(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewDayCompletionService(db)

	if _, err := svc.CompleteDay(u.ID, true); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CompleteDay(u.ID, true); err != nil {
		t.Fatal(err)
	}

	var n int64
	if err := db.Model(&models.HistoryEntry{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("history rows = %d, want 1 (upsert on date key)", n)
	}
}

func TestCompleteDayStreakResetOnBadDay(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewDayCompletionService(db)

	if err := db.Create(&models.EatingStreak{UserID: u.ID, GoodEatingStreak: 3, LongestStreak: 5}).Error; err != nil {
		t.Fatal(err)
	}

	// Calories and protein missed: streak resets, longest survives.
	if _, err := svc.CompleteDay(u.ID, true); err != nil {
		t.Fatal(err)
	}

	var streak models.EatingStreak
	if err := db.Where("user_id = ?", u.ID).First(&streak).Error; err != nil {
		t.Fatal(err)
	}
	if streak.GoodEatingStreak != 0 {
		t.Fatalf("streak = %d, want 0", streak.GoodEatingStreak)
	}
	if streak.LongestStreak != 5 {
		t.Fatalf("longest streak = %d, want 5", streak.LongestStreak)
	}
}

func TestCompleteDayCheatMealResetsStreak(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewDayCompletionService(db)

	if err := db.Create(&models.EatingStreak{UserID: u.ID, GoodEatingStreak: 4, LongestStreak: 4}).Error; err != nil {
		t.Fatal(err)
	}

	meetAllGoals(t, db, u.ID)

	// A cheat meal on top of otherwise perfect eating still resets.
	meals := NewMealTrackingService(db)
	cheat, err := meals.CreateTemplate(u.ID, MealTemplateInput{
		Name: "Pizza night", Calories: 900, Category: models.MealCategoryCheat,
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := meals.AssignTemplate(u.ID, 2, uintPtr(cheat.ID)); err != nil {
		t.Fatal(err)
	}
	if _, err := meals.SetSlotCompleted(u.ID, 2, true); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.CompleteDay(u.ID, true); err != nil {
		t.Fatal(err)
	}

	var streak models.EatingStreak
	if err := db.Where("user_id = ?", u.ID).First(&streak).Error; err != nil {
		t.Fatal(err)
	}
	if streak.GoodEatingStreak != 0 {
		t.Fatalf("streak after cheat = %d, want 0", streak.GoodEatingStreak)
	}
}

func TestCompleteDayWeighInDue(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 9) // program day 10: weigh-in due
	svc := NewDayCompletionService(db)

	meetAllGoals(t, db, u.ID)

	_, err := svc.CompleteDay(u.ID, false)
	var confirm *ConfirmationRequiredError
	if !errors.As(err, &confirm) {
		t.Fatalf("expected confirmation gate, got %v", err)
	}
	if !reflect.DeepEqual(confirm.MissedGoals, []string{models.GoalWeighIn}) {
		t.Fatalf("missed = %v, want [weighIn]", confirm.MissedGoals)
	}

	// Weighing in clears the miss.
	if _, err := NewWeighInService(db).RecordWeighIn(u.ID, 180); err != nil {
		t.Fatal(err)
	}
	entry, err := svc.CompleteDay(u.ID, false)
	if err != nil {
		t.Fatal(err)
	}
	if !entry.DidWeighIn || entry.WeightLbs == nil || *entry.WeightLbs != 180 {
		t.Fatalf("weigh-in not snapshotted: %+v", entry)
	}
}

func TestDayStatus(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewDayCompletionService(db)

	status, err := svc.Status(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if status.Goals.AllGoalsReached {
		t.Fatal("fresh day should not have all goals reached")
	}
	if status.WeighInDue || status.PhotosDue || status.IsCheatDay {
		t.Fatalf("nothing should be due on program day 1: %+v", status)
	}
	if status.DaysToCheatMeal != 7 {
		t.Fatalf("days to cheat meal = %d, want 7", status.DaysToCheatMeal)
	}
}
