package services

import (
	"testing"
	"time"

	"github.com/Glory2TheLord/FitLogV1/models"
)

func TestListProgramDaysSeedsDefaultSplit(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewWorkoutService(db)

	days, err := svc.ListProgramDays(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(days) != 5 {
		t.Fatalf("seeded %d days, want 5", len(days))
	}
	if days[0].Name != "Chest & Tris" || days[4].Name != "Accessories" {
		t.Fatalf("unexpected split: %s .. %s", days[0].Name, days[4].Name)
	}
}

func TestFocusRotation(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewWorkoutService(db)

	start := day(2025, 12, 3)

	// Day one lands on the first program day; day six wraps around.
	focus, err := svc.FocusForDate(u.ID, start, start)
	if err != nil {
		t.Fatal(err)
	}
	if focus.Name != "Chest & Tris" {
		t.Fatalf("day 1 focus = %s", focus.Name)
	}

	focus, err = svc.FocusForDate(u.ID, start, start.AddDate(0, 0, 5))
	if err != nil {
		t.Fatal(err)
	}
	if focus.Name != "Chest & Tris" {
		t.Fatalf("day 6 should wrap to the first day, got %s", focus.Name)
	}
}

func TestFocusRotationSkipsInactiveDays(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewWorkoutService(db)

	days, err := svc.ListProgramDays(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	// Deactivate everything but the first two days.
	inactive := false
	for _, d := range days[2:] {
		if _, err := svc.UpdateProgramDay(u.ID, d.ID, ProgramDayUpdate{IsActive: &inactive}); err != nil {
			t.Fatal(err)
		}
	}

	start := day(2025, 12, 3)
	focus, err := svc.FocusForDate(u.ID, start, start.AddDate(0, 0, 2))
	if err != nil {
		t.Fatal(err)
	}
	if focus.Name != "Chest & Tris" {
		t.Fatalf("two active days should alternate, day 3 = %s", focus.Name)
	}
}

func TestTemplatesForProgramDay(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewWorkoutService(db)

	days, err := svc.ListProgramDays(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	chest, legs := days[0], days[3]

	if _, err := svc.CreateTemplate(u.ID, WorkoutTemplateInput{
		Name: "Bench press", DefaultSets: intPtr(4), DefaultReps: intPtr(8),
		ProgramDayIDs: []uint{chest.ID},
	}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CreateTemplate(u.ID, WorkoutTemplateInput{
		Name: "Squat", ProgramDayIDs: []uint{legs.ID},
	}); err != nil {
		t.Fatal(err)
	}

	forChest, err := svc.TemplatesForProgramDay(u.ID, chest.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(forChest) != 1 || forChest[0].Name != "Bench press" {
		t.Fatalf("chest templates = %+v", forChest)
	}
}

func TestWorkoutCompletionCount(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewWorkoutService(db)

	key := DateKey(time.Now())
	e1, err := svc.AddWorkout(u.ID, WorkoutEntryInput{Name: "Bench press"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddWorkout(u.ID, WorkoutEntryInput{Name: "Rows"}); err != nil {
		t.Fatal(err)
	}

	n, err := svc.CompletedCountForDate(u.ID, key)
	if err != nil {
		t.Fatal(err)
	}
	if n != 0 {
		t.Fatalf("completed = %d, want 0", n)
	}

	if _, err := svc.ToggleCompleted(u.ID, e1.ID); err != nil {
		t.Fatal(err)
	}
	n, err = svc.CompletedCountForDate(u.ID, key)
	if err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("completed = %d, want 1", n)
	}
}

func TestUpdateWorkoutNotes(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewWorkoutService(db)

	e, err := svc.AddWorkout(u.ID, WorkoutEntryInput{Name: "Deadlift"})
	if err != nil {
		t.Fatal(err)
	}

	notes := "belt on last set"
	updated, err := svc.UpdateWorkout(u.ID, e.ID, WorkoutEntryUpdate{Notes: &notes})
	if err != nil {
		t.Fatal(err)
	}
	if updated.Notes != notes {
		t.Fatalf("notes = %q", updated.Notes)
	}

	if _, err := svc.UpdateWorkout(u.ID, 9999, WorkoutEntryUpdate{Notes: &notes}); err != ErrWorkoutNotFound {
		t.Fatalf("unknown workout: got %v, want ErrWorkoutNotFound", err)
	}
}

func TestWorkoutTypeValidation(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewWorkoutService(db)

	if _, err := svc.AddWorkout(u.ID, WorkoutEntryInput{Name: "Yoga", Type: "pilates"}); err == nil {
		t.Fatal("unknown workout type should be rejected")
	}
	e, err := svc.AddWorkout(u.ID, WorkoutEntryInput{Name: "Run", Type: models.WorkoutTypeCardio, Minutes: intPtr(30)})
	if err != nil {
		t.Fatal(err)
	}
	if e.Type != models.WorkoutTypeCardio {
		t.Fatalf("type = %s", e.Type)
	}
}
