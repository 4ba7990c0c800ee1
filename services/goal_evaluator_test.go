package services

import (
	"reflect"
	"testing"

	"github.com/Glory2TheLord/FitLogV1/models"
)

// allMet is a baseline day where every category passes.
func allMet() GoalInput {
	return GoalInput{
		Steps: 10000, StepGoal: 10000,
		Calories: 1650, CalorieGoal: 1600, CalorieDirection: models.CalorieDirectionAtLeast,
		Protein: 170, ProteinGoal: 165,
		Water: 3, WaterGoal: 3,
		MealsPlanned: 4, MealsCompleted: 4,
		WorkoutsCompleted: 1,
	}
}

func TestEvaluateGoalsAllMet(t *testing.T) {
	res := EvaluateGoals(allMet())
	if !res.AllGoalsReached {
		t.Fatalf("expected all goals reached, missed %v", res.MissedGoals)
	}
	if len(res.MissedGoals) != 0 {
		t.Fatalf("missed goals should be empty, got %v", res.MissedGoals)
	}
}

func TestEvaluateGoalsSingleMisses(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*GoalInput)
		want   string
	}{
		{"steps short", func(in *GoalInput) { in.Steps = 9999 }, models.GoalSteps},
		{"calories short", func(in *GoalInput) { in.Calories = 1599 }, models.GoalCalories},
		{"protein short", func(in *GoalInput) { in.Protein = 164 }, models.GoalProtein},
		{"meal unfinished", func(in *GoalInput) { in.MealsCompleted = 3 }, models.GoalMeals},
		{"no workout", func(in *GoalInput) { in.WorkoutsCompleted = 0 }, models.GoalWorkouts},
		{"water short", func(in *GoalInput) { in.Water = 2.9 }, models.GoalWater},
		{"weigh-in due, skipped", func(in *GoalInput) { in.WeighInRequired = true }, models.GoalWeighIn},
		{"photos due, incomplete", func(in *GoalInput) { in.PhotosRequired = true }, models.GoalPhotos},
		{"cheat day, unused", func(in *GoalInput) { in.IsCheatDay = true }, models.GoalCheatMeal},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := allMet()
			tc.mutate(&in)
			res := EvaluateGoals(in)
			if res.AllGoalsReached {
				t.Fatal("expected a missed goal")
			}
			if !reflect.DeepEqual(res.MissedGoals, []string{tc.want}) {
				t.Fatalf("missed = %v, want [%s]", res.MissedGoals, tc.want)
			}
		})
	}
}

func TestEvaluateGoalsVacuousCategories(t *testing.T) {
	in := allMet()
	in.MealsPlanned = 0
	in.MealsCompleted = 0
	res := EvaluateGoals(in)
	if !res.Passed[models.GoalMeals] {
		t.Fatal("meals with nothing planned should pass")
	}

	in = allMet()
	in.WeighInRequired = true
	in.HasWeighedIn = true
	in.PhotosRequired = true
	in.HasCompletedPhotos = true
	in.IsCheatDay = true
	in.HasUsedCheatToday = true
	res = EvaluateGoals(in)
	if !res.AllGoalsReached {
		t.Fatalf("satisfied due-today categories should pass, missed %v", res.MissedGoals)
	}
}

func TestEvaluateGoalsMissedOrderIsCanonical(t *testing.T) {
	in := GoalInput{
		StepGoal: 10000, CalorieGoal: 1600, ProteinGoal: 165, WaterGoal: 3,
		CalorieDirection: models.CalorieDirectionAtLeast,
		MealsPlanned:     2,
		WeighInRequired:  true,
		PhotosRequired:   true,
		IsCheatDay:       true,
	}
	res := EvaluateGoals(in)
	if !reflect.DeepEqual(res.MissedGoals, models.GoalOrder) {
		t.Fatalf("missed = %v, want canonical order %v", res.MissedGoals, models.GoalOrder)
	}
}

func TestEvaluateGoalsCalorieDirectionAtMost(t *testing.T) {
	in := allMet()
	in.CalorieDirection = models.CalorieDirectionAtMost
	in.CalorieGoal = 1800

	in.Calories = 1700
	if res := EvaluateGoals(in); !res.Passed[models.GoalCalories] {
		t.Fatal("under the cap should pass in at_most mode")
	}

	in.Calories = 1900
	if res := EvaluateGoals(in); res.Passed[models.GoalCalories] {
		t.Fatal("over the cap should fail in at_most mode")
	}

	// Zero intake is not a pass; nothing was logged.
	in.Calories = 0
	if res := EvaluateGoals(in); res.Passed[models.GoalCalories] {
		t.Fatal("zero calories should fail in at_most mode")
	}
}
