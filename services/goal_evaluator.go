package services

import (
	"github.com/Glory2TheLord/FitLogV1/models"
)

// GoalInput is everything the evaluator needs to judge one day. It is a
// plain snapshot so the evaluation stays free of database reads.
type GoalInput struct {
	Steps    int
	StepGoal int

	Calories         int
	CalorieGoal      int
	CalorieDirection string // at_least | at_most

	Protein     int
	ProteinGoal int

	Water     float64
	WaterGoal float64

	MealsPlanned   int
	MealsCompleted int

	WorkoutsCompleted int

	WeighInRequired bool
	HasWeighedIn    bool

	PhotosRequired     bool
	HasCompletedPhotos bool

	IsCheatDay        bool
	HasUsedCheatToday bool
}

// GoalResult reports per-category pass/fail plus the missed list in
// canonical order.
type GoalResult struct {
	AllGoalsReached bool
	MissedGoals     []string
	Passed          map[string]bool
}

// EvaluateGoals judges every goal category for one day. Categories not in
// play (no meals planned, weigh-in/photos not due, not a cheat day) pass
// vacuously.
func EvaluateGoals(in GoalInput) GoalResult {
	passed := map[string]bool{
		models.GoalSteps:     in.Steps >= in.StepGoal,
		models.GoalCalories:  calorieGoalMet(in),
		models.GoalProtein:   in.Protein >= in.ProteinGoal,
		models.GoalMeals:     in.MealsPlanned == 0 || in.MealsCompleted >= in.MealsPlanned,
		models.GoalWorkouts:  in.WorkoutsCompleted > 0,
		models.GoalWater:     in.Water >= in.WaterGoal,
		models.GoalWeighIn:   !in.WeighInRequired || in.HasWeighedIn,
		models.GoalPhotos:    !in.PhotosRequired || in.HasCompletedPhotos,
		models.GoalCheatMeal: !in.IsCheatDay || in.HasUsedCheatToday,
	}

	missed := []string{}
	for _, g := range models.GoalOrder {
		if !passed[g] {
			missed = append(missed, g)
		}
	}

	return GoalResult{
		AllGoalsReached: len(missed) == 0,
		MissedGoals:     missed,
		Passed:          passed,
	}
}

func calorieGoalMet(in GoalInput) bool {
	if in.CalorieDirection == models.CalorieDirectionAtMost {
		return in.Calories > 0 && in.Calories <= in.CalorieGoal
	}
	return in.Calories >= in.CalorieGoal
}
