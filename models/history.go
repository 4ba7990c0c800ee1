package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Goal categories evaluated for day completion, in canonical order.
const (
	GoalSteps     = "steps"
	GoalCalories  = "calories"
	GoalProtein   = "protein"
	GoalMeals     = "meals"
	GoalWorkouts  = "workouts"
	GoalWater     = "water"
	GoalWeighIn   = "weighIn"
	GoalPhotos    = "photos"
	GoalCheatMeal = "cheatMeal"
)

// GoalOrder fixes the order in which missed goals are reported.
var GoalOrder = []string{
	GoalSteps, GoalCalories, GoalProtein, GoalMeals, GoalWorkouts,
	GoalWater, GoalWeighIn, GoalPhotos, GoalCheatMeal,
}

// History event types appended to a day's timeline.
const (
	EventMarkDayComplete      = "markDayComplete"
	EventStepsAddedManual     = "stepsAddedManual"
	EventStepsUpdatedFitbit   = "stepsUpdatedFromFitbit"
	EventStepGoalReached      = "stepGoalReached"
	EventWaterLogged          = "waterLogged"
	EventCalorieGoalReached   = "calorieGoalReached"
	EventProteinGoalReached   = "proteinGoalReached"
	EventCheatMealLogged      = "cheatMealLogged"
	EventMealCompleted        = "mealCompleted"
	EventMealsAllCompleted    = "mealsAllCompleted"
	EventWorkoutLogged        = "workoutLogged"
	EventWorkoutNotesAdded    = "workoutNotesAdded"
	EventWorkoutNotesUpdated  = "workoutNotesUpdated"
	EventWorkoutEdited        = "workoutEdited"
	EventPhotosSlotCompleted  = "photosSlotCompleted"
	EventPhotosCompleted      = "photosCompleted"
	EventWeighIn              = "weighIn"
	EventGoalWeightReached    = "goalWeightReached"
	EventBloodPressureLogged  = "bloodPressureLogged"
	EventBloodPressureUpdated = "bloodPressureUpdated"
	EventDayNoteAdded         = "dayNoteAdded"
)

// HistoryEvent is one element of a day's timeline. Events are stored in
// insertion order; each carries its own timestamp so readers can re-derive
// chronological order.
type HistoryEvent struct {
	ID           string         `json:"id"`
	TimestampISO string         `json:"timestampISO"`
	Type         string         `json:"type"`
	Summary      string         `json:"summary"`
	Details      map[string]any `json:"details,omitempty"`
}

// BloodPressureReading is the snapshot embedded in a history entry.
type BloodPressureReading struct {
	Systolic  int    `json:"systolic"`
	Diastolic int    `json:"diastolic"`
	Timestamp string `json:"timestamp"`
}

// HistoryEntry is the per-calendar-day snapshot. An entry for today may
// exist before completion (IsDayComplete=false) so that events can accrue;
// the day completion workflow finalizes it by upsert on the date key.
type HistoryEntry struct {
	gorm.Model
	UserID  uint   `gorm:"not null;uniqueIndex:idx_history_user_date"`
	DateKey string `gorm:"size:10;not null;uniqueIndex:idx_history_user_date"` // YYYY-MM-DD, local time
	DateISO string

	IsDayComplete   bool
	AllGoalsReached bool
	MissedGoals     datatypes.JSON `gorm:"type:jsonb"` // []string, canonical order

	Steps    int
	StepGoal int

	Water     float64
	WaterGoal float64

	Calories    int
	CalorieGoal int

	Protein     int
	ProteinGoal int

	Carbs int
	Fats  int

	WorkoutsCompleted int
	MealsCompleted    int
	MealsPlanned      int

	DidWeighIn bool
	WeightLbs  *float64

	DidPhotos      bool
	PhotosTaken    int
	PhotosRequired int

	IsCheatDay     bool
	CycleDay       *int
	DaysUntilCheat *int

	WeeksUntilGoal *float64

	BloodPressure datatypes.JSON `gorm:"type:jsonb"` // BloodPressureReading, null if not logged

	Events datatypes.JSON `gorm:"type:jsonb"` // []HistoryEvent, insertion order
}

func (e *HistoryEntry) Date() (time.Time, error) {
	return time.ParseInLocation("2006-01-02", e.DateKey, time.Local)
}
