package models

import (
	"gorm.io/gorm"
)

// Calorie goal direction. "at_least" suits a bulking phase (hit at least
// the target), "at_most" a cutting phase (stay under it).
const (
	CalorieDirectionAtLeast = "at_least"
	CalorieDirectionAtMost  = "at_most"
)

// Preferences holds each user's daily tracking targets.
type Preferences struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	DailyStepGoal         int     // e.g. 10000 steps
	DailyWaterGoal        float64 // e.g. 3.0 liters
	DailyCalorieGoal      int     // e.g. 1600 kcal
	DailyProteinGoal      int     // e.g. 165 g
	CheatMealIntervalDays int     // 0 = cheat meal allowed every day

	CalorieGoalDirection string `gorm:"size:16;default:'at_least'"`
}

// DefaultPreferences are applied on a user's first read.
func DefaultPreferences(userID uint) Preferences {
	return Preferences{
		UserID:                userID,
		DailyStepGoal:         10000,
		DailyWaterGoal:        3,
		DailyCalorieGoal:      1600,
		DailyProteinGoal:      165,
		CheatMealIntervalDays: 7,
		CalorieGoalDirection:  CalorieDirectionAtLeast,
	}
}
