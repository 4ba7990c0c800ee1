package models

import (
	"time"

	"gorm.io/gorm"
)

// WeighIn is one scale reading. Only the most recent ten are kept per user.
type WeighIn struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null"`
	Date      time.Time `gorm:"index;not null"`
	WeightLbs float64
}

// MaxWeighIns bounds the retained weigh-in window.
const MaxWeighIns = 10

// EatingStreak tracks consecutive completed days meeting calorie+protein
// goals without a cheat meal. DaysToCheatMeal is derived, never stored.
type EatingStreak struct {
	gorm.Model
	UserID           uint `gorm:"uniqueIndex;not null"`
	GoodEatingStreak int
	LongestStreak    int
}

// DaysToCheatMeal reports how many good days remain before the next cheat
// meal is earned.
func (s *EatingStreak) DaysToCheatMeal(intervalDays int) int {
	d := intervalDays - s.GoodEatingStreak
	if d < 0 {
		return 0
	}
	return d
}
