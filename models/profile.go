package models

import (
	"gorm.io/gorm"
)

const (
	ActivitySedentary  = "sedentary"
	ActivityLight      = "light"
	ActivityModerate   = "moderate"
	ActivityActive     = "active"
	ActivityVeryActive = "very_active"
)

// UserProfile holds body stats and weight goals. Weights are in pounds,
// height in centimeters.
type UserProfile struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	Age      *int
	Sex      *string `gorm:"size:8"` // male | female | other
	HeightCm *float64

	CurrentWeightLbs  *float64
	GoalWeightLbs     *float64
	StartingWeightLbs *float64

	ActivityLevel       string `gorm:"size:16;default:'light'"`
	MaintenanceCalories *int
}
