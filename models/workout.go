package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	WorkoutTypeCardio    = "cardio"
	WorkoutTypeStrength  = "strength"
	WorkoutTypeAccessory = "accessory"
	WorkoutTypeOther     = "other"
)

// ProgramDay is one slot of the rotating training split, e.g. "Chest & Tris".
type ProgramDay struct {
	gorm.Model
	UserID   uint `gorm:"index;not null"`
	Index    int  `gorm:"not null"`
	Name     string
	IsActive bool `gorm:"default:true"`
}

// WorkoutTemplate is a reusable exercise definition linked to the program
// days it belongs to.
type WorkoutTemplate struct {
	gorm.Model
	UserID uint   `gorm:"index;not null"`
	Name   string `gorm:"not null"`
	Type   string `gorm:"size:16;default:'strength'"`

	DefaultMinutes *int
	DefaultSets    *int
	DefaultReps    *int
	DefaultWeight  *float64

	ProgramDayIDs datatypes.JSON `gorm:"type:jsonb"` // []uint
}

// WorkoutEntry is a workout scheduled/logged for a specific date.
type WorkoutEntry struct {
	gorm.Model
	UserID  uint   `gorm:"not null;index:idx_workout_user_date"`
	DateKey string `gorm:"size:10;not null;index:idx_workout_user_date"`

	ProgramDayID *uint
	FocusLabel   string // e.g. "Chest & Tris"
	Name         string `gorm:"not null"`
	Type         string `gorm:"size:16"`

	Minutes *int
	Sets    *int
	Reps    *int
	Weight  *float64
	Notes   string

	IsCompleted bool
}
