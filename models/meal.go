package models

import (
	"gorm.io/gorm"
)

const (
	MealCategoryMeal  = "meal"
	MealCategorySnack = "snack"
	MealCategoryCheat = "cheat"
)

// MealTemplate is a reusable user-authored meal with fixed macros.
type MealTemplate struct {
	gorm.Model
	UserID   uint   `gorm:"index;not null"`
	Name     string `gorm:"not null"`
	Calories int
	Protein  int
	Carbs    int
	Fats     int
	Category string `gorm:"size:16;default:'meal'"` // meal | snack | cheat
}

// MealSlot is one of the five daily slots. The template selection carries
// over between days; only the completed flag resets at day completion.
type MealSlot struct {
	gorm.Model
	UserID     uint `gorm:"not null;uniqueIndex:idx_meal_slot_user_index"`
	SlotIndex  int  `gorm:"not null;uniqueIndex:idx_meal_slot_user_index"` // 1..5
	TemplateID *uint
	Completed  bool
}

const MealSlotCount = 5
