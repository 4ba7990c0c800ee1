package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	FirstName string
	LastName  string

	// Anchor date for the program-day rotation and the weigh-in/photo
	// due-today interval rules. Set at registration.
	ProgramStartDate time.Time

	MFAEnabled    bool
	MFACode       string
	ResetToken    string
	ResetTokenExp time.Time
	Disabled      bool
	Onboarded     bool
}
