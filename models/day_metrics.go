package models

import (
	"time"

	"gorm.io/gorm"
)

// DayMetrics is the running accumulator row for one user and one local
// calendar day. It is mutated throughout the day and zeroed by the day
// completion workflow.
type DayMetrics struct {
	gorm.Model
	UserID  uint   `gorm:"not null;uniqueIndex:idx_day_metrics_user_date"`
	DateKey string `gorm:"size:10;not null;uniqueIndex:idx_day_metrics_user_date"` // YYYY-MM-DD, local time

	Steps       int
	WaterLiters float64

	Calories int
	Protein  int
	Carbs    int
	Fats     int

	CheatUsedToday bool

	BPSystolic  *int
	BPDiastolic *int
	BPLoggedAt  *time.Time
}

// HasBloodPressure reports whether a reading was logged today.
func (m *DayMetrics) HasBloodPressure() bool {
	return m.BPSystolic != nil && m.BPDiastolic != nil
}
