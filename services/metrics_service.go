package services

import (
	"errors"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

var ErrInvalidAmount = errors.New("amount must be a positive, finite number")

// MetricsService owns the per-day accumulators (steps, water, blood
// pressure). Calories and macros are written by the meal tracker.
type MetricsService struct {
	db    *gorm.DB
	prefs *PreferencesService
}

func NewMetricsService(db *gorm.DB) *MetricsService {
	return &MetricsService{db: db, prefs: NewPreferencesService(db)}
}

// GetToday returns today's accumulator row, creating it on first touch.
func (s *MetricsService) GetToday(userID uint) (*models.DayMetrics, error) {
	return s.getForDay(s.db, userID, DateKey(time.Now()))
}

func (s *MetricsService) getForDay(db *gorm.DB, userID uint, key string) (*models.DayMetrics, error) {
	var m models.DayMetrics
	err := db.Where("user_id = ? AND date_key = ?", userID, key).First(&m).Error
	if err == gorm.ErrRecordNotFound {
		m = models.DayMetrics{UserID: userID, DateKey: key}
		if err := db.Create(&m).Error; err != nil {
			return nil, err
		}
		return &m, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// AddSteps adds a manual step count to today's total. Crossing the step
// goal emits a one-shot stepGoalReached event.
func (s *MetricsService) AddSteps(userID uint, delta int) (*models.DayMetrics, error) {
	if delta <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.applySteps(userID, func(current int) int { return current + delta },
		models.EventStepsAddedManual, fmt.Sprintf("Added %d steps", delta))
}

// SetSteps overwrites today's step total with a device-synced value.
func (s *MetricsService) SetSteps(userID uint, total int) (*models.DayMetrics, error) {
	if total < 0 {
		return nil, ErrInvalidAmount
	}
	return s.applySteps(userID, func(int) int { return total },
		models.EventStepsUpdatedFitbit, fmt.Sprintf("Steps synced: %d", total))
}

func (s *MetricsService) applySteps(userID uint, apply func(int) int, evType, summary string) (*models.DayMetrics, error) {
	prefs, err := s.prefs.Get(userID)
	if err != nil {
		return nil, err
	}

	m, err := s.GetToday(userID)
	if err != nil {
		return nil, err
	}
	before := m.Steps
	m.Steps = apply(before)
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}

	EmitEvent(userID, evType, summary, map[string]any{"steps": m.Steps})
	if before < prefs.DailyStepGoal && m.Steps >= prefs.DailyStepGoal {
		EmitEvent(userID, models.EventStepGoalReached,
			fmt.Sprintf("Step goal reached (%d)", prefs.DailyStepGoal), nil)
	}
	return m, nil
}

// AddWater adds liters to today's water total.
func (s *MetricsService) AddWater(userID uint, liters float64) (*models.DayMetrics, error) {
	if liters <= 0 || math.IsNaN(liters) || math.IsInf(liters, 0) {
		return nil, ErrInvalidAmount
	}

	m, err := s.GetToday(userID)
	if err != nil {
		return nil, err
	}
	m.WaterLiters += liters
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}

	EmitEvent(userID, models.EventWaterLogged,
		fmt.Sprintf("Logged %.2fL of water", liters),
		map[string]any{"liters": liters, "totalLiters": m.WaterLiters})
	return m, nil
}

// SetBloodPressure records today's reading, overwriting any earlier one.
func (s *MetricsService) SetBloodPressure(userID uint, systolic, diastolic int) (*models.DayMetrics, error) {
	if systolic <= 0 || diastolic <= 0 {
		return nil, ErrInvalidAmount
	}

	m, err := s.GetToday(userID)
	if err != nil {
		return nil, err
	}
	evType := models.EventBloodPressureLogged
	if m.HasBloodPressure() {
		evType = models.EventBloodPressureUpdated
	}

	now := time.Now()
	m.BPSystolic = &systolic
	m.BPDiastolic = &diastolic
	m.BPLoggedAt = &now
	if err := s.db.Save(m).Error; err != nil {
		return nil, err
	}

	EmitEvent(userID, evType,
		fmt.Sprintf("Blood pressure %d/%d", systolic, diastolic),
		map[string]any{"systolic": systolic, "diastolic": diastolic})
	return m, nil
}
