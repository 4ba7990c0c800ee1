package services

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

// WeighInService records scale readings and projects progress toward the
// goal weight.
type WeighInService struct {
	db *gorm.DB
}

func NewWeighInService(db *gorm.DB) *WeighInService {
	return &WeighInService{db: db}
}

// RecordWeighIn appends a reading, trims the window to the most recent
// ten, and keeps the profile's current weight in sync.
func (s *WeighInService) RecordWeighIn(userID uint, weightLbs float64) (*models.WeighIn, error) {
	if weightLbs <= 0 || math.IsNaN(weightLbs) || math.IsInf(weightLbs, 0) {
		return nil, ErrInvalidAmount
	}

	w := models.WeighIn{UserID: userID, Date: time.Now(), WeightLbs: weightLbs}
	if err := s.db.Create(&w).Error; err != nil {
		return nil, err
	}
	if err := s.trimToWindow(userID); err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&profile).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		return nil, err
	}
	if err == nil {
		var before *float64
		if profile.CurrentWeightLbs != nil {
			v := *profile.CurrentWeightLbs
			before = &v
		}
		profile.CurrentWeightLbs = &weightLbs
		if profile.StartingWeightLbs == nil {
			profile.StartingWeightLbs = &weightLbs
		}
		if err := s.db.Save(&profile).Error; err != nil {
			return nil, err
		}

		if profile.GoalWeightLbs != nil && weightLbs <= *profile.GoalWeightLbs &&
			(before == nil || *before > *profile.GoalWeightLbs) {
			EmitEvent(userID, models.EventGoalWeightReached,
				fmt.Sprintf("Goal weight reached: %.1f lbs", weightLbs), nil)
		}
	}

	EmitEvent(userID, models.EventWeighIn,
		fmt.Sprintf("Weighed in at %.1f lbs", weightLbs),
		map[string]any{"weightLbs": weightLbs})
	return &w, nil
}

func (s *WeighInService) trimToWindow(userID uint) error {
	var ids []uint
	if err := s.db.Model(&models.WeighIn{}).
		Where("user_id = ?", userID).
		Order("date DESC, id DESC").
		Limit(models.MaxWeighIns).
		Pluck("id", &ids).Error; err != nil {
		return err
	}
	if len(ids) < models.MaxWeighIns {
		return nil
	}
	return s.db.Where("user_id = ? AND id NOT IN ?", userID, ids).
		Delete(&models.WeighIn{}).Error
}

// List returns the retained readings, newest first.
func (s *WeighInService) List(userID uint) ([]models.WeighIn, error) {
	var weighIns []models.WeighIn
	err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").Find(&weighIns).Error
	return weighIns, err
}

// HasWeighedInOn reports whether any reading falls on the given local day.
func (s *WeighInService) HasWeighedInOn(userID uint, dateKey string) (bool, error) {
	day, err := time.ParseInLocation("2006-01-02", dateKey, time.Local)
	if err != nil {
		return false, err
	}
	var n int64
	err = s.db.Model(&models.WeighIn{}).
		Where("user_id = ? AND date >= ? AND date < ?", userID, day, day.AddDate(0, 0, 1)).
		Count(&n).Error
	return n > 0, err
}

// WeeksUntilGoal projects from the two most recent readings. Nil when
// fewer than two readings exist, no goal is set, or the trend is flat or
// moving away from the goal.
func (s *WeighInService) WeeksUntilGoal(userID uint) (*float64, error) {
	var profile models.UserProfile
	if err := s.db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	if profile.GoalWeightLbs == nil {
		return nil, nil
	}

	var recent []models.WeighIn
	if err := s.db.Where("user_id = ?", userID).
		Order("date DESC, id DESC").Limit(2).Find(&recent).Error; err != nil {
		return nil, err
	}
	if len(recent) < 2 {
		return nil, nil
	}

	latest, previous := recent[0], recent[1]
	return ProjectWeeksToGoal(previous.Date, previous.WeightLbs,
		latest.Date, latest.WeightLbs, *profile.GoalWeightLbs), nil
}

// ProjectWeeksToGoal extrapolates the weekly loss rate between two
// readings out to the goal weight. Returns nil unless weight is trending
// down toward the goal; zero when the goal is already reached. The raw
// quotient is returned; rounding is left to the display layer.
func ProjectWeeksToGoal(earlierDate time.Time, earlierLbs float64, laterDate time.Time, laterLbs, goalLbs float64) *float64 {
	days := laterDate.Sub(earlierDate).Hours() / 24
	if days <= 0 {
		return nil
	}
	lossPerWeek := (earlierLbs - laterLbs) / days * 7
	if lossPerWeek <= 0 {
		return nil
	}

	remaining := laterLbs - goalLbs
	if remaining < 0 {
		remaining = 0
	}
	weeks := remaining / lossPerWeek
	return &weeks
}
