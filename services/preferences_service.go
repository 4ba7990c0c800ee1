package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

type PreferencesService struct {
	db *gorm.DB
}

func NewPreferencesService(db *gorm.DB) *PreferencesService {
	return &PreferencesService{db: db}
}

// Get returns the user's preferences, creating the defaults on first read.
func (s *PreferencesService) Get(userID uint) (*models.Preferences, error) {
	var prefs models.Preferences
	err := s.db.Where("user_id = ?", userID).First(&prefs).Error
	if err == gorm.ErrRecordNotFound {
		prefs = models.DefaultPreferences(userID)
		if err := s.db.Create(&prefs).Error; err != nil {
			return nil, err
		}
		return &prefs, nil
	}
	if err != nil {
		return nil, err
	}
	return &prefs, nil
}

type UpdatePreferencesInput struct {
	DailyStepGoal         *int     `json:"dailyStepGoal"`
	DailyWaterGoal        *float64 `json:"dailyWaterGoal"`
	DailyCalorieGoal      *int     `json:"dailyCalorieGoal"`
	DailyProteinGoal      *int     `json:"dailyProteinGoal"`
	CheatMealIntervalDays *int     `json:"cheatMealIntervalDays"`
	CalorieGoalDirection  *string  `json:"calorieGoalDirection"`
}

// Update applies the non-nil fields after validation.
func (s *PreferencesService) Update(userID uint, in UpdatePreferencesInput) (*models.Preferences, error) {
	prefs, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.DailyStepGoal != nil {
		if *in.DailyStepGoal <= 0 {
			return nil, errors.New("step goal must be positive")
		}
		prefs.DailyStepGoal = *in.DailyStepGoal
	}
	if in.DailyWaterGoal != nil {
		if *in.DailyWaterGoal <= 0 {
			return nil, errors.New("water goal must be positive")
		}
		prefs.DailyWaterGoal = *in.DailyWaterGoal
	}
	if in.DailyCalorieGoal != nil {
		if *in.DailyCalorieGoal <= 0 {
			return nil, errors.New("calorie goal must be positive")
		}
		prefs.DailyCalorieGoal = *in.DailyCalorieGoal
	}
	if in.DailyProteinGoal != nil {
		if *in.DailyProteinGoal <= 0 {
			return nil, errors.New("protein goal must be positive")
		}
		prefs.DailyProteinGoal = *in.DailyProteinGoal
	}
	if in.CheatMealIntervalDays != nil {
		if *in.CheatMealIntervalDays < 0 {
			return nil, errors.New("cheat meal interval cannot be negative")
		}
		prefs.CheatMealIntervalDays = *in.CheatMealIntervalDays
	}
	if in.CalorieGoalDirection != nil {
		switch *in.CalorieGoalDirection {
		case models.CalorieDirectionAtLeast, models.CalorieDirectionAtMost:
			prefs.CalorieGoalDirection = *in.CalorieGoalDirection
		default:
			return nil, errors.New("calorie goal direction must be at_least or at_most")
		}
	}

	if err := s.db.Save(prefs).Error; err != nil {
		return nil, err
	}
	return prefs, nil
}
