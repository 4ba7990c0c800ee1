package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
	"github.com/Glory2TheLord/FitLogV1/utils"
)

// ProfileService owns body stats, weight goals and the derived
// maintenance-calorie estimate.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// Get returns the profile, creating a default one on first read.
func (s *ProfileService) Get(userID uint) (*models.UserProfile, error) {
	var p models.UserProfile
	err := s.db.Where("user_id = ?", userID).First(&p).Error
	if err == gorm.ErrRecordNotFound {
		current, goal := 165.0, 155.0
		p = models.UserProfile{
			UserID:           userID,
			CurrentWeightLbs: &current,
			GoalWeightLbs:    &goal,
			ActivityLevel:    models.ActivityLight,
		}
		if err := s.db.Create(&p).Error; err != nil {
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type ProfileUpdateInput struct {
	Age      *int     `json:"age"`
	Sex      *string  `json:"sex"`
	HeightCm *float64 `json:"heightCm"`

	CurrentWeightLbs  *float64 `json:"currentWeightLbs"`
	GoalWeightLbs     *float64 `json:"goalWeightLbs"`
	StartingWeightLbs *float64 `json:"startingWeightLbs"`

	ActivityLevel *string `json:"activityLevel"`
}

func validActivityLevel(l string) bool {
	switch l {
	case models.ActivitySedentary, models.ActivityLight, models.ActivityModerate,
		models.ActivityActive, models.ActivityVeryActive:
		return true
	}
	return false
}

// Update applies the non-nil fields and recomputes maintenance calories
// when the inputs allow it.
func (s *ProfileService) Update(userID uint, in ProfileUpdateInput) (*models.UserProfile, error) {
	p, err := s.Get(userID)
	if err != nil {
		return nil, err
	}

	if in.Age != nil {
		if *in.Age <= 0 {
			return nil, errors.New("age must be positive")
		}
		p.Age = in.Age
	}
	if in.Sex != nil {
		p.Sex = in.Sex
	}
	if in.HeightCm != nil {
		if *in.HeightCm <= 0 {
			return nil, errors.New("height must be positive")
		}
		p.HeightCm = in.HeightCm
	}
	if in.CurrentWeightLbs != nil {
		if *in.CurrentWeightLbs <= 0 {
			return nil, errors.New("weight must be positive")
		}
		p.CurrentWeightLbs = in.CurrentWeightLbs
	}
	if in.GoalWeightLbs != nil {
		if *in.GoalWeightLbs <= 0 {
			return nil, errors.New("goal weight must be positive")
		}
		p.GoalWeightLbs = in.GoalWeightLbs
	}
	if in.StartingWeightLbs != nil {
		p.StartingWeightLbs = in.StartingWeightLbs
	}
	if in.ActivityLevel != nil {
		if !validActivityLevel(*in.ActivityLevel) {
			return nil, errors.New("unknown activity level")
		}
		p.ActivityLevel = *in.ActivityLevel
	}

	s.recomputeMaintenance(p)

	if err := s.db.Save(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// recomputeMaintenance refreshes the estimate when age, sex, height and
// weight are all known; otherwise the stored value is left alone.
func (s *ProfileService) recomputeMaintenance(p *models.UserProfile) {
	if p.Age == nil || p.Sex == nil || p.HeightCm == nil || p.CurrentWeightLbs == nil {
		return
	}
	kcal, err := utils.MaintenanceCalories(*p.Sex, *p.Age, *p.HeightCm, *p.CurrentWeightLbs, p.ActivityLevel)
	if err != nil {
		return
	}
	p.MaintenanceCalories = &kcal
}
