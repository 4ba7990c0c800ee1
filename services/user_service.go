package services

import (
	"errors"
	"time"

	"github.com/Glory2TheLord/FitLogV1/config"
	"github.com/Glory2TheLord/FitLogV1/models"
)

type AccountInput struct {
	FirstName        string `json:"first_name"`
	LastName         string `json:"last_name"`
	ProgramStartDate string `json:"program_start_date"` // YYYY-MM-DD
	Onboarded        bool   `json:"onboarded"`
}

func FindUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return nil, errors.New("user not found")
	}
	return &user, nil
}

func GetAccount(email string) (map[string]interface{}, error) {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return nil, errors.New("user not found or disabled")
	}

	return map[string]interface{}{
		"id":                 user.ID,
		"email":              user.Email,
		"first_name":         user.FirstName,
		"last_name":          user.LastName,
		"program_start_date": user.ProgramStartDate.Format("2006-01-02"),
		"mfa_enabled":        user.MFAEnabled,
		"onboarded":          user.Onboarded,
	}, nil
}

func UpdateAccount(email string, input AccountInput) error {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.ProgramStartDate != "" {
		start, err := time.ParseInLocation("2006-01-02", input.ProgramStartDate, time.Local)
		if err != nil {
			return errors.New("program_start_date must be YYYY-MM-DD")
		}
		user.ProgramStartDate = start
	}
	user.Onboarded = input.Onboarded

	return config.DB.Save(&user).Error
}

// DeleteUser disables the account rather than destroying its history.
func DeleteUser(email string) error {
	var user models.User
	if err := config.DB.First(&user, "email = ?", email).Error; err != nil {
		return err
	}
	user.Disabled = true
	return config.DB.Save(&user).Error
}

// SetMFAEnabled toggles email-code verification at login.
func SetMFAEnabled(email string, enabled bool) error {
	var user models.User
	result := config.DB.Where("email = ? AND disabled = ?", email, false).First(&user)
	if result.Error != nil {
		return errors.New("user not found or disabled")
	}
	user.MFAEnabled = enabled
	if !enabled {
		user.MFACode = ""
	}
	return config.DB.Save(&user).Error
}
