package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

var (
	ErrSlotOutOfRange   = errors.New("meal slot index must be between 1 and 5")
	ErrTemplateNotFound = errors.New("meal template not found")
)

// MealTrackingService owns meal templates and the five daily slots, and
// keeps the day's calorie/macro totals in sync with slot completion.
type MealTrackingService struct {
	db    *gorm.DB
	prefs *PreferencesService
}

func NewMealTrackingService(db *gorm.DB) *MealTrackingService {
	return &MealTrackingService{db: db, prefs: NewPreferencesService(db)}
}

type MealTemplateInput struct {
	Name     string `json:"name" binding:"required"`
	Calories int    `json:"calories"`
	Protein  int    `json:"protein"`
	Carbs    int    `json:"carbs"`
	Fats     int    `json:"fats"`
	Category string `json:"category"`
}

func (s *MealTrackingService) CreateTemplate(userID uint, in MealTemplateInput) (*models.MealTemplate, error) {
	if in.Category == "" {
		in.Category = models.MealCategoryMeal
	}
	if err := validMealCategory(in.Category); err != nil {
		return nil, err
	}
	t := models.MealTemplate{
		UserID:   userID,
		Name:     in.Name,
		Calories: in.Calories,
		Protein:  in.Protein,
		Carbs:    in.Carbs,
		Fats:     in.Fats,
		Category: in.Category,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *MealTrackingService) UpdateTemplate(userID, templateID uint, in MealTemplateInput) (*models.MealTemplate, error) {
	var t models.MealTemplate
	if err := s.db.Where("id = ? AND user_id = ?", templateID, userID).First(&t).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if in.Category != "" {
		if err := validMealCategory(in.Category); err != nil {
			return nil, err
		}
		t.Category = in.Category
	}
	t.Name = in.Name
	t.Calories = in.Calories
	t.Protein = in.Protein
	t.Carbs = in.Carbs
	t.Fats = in.Fats
	if err := s.db.Save(&t).Error; err != nil {
		return nil, err
	}
	// Macro edits may change today's totals if the template sits in a
	// completed slot.
	if err := s.RecalculateTodayTotals(userID); err != nil {
		return nil, err
	}
	return &t, nil
}

// DeleteTemplate removes a template and clears it from any slot that
// references it.
func (s *MealTrackingService) DeleteTemplate(userID, templateID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", templateID, userID).Delete(&models.MealTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	if err := s.db.Model(&models.MealSlot{}).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Updates(map[string]any{"template_id": nil, "completed": false}).Error; err != nil {
		return err
	}
	return s.RecalculateTodayTotals(userID)
}

func (s *MealTrackingService) ListTemplates(userID uint) ([]models.MealTemplate, error) {
	var templates []models.MealTemplate
	err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&templates).Error
	return templates, err
}

func validMealCategory(c string) error {
	switch c {
	case models.MealCategoryMeal, models.MealCategorySnack, models.MealCategoryCheat:
		return nil
	}
	return errors.New("category must be meal, snack or cheat")
}

// GetSlots returns the five slots in order, creating empty ones on first
// read.
func (s *MealTrackingService) GetSlots(userID uint) ([]models.MealSlot, error) {
	var slots []models.MealSlot
	if err := s.db.Where("user_id = ?", userID).Order("slot_index ASC").Find(&slots).Error; err != nil {
		return nil, err
	}
	if len(slots) >= models.MealSlotCount {
		return slots, nil
	}

	have := make(map[int]bool, len(slots))
	for _, sl := range slots {
		have[sl.SlotIndex] = true
	}
	for i := 1; i <= models.MealSlotCount; i++ {
		if have[i] {
			continue
		}
		sl := models.MealSlot{UserID: userID, SlotIndex: i}
		if err := s.db.Create(&sl).Error; err != nil {
			return nil, err
		}
		slots = append(slots, sl)
	}
	// Re-read so freshly created slots come back in index order.
	err := s.db.Where("user_id = ?", userID).Order("slot_index ASC").Find(&slots).Error
	return slots, err
}

func (s *MealTrackingService) getSlot(userID uint, slotIndex int) (*models.MealSlot, error) {
	if slotIndex < 1 || slotIndex > models.MealSlotCount {
		return nil, ErrSlotOutOfRange
	}
	if _, err := s.GetSlots(userID); err != nil {
		return nil, err
	}
	var slot models.MealSlot
	if err := s.db.Where("user_id = ? AND slot_index = ?", userID, slotIndex).First(&slot).Error; err != nil {
		return nil, err
	}
	return &slot, nil
}

// AssignTemplate points a slot at a template (or clears it with nil).
// Completion is reset on reassignment.
func (s *MealTrackingService) AssignTemplate(userID uint, slotIndex int, templateID *uint) (*models.MealSlot, error) {
	slot, err := s.getSlot(userID, slotIndex)
	if err != nil {
		return nil, err
	}
	if templateID != nil {
		var t models.MealTemplate
		if err := s.db.Where("id = ? AND user_id = ?", *templateID, userID).First(&t).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrTemplateNotFound
			}
			return nil, err
		}
	}
	slot.TemplateID = templateID
	slot.Completed = false
	if err := s.db.Save(slot).Error; err != nil {
		return nil, err
	}
	if err := s.RecalculateTodayTotals(userID); err != nil {
		return nil, err
	}
	return slot, nil
}

// SetSlotCompleted marks a slot eaten (or un-eaten) and re-derives the
// day's totals from scratch.
func (s *MealTrackingService) SetSlotCompleted(userID uint, slotIndex int, completed bool) (*models.MealSlot, error) {
	slot, err := s.getSlot(userID, slotIndex)
	if err != nil {
		return nil, err
	}
	if slot.TemplateID == nil {
		return nil, errors.New("slot has no meal selected")
	}
	wasCompleted := slot.Completed
	slot.Completed = completed
	if err := s.db.Save(slot).Error; err != nil {
		return nil, err
	}
	if err := s.RecalculateTodayTotals(userID); err != nil {
		return nil, err
	}

	if completed && !wasCompleted {
		var t models.MealTemplate
		if err := s.db.First(&t, *slot.TemplateID).Error; err == nil {
			EmitEvent(userID, models.EventMealCompleted,
				fmt.Sprintf("Meal %d completed: %s", slotIndex, t.Name),
				map[string]any{"slot": slotIndex, "templateId": t.ID})
		}
		planned, done, err := s.PlannedCompleted(userID)
		if err == nil && planned > 0 && done == planned {
			EmitEvent(userID, models.EventMealsAllCompleted, "All planned meals completed", nil)
		}
	}
	return slot, nil
}

// PlannedCompleted counts slots with a meal selected and how many of
// those are eaten.
func (s *MealTrackingService) PlannedCompleted(userID uint) (planned, completed int, err error) {
	slots, err := s.GetSlots(userID)
	if err != nil {
		return 0, 0, err
	}
	for _, sl := range slots {
		if sl.TemplateID == nil {
			continue
		}
		planned++
		if sl.Completed {
			completed++
		}
	}
	return planned, completed, nil
}

// RecalculateTodayTotals re-derives calories, macros and the cheat flag
// for today from the completed slots. Deriving from scratch keeps totals
// correct under un-completion and template edits.
func (s *MealTrackingService) RecalculateTodayTotals(userID uint) error {
	prefs, err := s.prefs.Get(userID)
	if err != nil {
		return err
	}
	slots, err := s.GetSlots(userID)
	if err != nil {
		return err
	}

	var calories, protein, carbs, fats int
	cheatUsed := false
	for _, sl := range slots {
		if !sl.Completed || sl.TemplateID == nil {
			continue
		}
		var t models.MealTemplate
		if err := s.db.First(&t, *sl.TemplateID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return err
		}
		calories += t.Calories
		protein += t.Protein
		carbs += t.Carbs
		fats += t.Fats
		if t.Category == models.MealCategoryCheat {
			cheatUsed = true
		}
	}

	key := DateKey(time.Now())
	var m models.DayMetrics
	err = s.db.Where("user_id = ? AND date_key = ?", userID, key).First(&m).Error
	if err == gorm.ErrRecordNotFound {
		m = models.DayMetrics{UserID: userID, DateKey: key}
		if err := s.db.Create(&m).Error; err != nil {
			return err
		}
	} else if err != nil {
		return err
	}

	beforeCalories, beforeProtein, beforeCheat := m.Calories, m.Protein, m.CheatUsedToday
	m.Calories = calories
	m.Protein = protein
	m.Carbs = carbs
	m.Fats = fats
	m.CheatUsedToday = cheatUsed
	if err := s.db.Save(&m).Error; err != nil {
		return err
	}

	if prefs.CalorieGoalDirection == models.CalorieDirectionAtLeast &&
		beforeCalories < prefs.DailyCalorieGoal && calories >= prefs.DailyCalorieGoal {
		EmitEvent(userID, models.EventCalorieGoalReached,
			fmt.Sprintf("Calorie goal reached (%d kcal)", prefs.DailyCalorieGoal), nil)
	}
	if beforeProtein < prefs.DailyProteinGoal && protein >= prefs.DailyProteinGoal {
		EmitEvent(userID, models.EventProteinGoalReached,
			fmt.Sprintf("Protein goal reached (%dg)", prefs.DailyProteinGoal), nil)
	}
	if !beforeCheat && cheatUsed {
		EmitEvent(userID, models.EventCheatMealLogged, "Cheat meal logged", nil)
	}
	return nil
}
