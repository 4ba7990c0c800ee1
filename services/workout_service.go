package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

var ErrWorkoutNotFound = errors.New("workout not found")

// Default training split seeded for new users.
var defaultProgramDayNames = []string{
	"Chest & Tris", "Shoulders", "Back & Bis", "Legs", "Accessories",
}

// WorkoutService owns the training split (program days), reusable
// exercise templates and per-date workout entries.
type WorkoutService struct {
	db *gorm.DB
}

func NewWorkoutService(db *gorm.DB) *WorkoutService {
	return &WorkoutService{db: db}
}

// ListProgramDays returns the split in index order, seeding the default
// five-day split on first read.
func (s *WorkoutService) ListProgramDays(userID uint) ([]models.ProgramDay, error) {
	var days []models.ProgramDay
	if err := s.db.Where("user_id = ?", userID).Order(`"index" ASC`).Find(&days).Error; err != nil {
		return nil, err
	}
	if len(days) > 0 {
		return days, nil
	}
	for i, name := range defaultProgramDayNames {
		d := models.ProgramDay{UserID: userID, Index: i + 1, Name: name, IsActive: true}
		if err := s.db.Create(&d).Error; err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, nil
}

func (s *WorkoutService) AddProgramDay(userID uint, name string) (*models.ProgramDay, error) {
	days, err := s.ListProgramDays(userID)
	if err != nil {
		return nil, err
	}
	d := models.ProgramDay{UserID: userID, Index: len(days) + 1, Name: name, IsActive: true}
	if err := s.db.Create(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

type ProgramDayUpdate struct {
	Name     *string `json:"name"`
	IsActive *bool   `json:"isActive"`
}

func (s *WorkoutService) UpdateProgramDay(userID, dayID uint, in ProgramDayUpdate) (*models.ProgramDay, error) {
	var d models.ProgramDay
	if err := s.db.Where("id = ? AND user_id = ?", dayID, userID).First(&d).Error; err != nil {
		return nil, err
	}
	if in.Name != nil {
		d.Name = *in.Name
	}
	if in.IsActive != nil {
		d.IsActive = *in.IsActive
	}
	if err := s.db.Save(&d).Error; err != nil {
		return nil, err
	}
	return &d, nil
}

// FocusForDate returns the program day the rotation lands on for the
// given date. Inactive days are skipped; the rotation walks active days
// in index order, one per calendar day since the program start.
func (s *WorkoutService) FocusForDate(userID uint, programStart, date time.Time) (*models.ProgramDay, error) {
	days, err := s.ListProgramDays(userID)
	if err != nil {
		return nil, err
	}
	var active []models.ProgramDay
	for _, d := range days {
		if d.IsActive {
			active = append(active, d)
		}
	}
	if len(active) == 0 {
		return nil, nil
	}
	sort.Slice(active, func(i, j int) bool { return active[i].Index < active[j].Index })

	n := DaysSinceStart(programStart, date)
	if n < 0 {
		n = 0
	}
	return &active[n%len(active)], nil
}

type WorkoutTemplateInput struct {
	Name           string   `json:"name" binding:"required"`
	Type           string   `json:"type"`
	DefaultMinutes *int     `json:"defaultMinutes"`
	DefaultSets    *int     `json:"defaultSets"`
	DefaultReps    *int     `json:"defaultReps"`
	DefaultWeight  *float64 `json:"defaultWeight"`
	ProgramDayIDs  []uint   `json:"programDayIds"`
}

func validWorkoutType(t string) error {
	switch t {
	case models.WorkoutTypeCardio, models.WorkoutTypeStrength,
		models.WorkoutTypeAccessory, models.WorkoutTypeOther:
		return nil
	}
	return errors.New("type must be cardio, strength, accessory or other")
}

func encodeProgramDayIDs(ids []uint) (datatypes.JSON, error) {
	if ids == nil {
		ids = []uint{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

func decodeProgramDayIDs(raw datatypes.JSON) []uint {
	if len(raw) == 0 {
		return nil
	}
	var ids []uint
	_ = json.Unmarshal(raw, &ids)
	return ids
}

func (s *WorkoutService) CreateTemplate(userID uint, in WorkoutTemplateInput) (*models.WorkoutTemplate, error) {
	if in.Type == "" {
		in.Type = models.WorkoutTypeStrength
	}
	if err := validWorkoutType(in.Type); err != nil {
		return nil, err
	}
	ids, err := encodeProgramDayIDs(in.ProgramDayIDs)
	if err != nil {
		return nil, err
	}
	t := models.WorkoutTemplate{
		UserID:         userID,
		Name:           in.Name,
		Type:           in.Type,
		DefaultMinutes: in.DefaultMinutes,
		DefaultSets:    in.DefaultSets,
		DefaultReps:    in.DefaultReps,
		DefaultWeight:  in.DefaultWeight,
		ProgramDayIDs:  ids,
	}
	if err := s.db.Create(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *WorkoutService) UpdateTemplate(userID, templateID uint, in WorkoutTemplateInput) (*models.WorkoutTemplate, error) {
	var t models.WorkoutTemplate
	if err := s.db.Where("id = ? AND user_id = ?", templateID, userID).First(&t).Error; err != nil {
		return nil, err
	}
	if in.Type != "" {
		if err := validWorkoutType(in.Type); err != nil {
			return nil, err
		}
		t.Type = in.Type
	}
	ids, err := encodeProgramDayIDs(in.ProgramDayIDs)
	if err != nil {
		return nil, err
	}
	t.Name = in.Name
	t.DefaultMinutes = in.DefaultMinutes
	t.DefaultSets = in.DefaultSets
	t.DefaultReps = in.DefaultReps
	t.DefaultWeight = in.DefaultWeight
	t.ProgramDayIDs = ids
	if err := s.db.Save(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *WorkoutService) DeleteTemplate(userID, templateID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", templateID, userID).Delete(&models.WorkoutTemplate{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

func (s *WorkoutService) ListTemplates(userID uint) ([]models.WorkoutTemplate, error) {
	var templates []models.WorkoutTemplate
	err := s.db.Where("user_id = ?", userID).Order("name ASC").Find(&templates).Error
	return templates, err
}

// TemplatesForProgramDay filters templates tagged with the given day.
func (s *WorkoutService) TemplatesForProgramDay(userID, dayID uint) ([]models.WorkoutTemplate, error) {
	all, err := s.ListTemplates(userID)
	if err != nil {
		return nil, err
	}
	var out []models.WorkoutTemplate
	for _, t := range all {
		for _, id := range decodeProgramDayIDs(t.ProgramDayIDs) {
			if id == dayID {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

type WorkoutEntryInput struct {
	DateKey      string   `json:"dateKey"`
	ProgramDayID *uint    `json:"programDayId"`
	FocusLabel   string   `json:"focusLabel"`
	Name         string   `json:"name" binding:"required"`
	Type         string   `json:"type"`
	Minutes      *int     `json:"minutes"`
	Sets         *int     `json:"sets"`
	Reps         *int     `json:"reps"`
	Weight       *float64 `json:"weight"`
	Notes        string   `json:"notes"`
}

// AddWorkout logs an exercise for a date (today when DateKey is empty).
func (s *WorkoutService) AddWorkout(userID uint, in WorkoutEntryInput) (*models.WorkoutEntry, error) {
	if in.DateKey == "" {
		in.DateKey = DateKey(time.Now())
	}
	if in.Type == "" {
		in.Type = models.WorkoutTypeStrength
	}
	if err := validWorkoutType(in.Type); err != nil {
		return nil, err
	}
	e := models.WorkoutEntry{
		UserID:       userID,
		DateKey:      in.DateKey,
		ProgramDayID: in.ProgramDayID,
		FocusLabel:   in.FocusLabel,
		Name:         in.Name,
		Type:         in.Type,
		Minutes:      in.Minutes,
		Sets:         in.Sets,
		Reps:         in.Reps,
		Weight:       in.Weight,
		Notes:        in.Notes,
	}
	if err := s.db.Create(&e).Error; err != nil {
		return nil, err
	}

	EmitEvent(userID, models.EventWorkoutLogged,
		fmt.Sprintf("Workout logged: %s", e.Name),
		map[string]any{"workoutId": e.ID, "focus": e.FocusLabel})
	if e.Notes != "" {
		EmitEvent(userID, models.EventWorkoutNotesAdded,
			fmt.Sprintf("Notes added to %s", e.Name),
			map[string]any{"workoutId": e.ID})
	}
	return &e, nil
}

type WorkoutEntryUpdate struct {
	Name    *string  `json:"name"`
	Type    *string  `json:"type"`
	Minutes *int     `json:"minutes"`
	Sets    *int     `json:"sets"`
	Reps    *int     `json:"reps"`
	Weight  *float64 `json:"weight"`
	Notes   *string  `json:"notes"`
}

func (s *WorkoutService) UpdateWorkout(userID, workoutID uint, in WorkoutEntryUpdate) (*models.WorkoutEntry, error) {
	var e models.WorkoutEntry
	if err := s.db.Where("id = ? AND user_id = ?", workoutID, userID).First(&e).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}

	hadNotes := e.Notes != ""
	edited := false
	if in.Name != nil {
		e.Name = *in.Name
		edited = true
	}
	if in.Type != nil {
		if err := validWorkoutType(*in.Type); err != nil {
			return nil, err
		}
		e.Type = *in.Type
		edited = true
	}
	if in.Minutes != nil {
		e.Minutes = in.Minutes
		edited = true
	}
	if in.Sets != nil {
		e.Sets = in.Sets
		edited = true
	}
	if in.Reps != nil {
		e.Reps = in.Reps
		edited = true
	}
	if in.Weight != nil {
		e.Weight = in.Weight
		edited = true
	}
	notesChanged := in.Notes != nil && *in.Notes != e.Notes
	if in.Notes != nil {
		e.Notes = *in.Notes
	}

	if err := s.db.Save(&e).Error; err != nil {
		return nil, err
	}

	if notesChanged && e.Notes != "" {
		evType := models.EventWorkoutNotesAdded
		if hadNotes {
			evType = models.EventWorkoutNotesUpdated
		}
		EmitEvent(userID, evType,
			fmt.Sprintf("Notes on %s", e.Name), map[string]any{"workoutId": e.ID})
	} else if edited {
		EmitEvent(userID, models.EventWorkoutEdited,
			fmt.Sprintf("Workout edited: %s", e.Name), map[string]any{"workoutId": e.ID})
	}
	return &e, nil
}

func (s *WorkoutService) DeleteWorkout(userID, workoutID uint) error {
	res := s.db.Where("id = ? AND user_id = ?", workoutID, userID).Delete(&models.WorkoutEntry{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrWorkoutNotFound
	}
	return nil
}

// ToggleCompleted flips an entry's completed mark.
func (s *WorkoutService) ToggleCompleted(userID, workoutID uint) (*models.WorkoutEntry, error) {
	var e models.WorkoutEntry
	if err := s.db.Where("id = ? AND user_id = ?", workoutID, userID).First(&e).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrWorkoutNotFound
		}
		return nil, err
	}
	e.IsCompleted = !e.IsCompleted
	if err := s.db.Save(&e).Error; err != nil {
		return nil, err
	}
	return &e, nil
}

func (s *WorkoutService) WorkoutsForDate(userID uint, dateKey string) ([]models.WorkoutEntry, error) {
	var entries []models.WorkoutEntry
	err := s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).
		Order("created_at ASC").Find(&entries).Error
	return entries, err
}

// CompletedCountForDate counts finished workouts on one day.
func (s *WorkoutService) CompletedCountForDate(userID uint, dateKey string) (int, error) {
	var n int64
	err := s.db.Model(&models.WorkoutEntry{}).
		Where("user_id = ? AND date_key = ? AND is_completed = ?", userID, dateKey, true).
		Count(&n).Error
	return int(n), err
}
