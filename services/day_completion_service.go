package services

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

// ConfirmationRequiredError is returned when the user tries to close a
// day with goals still missed and has not confirmed doing so.
type ConfirmationRequiredError struct {
	MissedGoals []string
}

func (e *ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("goals missed: %s", strings.Join(e.MissedGoals, ", "))
}

// DayCompletionService runs the end-of-day workflow: evaluate every goal,
// snapshot the day into history, update the eating streak, and reset the
// accumulators for tomorrow.
type DayCompletionService struct {
	db       *gorm.DB
	prefs    *PreferencesService
	meals    *MealTrackingService
	workouts *WorkoutService
	photos   *PhotoService
	weighIns *WeighInService
	history  *HistoryService
}

func NewDayCompletionService(db *gorm.DB) *DayCompletionService {
	return &DayCompletionService{
		db:       db,
		prefs:    NewPreferencesService(db),
		meals:    NewMealTrackingService(db),
		workouts: NewWorkoutService(db),
		photos:   NewPhotoService(db, nil),
		weighIns: NewWeighInService(db),
		history:  NewHistoryService(db),
	}
}

// dayContext is everything read up front for one evaluation pass.
type dayContext struct {
	now     time.Time
	key     string
	user    models.User
	prefs   *models.Preferences
	metrics *models.DayMetrics
	streak  models.EatingStreak

	mealsPlanned, mealsCompleted int
	workoutsCompleted            int

	weighInDue   bool
	hasWeighedIn bool

	photosDue      bool
	photosTaken    int
	photosRequired int
	photosComplete bool

	isCheatDay bool
}

func (s *DayCompletionService) programStart(u *models.User) time.Time {
	if u.ProgramStartDate.IsZero() {
		return DefaultProgramStart
	}
	return u.ProgramStartDate
}

func (s *DayCompletionService) loadContext(userID uint, now time.Time) (*dayContext, error) {
	ctx := &dayContext{now: now, key: DateKey(now)}

	if err := s.db.First(&ctx.user, userID).Error; err != nil {
		return nil, err
	}
	prefs, err := s.prefs.Get(userID)
	if err != nil {
		return nil, err
	}
	ctx.prefs = prefs

	var m models.DayMetrics
	err = s.db.Where("user_id = ? AND date_key = ?", userID, ctx.key).First(&m).Error
	if err == gorm.ErrRecordNotFound {
		m = models.DayMetrics{UserID: userID, DateKey: ctx.key}
		if err := s.db.Create(&m).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	ctx.metrics = &m

	if err := s.getOrCreateStreak(s.db, userID, &ctx.streak); err != nil {
		return nil, err
	}

	ctx.mealsPlanned, ctx.mealsCompleted, err = s.meals.PlannedCompleted(userID)
	if err != nil {
		return nil, err
	}
	ctx.workoutsCompleted, err = s.workouts.CompletedCountForDate(userID, ctx.key)
	if err != nil {
		return nil, err
	}

	start := s.programStart(&ctx.user)
	ctx.weighInDue = WeighInDueToday(start, now)
	ctx.photosDue = PhotosDueToday(start, now)

	ctx.hasWeighedIn, err = s.weighIns.HasWeighedInOn(userID, ctx.key)
	if err != nil {
		return nil, err
	}
	ctx.photosTaken, ctx.photosRequired, ctx.photosComplete, err = s.photos.StatusForDate(userID, ctx.key)
	if err != nil {
		return nil, err
	}

	ctx.isCheatDay = ctx.streak.DaysToCheatMeal(prefs.CheatMealIntervalDays) == 0
	return ctx, nil
}

func (s *DayCompletionService) getOrCreateStreak(db *gorm.DB, userID uint, out *models.EatingStreak) error {
	err := db.Where("user_id = ?", userID).First(out).Error
	if err == gorm.ErrRecordNotFound {
		*out = models.EatingStreak{UserID: userID}
		return db.Create(out).Error
	}
	return err
}

func (ctx *dayContext) goalInput() GoalInput {
	return GoalInput{
		Steps:              ctx.metrics.Steps,
		StepGoal:           ctx.prefs.DailyStepGoal,
		Calories:           ctx.metrics.Calories,
		CalorieGoal:        ctx.prefs.DailyCalorieGoal,
		CalorieDirection:   ctx.prefs.CalorieGoalDirection,
		Protein:            ctx.metrics.Protein,
		ProteinGoal:        ctx.prefs.DailyProteinGoal,
		Water:              ctx.metrics.WaterLiters,
		WaterGoal:          ctx.prefs.DailyWaterGoal,
		MealsPlanned:       ctx.mealsPlanned,
		MealsCompleted:     ctx.mealsCompleted,
		WorkoutsCompleted:  ctx.workoutsCompleted,
		WeighInRequired:    ctx.weighInDue,
		HasWeighedIn:       ctx.hasWeighedIn,
		PhotosRequired:     ctx.photosDue,
		HasCompletedPhotos: ctx.photosComplete,
		IsCheatDay:         ctx.isCheatDay,
		HasUsedCheatToday:  ctx.metrics.CheatUsedToday,
	}
}

// DayStatus is the live dashboard snapshot for today.
type DayStatus struct {
	DateKey         string             `json:"dateKey"`
	Metrics         *models.DayMetrics `json:"metrics"`
	Goals           GoalResult         `json:"goals"`
	WeighInDue      bool               `json:"weighInDue"`
	PhotosDue       bool               `json:"photosDue"`
	PhotosTaken     int                `json:"photosTaken"`
	PhotosRequired  int                `json:"photosRequired"`
	IsCheatDay      bool               `json:"isCheatDay"`
	EatingStreak    int                `json:"eatingStreak"`
	LongestStreak   int                `json:"longestStreak"`
	DaysToCheatMeal int                `json:"daysToCheatMeal"`
}

// Status evaluates today without side effects beyond lazy row creation.
func (s *DayCompletionService) Status(userID uint) (*DayStatus, error) {
	ctx, err := s.loadContext(userID, time.Now())
	if err != nil {
		return nil, err
	}
	return &DayStatus{
		DateKey:         ctx.key,
		Metrics:         ctx.metrics,
		Goals:           EvaluateGoals(ctx.goalInput()),
		WeighInDue:      ctx.weighInDue,
		PhotosDue:       ctx.photosDue,
		PhotosTaken:     ctx.photosTaken,
		PhotosRequired:  ctx.photosRequired,
		IsCheatDay:      ctx.isCheatDay,
		EatingStreak:    ctx.streak.GoodEatingStreak,
		LongestStreak:   ctx.streak.LongestStreak,
		DaysToCheatMeal: ctx.streak.DaysToCheatMeal(ctx.prefs.CheatMealIntervalDays),
	}, nil
}

// CompleteDay closes out today. Unless confirmMissed is set, a day with
// missed goals is rejected with ConfirmationRequiredError so the client
// can show what is still open. On success the day is snapshotted to
// history, the eating streak updated, and all accumulators reset, in one
// transaction. Completing the same day again overwrites its snapshot.
func (s *DayCompletionService) CompleteDay(userID uint, confirmMissed bool) (*models.HistoryEntry, error) {
	now := time.Now()
	ctx, err := s.loadContext(userID, now)
	if err != nil {
		return nil, err
	}

	result := EvaluateGoals(ctx.goalInput())
	if !result.AllGoalsReached && !confirmMissed {
		return nil, &ConfirmationRequiredError{MissedGoals: result.MissedGoals}
	}

	weeksUntilGoal, err := s.weighIns.WeeksUntilGoal(userID)
	if err != nil {
		return nil, err
	}

	completion := NewHistoryEvent(models.EventMarkDayComplete,
		"Day marked complete",
		map[string]any{
			"dateKey":         ctx.key,
			"allGoalsReached": result.AllGoalsReached,
			"missedGoals":     result.MissedGoals,
		})

	var entry *models.HistoryEntry
	err = s.db.Transaction(func(tx *gorm.DB) error {
		hist := NewHistoryService(tx)

		entry, err = s.buildEntry(tx, hist, ctx, result, weeksUntilGoal, completion)
		if err != nil {
			return err
		}
		if err := hist.Upsert(entry); err != nil {
			return err
		}
		if err := s.updateStreak(tx, ctx, result); err != nil {
			return err
		}
		return s.resetDay(tx, userID, ctx.key)
	})
	if err != nil {
		return nil, err
	}

	// Broadcast the exact event that was stored on the entry.
	AnnounceEvent(userID, completion)
	return entry, nil
}

func (s *DayCompletionService) buildEntry(tx *gorm.DB, hist *HistoryService, ctx *dayContext, result GoalResult, weeksUntilGoal *float64, completion models.HistoryEvent) (*models.HistoryEntry, error) {
	// Carry over events accrued on today's placeholder entry, if any.
	var events []models.HistoryEvent
	if existing, err := hist.Get(ctx.user.ID, ctx.key); err == nil {
		events, err = EventsOf(existing)
		if err != nil {
			return nil, err
		}
	} else if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	events = append(events, completion)

	encodedEvents, err := EncodeEvents(events)
	if err != nil {
		return nil, err
	}
	missed, err := json.Marshal(result.MissedGoals)
	if err != nil {
		return nil, err
	}

	var weight *float64
	if ctx.hasWeighedIn {
		var latest models.WeighIn
		day, _ := time.ParseInLocation("2006-01-02", ctx.key, time.Local)
		if err := tx.Where("user_id = ? AND date >= ? AND date < ?", ctx.user.ID, day, day.AddDate(0, 0, 1)).
			Order("date DESC, id DESC").First(&latest).Error; err == nil {
			weight = &latest.WeightLbs
		}
	}

	var bp datatypes.JSON
	if ctx.metrics.HasBloodPressure() {
		reading := models.BloodPressureReading{
			Systolic:  *ctx.metrics.BPSystolic,
			Diastolic: *ctx.metrics.BPDiastolic,
		}
		if ctx.metrics.BPLoggedAt != nil {
			reading.Timestamp = ctx.metrics.BPLoggedAt.Format(time.RFC3339)
		}
		raw, err := json.Marshal(reading)
		if err != nil {
			return nil, err
		}
		bp = datatypes.JSON(raw)
	}

	cycleDay := ctx.streak.GoodEatingStreak
	daysUntilCheat := ctx.streak.DaysToCheatMeal(ctx.prefs.CheatMealIntervalDays)

	return &models.HistoryEntry{
		UserID:  ctx.user.ID,
		DateKey: ctx.key,
		DateISO: dayStartLocal(ctx.now).Format(time.RFC3339),

		IsDayComplete:   true,
		AllGoalsReached: result.AllGoalsReached,
		MissedGoals:     datatypes.JSON(missed),

		Steps:    ctx.metrics.Steps,
		StepGoal: ctx.prefs.DailyStepGoal,

		Water:     ctx.metrics.WaterLiters,
		WaterGoal: ctx.prefs.DailyWaterGoal,

		Calories:    ctx.metrics.Calories,
		CalorieGoal: ctx.prefs.DailyCalorieGoal,

		Protein:     ctx.metrics.Protein,
		ProteinGoal: ctx.prefs.DailyProteinGoal,

		Carbs: ctx.metrics.Carbs,
		Fats:  ctx.metrics.Fats,

		WorkoutsCompleted: ctx.workoutsCompleted,
		MealsCompleted:    ctx.mealsCompleted,
		MealsPlanned:      ctx.mealsPlanned,

		DidWeighIn: ctx.hasWeighedIn,
		WeightLbs:  weight,

		DidPhotos:      ctx.photosComplete,
		PhotosTaken:    ctx.photosTaken,
		PhotosRequired: ctx.photosRequired,

		IsCheatDay:     ctx.isCheatDay,
		CycleDay:       &cycleDay,
		DaysUntilCheat: &daysUntilCheat,

		WeeksUntilGoal: weeksUntilGoal,

		BloodPressure: bp,
		Events:        encodedEvents,
	}, nil
}

// updateStreak applies the eating-streak rule: a day counts when the
// calorie and protein goals were met and no cheat meal was used.
func (s *DayCompletionService) updateStreak(tx *gorm.DB, ctx *dayContext, result GoalResult) error {
	var streak models.EatingStreak
	if err := s.getOrCreateStreak(tx, ctx.user.ID, &streak); err != nil {
		return err
	}

	goodDay := result.Passed[models.GoalCalories] &&
		result.Passed[models.GoalProtein] &&
		!ctx.metrics.CheatUsedToday
	if goodDay {
		streak.GoodEatingStreak++
	} else {
		streak.GoodEatingStreak = 0
	}
	if streak.GoodEatingStreak > streak.LongestStreak {
		streak.LongestStreak = streak.GoodEatingStreak
	}
	return tx.Save(&streak).Error
}

// resetDay zeroes the accumulators and clears per-day completion marks.
// Meal and workout selections survive; only the done flags go.
func (s *DayCompletionService) resetDay(tx *gorm.DB, userID uint, dateKey string) error {
	if err := tx.Model(&models.DayMetrics{}).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Updates(map[string]any{
			"steps":            0,
			"water_liters":     0,
			"calories":         0,
			"protein":          0,
			"carbs":            0,
			"fats":             0,
			"cheat_used_today": false,
			"bp_systolic":      nil,
			"bp_diastolic":     nil,
			"bp_logged_at":     nil,
		}).Error; err != nil {
		return err
	}
	if err := tx.Model(&models.MealSlot{}).
		Where("user_id = ?", userID).
		Update("completed", false).Error; err != nil {
		return err
	}
	return tx.Model(&models.WorkoutEntry{}).
		Where("user_id = ? AND date_key = ?", userID, dateKey).
		Update("is_completed", false).Error
}
