package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
	"github.com/Glory2TheLord/FitLogV1/utils"
)

// AnalyticsService aggregates finalized history entries into weekly and
// ranged views. Only completed days carry data; days never closed out
// show up as zeros.
type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// ---------- Weekly Overview ----------

type WeeklyOverviewResponse struct {
	WeekStart string `json:"week_start"`
	Mode      string `json:"mode"` // chart|detailed
	Days      any    `json:"days"`
}

type DayChart struct {
	Date        string             `json:"date"`
	Complete    bool               `json:"complete"`
	Percentages map[string]float64 `json:"percentages"`
}

type Metric struct {
	Actual  float64 `json:"actual"`
	Target  float64 `json:"target"`
	Percent float64 `json:"percent"`
}

type DayDetailed struct {
	Date     string            `json:"date"`
	Complete bool              `json:"complete"`
	Metrics  map[string]Metric `json:"metrics"`
}

func (s *AnalyticsService) WeeklyOverview(
	ctx context.Context, userID uint, weekStart time.Time, mode string,
) (*WeeklyOverviewResponse, error) {

	if mode != "chart" && mode != "detailed" {
		return nil, errors.New("mode must be 'chart' or 'detailed'")
	}

	from := dayStartLocal(weekStart)
	fromKey := DateKey(from)
	toKey := DateKey(from.AddDate(0, 0, 6))

	var rows []models.HistoryEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date_key BETWEEN ? AND ?", userID, fromKey, toKey).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	idx := map[string]models.HistoryEntry{}
	for _, r := range rows {
		idx[r.DateKey] = r
	}

	out := &WeeklyOverviewResponse{
		WeekStart: fromKey,
		Mode:      mode,
	}

	if mode == "chart" {
		var days []DayChart
		for i := 0; i < 7; i++ {
			key := DateKey(from.AddDate(0, 0, i))
			e := idx[key]
			days = append(days, DayChart{
				Date:     key,
				Complete: e.IsDayComplete,
				Percentages: map[string]float64{
					"steps":    pct(float64(e.Steps), float64(e.StepGoal)),
					"water":    pct(e.Water, e.WaterGoal),
					"calories": pct(float64(e.Calories), float64(e.CalorieGoal)),
					"protein":  pct(float64(e.Protein), float64(e.ProteinGoal)),
				},
			})
		}
		out.Days = days
		return out, nil
	}

	var days []DayDetailed
	for i := 0; i < 7; i++ {
		key := DateKey(from.AddDate(0, 0, i))
		e := idx[key]
		days = append(days, DayDetailed{
			Date:     key,
			Complete: e.IsDayComplete,
			Metrics: map[string]Metric{
				"steps":     {Actual: float64(e.Steps), Target: float64(e.StepGoal), Percent: pct(float64(e.Steps), float64(e.StepGoal))},
				"water_l":   {Actual: round2(e.Water), Target: round2(e.WaterGoal), Percent: pct(e.Water, e.WaterGoal)},
				"calories":  {Actual: float64(e.Calories), Target: float64(e.CalorieGoal), Percent: pct(float64(e.Calories), float64(e.CalorieGoal))},
				"protein_g": {Actual: float64(e.Protein), Target: float64(e.ProteinGoal), Percent: pct(float64(e.Protein), float64(e.ProteinGoal))},
			},
		})
	}
	out.Days = days
	return out, nil
}

// ---------- Ranged summary ----------

type RangeSummary struct {
	Range struct {
		From string `json:"from"`
		To   string `json:"to"`
	} `json:"range"`

	DaysCompleted   int      `json:"days_completed"`
	AllGoalsDays    int      `json:"all_goals_days"`
	CompletionRate  float64  `json:"completion_rate_pct"`
	AvgSteps        float64  `json:"avg_steps"`
	AvgWaterLiters  float64  `json:"avg_water_liters"`
	AvgCalories     float64  `json:"avg_calories"`
	AvgProtein      float64  `json:"avg_protein"`
	WorkoutsTotal   int      `json:"workouts_total"`
	WeighIns        int      `json:"weigh_ins"`
	CheatDaysUsed   int      `json:"cheat_days_used"`
	LatestWeightLbs *float64 `json:"latest_weight_lbs,omitempty"`
	WeeksUntilGoal  *float64 `json:"weeks_until_goal,omitempty"`
}

func (s *AnalyticsService) Summary(ctx context.Context, userID uint, from, to time.Time) (*RangeSummary, error) {
	fromKey := DateKey(from)
	toKey := DateKey(to)

	var rows []models.HistoryEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND date_key BETWEEN ? AND ? AND is_day_complete = ?", userID, fromKey, toKey, true).
		Order("date_key ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := &RangeSummary{}
	out.Range.From = fromKey
	out.Range.To = toKey
	out.DaysCompleted = len(rows)

	var steps, water, calories, protein float64
	for _, r := range rows {
		steps += float64(r.Steps)
		water += r.Water
		calories += float64(r.Calories)
		protein += float64(r.Protein)
		out.WorkoutsTotal += r.WorkoutsCompleted
		if r.AllGoalsReached {
			out.AllGoalsDays++
		}
		if r.DidWeighIn {
			out.WeighIns++
			if r.WeightLbs != nil {
				out.LatestWeightLbs = r.WeightLbs
			}
		}
		if r.IsCheatDay {
			out.CheatDaysUsed++
		}
		if r.WeeksUntilGoal != nil {
			out.WeeksUntilGoal = r.WeeksUntilGoal
		}
	}

	out.AvgSteps = avg(steps, len(rows))
	out.AvgWaterLiters = avg(water, len(rows))
	out.AvgCalories = avg(calories, len(rows))
	out.AvgProtein = avg(protein, len(rows))
	if len(rows) > 0 {
		out.CompletionRate = round2(float64(out.AllGoalsDays) / float64(len(rows)) * 100)
	}
	return out, nil
}

// EmailWeeklySummary renders last week's summary as plain text and mails
// it to the user.
func (s *AnalyticsService) EmailWeeklySummary(ctx context.Context, userID uint) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return err
	}

	to := dayStartLocal(time.Now())
	from := to.AddDate(0, 0, -6)
	sum, err := s.Summary(ctx, userID, from, to)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s to %s\n\n", sum.Range.From, sum.Range.To)
	fmt.Fprintf(&b, "Days completed: %d (%d with every goal hit)\n", sum.DaysCompleted, sum.AllGoalsDays)
	fmt.Fprintf(&b, "Avg steps: %.0f\n", sum.AvgSteps)
	fmt.Fprintf(&b, "Avg water: %.1fL\n", sum.AvgWaterLiters)
	fmt.Fprintf(&b, "Avg calories: %.0f kcal\n", sum.AvgCalories)
	fmt.Fprintf(&b, "Avg protein: %.0fg\n", sum.AvgProtein)
	fmt.Fprintf(&b, "Workouts: %d\n", sum.WorkoutsTotal)
	if sum.LatestWeightLbs != nil {
		fmt.Fprintf(&b, "Latest weigh-in: %.1f lbs\n", *sum.LatestWeightLbs)
	}
	if sum.WeeksUntilGoal != nil {
		fmt.Fprintf(&b, "Projected weeks to goal weight: %.1f\n", *sum.WeeksUntilGoal)
	}

	return utils.SendWeeklySummaryEmail(user.Email, b.String())
}

// ---------- internals ----------

func pct(actual, goal float64) float64 {
	if goal <= 0 {
		if actual <= 0 {
			return 0
		}
		return 100
	}
	return round2((actual / goal) * 100.0)
}

func avg(sum float64, n int) float64 {
	if n <= 0 {
		return 0
	}
	return round2(sum / float64(n))
}

func round2(v float64) float64 { return math.Round(v*100) / 100 }
