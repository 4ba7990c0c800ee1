package controllers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/config"
	"github.com/Glory2TheLord/FitLogV1/models"
	"github.com/Glory2TheLord/FitLogV1/services"
)

type WorkoutController struct {
	Workouts *services.WorkoutService
}

func NewWorkoutController(w *services.WorkoutService) *WorkoutController {
	return &WorkoutController{Workouts: w}
}

func workoutStatus(err error) int {
	if errors.Is(err, services.ErrWorkoutNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (wc *WorkoutController) ListProgramDays(c *gin.Context) {
	uid := c.GetUint("userID")

	days, err := wc.Workouts.ListProgramDays(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, days)
}

func (wc *WorkoutController) AddProgramDay(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := wc.Workouts.AddProgramDay(uid, input.Name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, day)
}

func (wc *WorkoutController) UpdateProgramDay(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid program day id"})
		return
	}

	var input services.ProgramDayUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := wc.Workouts.UpdateProgramDay(uid, uint(id), input)
	if err != nil {
		c.JSON(workoutStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

// FocusToday reports where the training rotation lands today.
func (wc *WorkoutController) FocusToday(c *gin.Context) {
	uid := c.GetUint("userID")

	var user models.User
	if err := config.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	start := user.ProgramStartDate
	if start.IsZero() {
		start = services.DefaultProgramStart
	}

	day, err := wc.Workouts.FocusForDate(uid, start, time.Now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if day == nil {
		c.JSON(http.StatusOK, gin.H{"focus": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"focus": day})
}

func (wc *WorkoutController) ListTemplates(c *gin.Context) {
	uid := c.GetUint("userID")

	if dayParam := c.Query("programDayId"); dayParam != "" {
		dayID, err := strconv.ParseUint(dayParam, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid programDayId"})
			return
		}
		templates, err := wc.Workouts.TemplatesForProgramDay(uid, uint(dayID))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, templates)
		return
	}

	templates, err := wc.Workouts.ListTemplates(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (wc *WorkoutController) CreateTemplate(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.WorkoutTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := wc.Workouts.CreateTemplate(uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (wc *WorkoutController) UpdateTemplate(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	var input services.WorkoutTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := wc.Workouts.UpdateTemplate(uid, uint(id), input)
	if err != nil {
		c.JSON(workoutStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (wc *WorkoutController) DeleteTemplate(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	if err := wc.Workouts.DeleteTemplate(uid, uint(id)); err != nil {
		c.JSON(workoutStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

func (wc *WorkoutController) ListForDate(c *gin.Context) {
	uid := c.GetUint("userID")

	dateKey := c.Query("date")
	if dateKey == "" {
		dateKey = services.DateKey(time.Now())
	}

	entries, err := wc.Workouts.WorkoutsForDate(uid, dateKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (wc *WorkoutController) AddWorkout(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.WorkoutEntryInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := wc.Workouts.AddWorkout(uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, e)
}

func (wc *WorkoutController) UpdateWorkout(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return
	}

	var input services.WorkoutEntryUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	e, err := wc.Workouts.UpdateWorkout(uid, uint(id), input)
	if err != nil {
		c.JSON(workoutStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (wc *WorkoutController) DeleteWorkout(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return
	}

	if err := wc.Workouts.DeleteWorkout(uid, uint(id)); err != nil {
		c.JSON(workoutStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "workout deleted"})
}

func (wc *WorkoutController) ToggleCompleted(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid workout id"})
		return
	}

	e, err := wc.Workouts.ToggleCompleted(uid, uint(id))
	if err != nil {
		c.JSON(workoutStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, e)
}
