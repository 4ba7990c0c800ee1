package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
)

type DayController struct {
	Days *services.DayCompletionService
}

func NewDayController(d *services.DayCompletionService) *DayController {
	return &DayController{Days: d}
}

// Status returns the live goal evaluation for today.
func (dc *DayController) Status(c *gin.Context) {
	uid := c.GetUint("userID")

	status, err := dc.Days.Status(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, status)
}

type completeDayInput struct {
	ConfirmMissed bool `json:"confirm_missed"`
}

// Complete closes out today. When goals are missed and the client has not
// confirmed, it answers 409 with the missed list so the UI can ask.
func (dc *DayController) Complete(c *gin.Context) {
	uid := c.GetUint("userID")

	var input completeDayInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	entry, err := dc.Days.CompleteDay(uid, input.ConfirmMissed)
	if err != nil {
		var confirm *services.ConfirmationRequiredError
		if errors.As(err, &confirm) {
			c.JSON(http.StatusConflict, gin.H{
				"error":        "some goals were missed",
				"missed_goals": confirm.MissedGoals,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, entry)
}
