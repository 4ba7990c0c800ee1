package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
	"github.com/Glory2TheLord/FitLogV1/services"
)

type HistoryController struct {
	History *services.HistoryService
}

func NewHistoryController(h *services.HistoryService) *HistoryController {
	return &HistoryController{History: h}
}

func (hc *HistoryController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	entries, err := hc.History.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetDay returns one day's snapshot with its timeline in chronological
// order.
func (hc *HistoryController) GetDay(c *gin.Context) {
	uid := c.GetUint("userID")

	entry, err := hc.History.Get(uid, c.Param("date"))
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "no history for that day"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	events, err := services.SortedEventsOf(entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"entry":  entry,
		"events": events,
	})
}

// AddNote appends a free-text note to today's timeline.
func (hc *HistoryController) AddNote(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Note string `json:"note" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ev := services.NewHistoryEvent(models.EventDayNoteAdded, input.Note, nil)
	if err := hc.History.AppendEventForToday(uid, ev); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, ev)
}

func (hc *HistoryController) DeleteDay(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := hc.History.Delete(uid, c.Param("date")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "history entry deleted"})
}
