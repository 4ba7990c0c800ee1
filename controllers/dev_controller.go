package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
	"github.com/Glory2TheLord/FitLogV1/services"
)

// DevController holds throwaway endpoints used while testing on device.
type DevController struct {
	DB   *gorm.DB
	Push *services.PushService
}

func NewDevController(db *gorm.DB, p *services.PushService) *DevController {
	return &DevController{DB: db, Push: p}
}

type pushReq struct {
	Title string            `json:"title"`
	Body  string            `json:"body"`
	Data  map[string]string `json:"data"`
}

func (d *DevController) PushTest(c *gin.Context) {
	uid := c.GetUint("userID")

	if d.Push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "push notifications unavailable"})
		return
	}

	var req pushReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Title == "" {
		req.Title = "FitLog test"
	}
	if req.Body == "" {
		req.Body = "This is only a test."
	}
	if req.Data == nil {
		req.Data = map[string]string{"type": "test"}
	}

	d.Push.PushToUser(uid, req.Title, req.Body, req.Data)

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ResetToday wipes today's accumulators, completion marks and the eating
// streak so the day flow can be exercised repeatedly on a test build.
func (d *DevController) ResetToday(c *gin.Context) {
	uid := c.GetUint("userID")
	key := services.DateKey(time.Now())

	err := d.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ? AND date_key = ?", uid, key).
			Delete(&models.DayMetrics{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.MealSlot{}).
			Where("user_id = ?", uid).
			Update("completed", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.WorkoutEntry{}).
			Where("user_id = ? AND date_key = ?", uid, key).
			Update("is_completed", false).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ? AND date_key = ?", uid, key).
			Delete(&models.HistoryEntry{}).Error; err != nil {
			return err
		}
		return tx.Model(&models.EatingStreak{}).
			Where("user_id = ?", uid).
			Update("good_eating_streak", 0).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}
