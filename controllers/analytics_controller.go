package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
)

type AnalyticsController struct {
	Analytics *services.AnalyticsService
}

func NewAnalyticsController(a *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{Analytics: a}
}

// Weekly renders seven days starting at ?week_start (default: the last
// Monday). Mode is chart or detailed.
func (ac *AnalyticsController) Weekly(c *gin.Context) {
	uid := c.GetUint("userID")

	mode := c.DefaultQuery("mode", "chart")
	weekStart := lastMonday(time.Now())
	if v := c.Query("week_start"); v != "" {
		parsed, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "week_start must be YYYY-MM-DD"})
			return
		}
		weekStart = parsed
	}

	out, err := ac.Analytics.WeeklyOverview(c.Request.Context(), uid, weekStart, mode)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// Summary aggregates completed days over ?from / ?to (default: trailing
// 30 days).
func (ac *AnalyticsController) Summary(c *gin.Context) {
	uid := c.GetUint("userID")

	to := time.Now()
	from := to.AddDate(0, 0, -29)
	var err error
	if v := c.Query("from"); v != "" {
		if from, err = time.ParseInLocation("2006-01-02", v, time.Local); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "from must be YYYY-MM-DD"})
			return
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err = time.ParseInLocation("2006-01-02", v, time.Local); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "to must be YYYY-MM-DD"})
			return
		}
	}

	out, err := ac.Analytics.Summary(c.Request.Context(), uid, from, to)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, out)
}

// EmailSummary mails last week's numbers to the signed-in user.
func (ac *AnalyticsController) EmailSummary(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := ac.Analytics.EmailWeeklySummary(c.Request.Context(), uid); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "summary sent"})
}

func lastMonday(t time.Time) time.Time {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	for d.Weekday() != time.Monday {
		d = d.AddDate(0, 0, -1)
	}
	return d
}
