package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
)

type MetricsController struct {
	Metrics *services.MetricsService
}

func NewMetricsController(m *services.MetricsService) *MetricsController {
	return &MetricsController{Metrics: m}
}

func (mc *MetricsController) GetToday(c *gin.Context) {
	uid := c.GetUint("userID")

	m, err := mc.Metrics.GetToday(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

func metricsStatus(err error) int {
	if errors.Is(err, services.ErrInvalidAmount) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (mc *MetricsController) AddSteps(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Steps int `json:"steps" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.Metrics.AddSteps(uid, input.Steps)
	if err != nil {
		c.JSON(metricsStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

// SetSteps overwrites the step total, used by device syncs.
func (mc *MetricsController) SetSteps(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Steps *int `json:"steps" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.Metrics.SetSteps(uid, *input.Steps)
	if err != nil {
		c.JSON(metricsStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (mc *MetricsController) AddWater(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Liters float64 `json:"liters" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.Metrics.AddWater(uid, input.Liters)
	if err != nil {
		c.JSON(metricsStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}

func (mc *MetricsController) SetBloodPressure(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		Systolic  int `json:"systolic" binding:"required"`
		Diastolic int `json:"diastolic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	m, err := mc.Metrics.SetBloodPressure(uid, input.Systolic, input.Diastolic)
	if err != nil {
		c.JSON(metricsStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, m)
}
