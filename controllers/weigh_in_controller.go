package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
)

type WeighInController struct {
	WeighIns *services.WeighInService
}

func NewWeighInController(w *services.WeighInService) *WeighInController {
	return &WeighInController{WeighIns: w}
}

func (wc *WeighInController) Record(c *gin.Context) {
	uid := c.GetUint("userID")

	var input struct {
		WeightLbs float64 `json:"weightLbs" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := wc.WeighIns.RecordWeighIn(uid, input.WeightLbs)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrInvalidAmount) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, w)
}

func (wc *WeighInController) List(c *gin.Context) {
	uid := c.GetUint("userID")

	weighIns, err := wc.WeighIns.List(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	weeks, err := wc.WeighIns.WeeksUntilGoal(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"weighIns":       weighIns,
		"weeksUntilGoal": weeks,
	})
}
