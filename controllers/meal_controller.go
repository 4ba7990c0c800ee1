package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
)

type MealController struct {
	Meals *services.MealTrackingService
}

func NewMealController(m *services.MealTrackingService) *MealController {
	return &MealController{Meals: m}
}

func mealStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrTemplateNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrSlotOutOfRange):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func (mc *MealController) ListTemplates(c *gin.Context) {
	uid := c.GetUint("userID")

	templates, err := mc.Meals.ListTemplates(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (mc *MealController) CreateTemplate(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.MealTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := mc.Meals.CreateTemplate(uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, t)
}

func (mc *MealController) UpdateTemplate(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	var input services.MealTemplateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	t, err := mc.Meals.UpdateTemplate(uid, uint(id), input)
	if err != nil {
		c.JSON(mealStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, t)
}

func (mc *MealController) DeleteTemplate(c *gin.Context) {
	uid := c.GetUint("userID")
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid template id"})
		return
	}

	if err := mc.Meals.DeleteTemplate(uid, uint(id)); err != nil {
		c.JSON(mealStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "template deleted"})
}

func (mc *MealController) GetSlots(c *gin.Context) {
	uid := c.GetUint("userID")

	slots, err := mc.Meals.GetSlots(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slots)
}

func (mc *MealController) AssignTemplate(c *gin.Context) {
	uid := c.GetUint("userID")
	slotIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot index"})
		return
	}

	var input struct {
		TemplateID *uint `json:"templateId"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := mc.Meals.AssignTemplate(uid, slotIndex, input.TemplateID)
	if err != nil {
		c.JSON(mealStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slot)
}

func (mc *MealController) SetSlotCompleted(c *gin.Context) {
	uid := c.GetUint("userID")
	slotIndex, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid slot index"})
		return
	}

	var input struct {
		Completed *bool `json:"completed" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	slot, err := mc.Meals.SetSlotCompleted(uid, slotIndex, *input.Completed)
	if err != nil {
		c.JSON(mealStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, slot)
}
