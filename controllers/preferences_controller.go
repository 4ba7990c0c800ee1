package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
)

type PreferencesController struct {
	Prefs *services.PreferencesService
}

func NewPreferencesController(p *services.PreferencesService) *PreferencesController {
	return &PreferencesController{Prefs: p}
}

func (pc *PreferencesController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	prefs, err := pc.Prefs.Get(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (pc *PreferencesController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.UpdatePreferencesInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prefs, err := pc.Prefs.Update(uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, prefs)
}
