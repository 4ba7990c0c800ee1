package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
	"github.com/Glory2TheLord/FitLogV1/utils"
)

type ProfileController struct {
	Profile *services.ProfileService
}

func NewProfileController(p *services.ProfileService) *ProfileController {
	return &ProfileController{Profile: p}
}

func (pc *ProfileController) Get(c *gin.Context) {
	uid := c.GetUint("userID")

	profile, err := pc.Profile.Get(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	resp := gin.H{"profile": profile}
	if profile.HeightCm != nil && profile.CurrentWeightLbs != nil {
		if bmi, err := utils.CalculateBMI(*profile.HeightCm, utils.LbsToKg(*profile.CurrentWeightLbs)); err == nil {
			resp["bmi"] = bmi
			resp["bmi_category"] = utils.BMICategory(bmi)
		}
	}
	c.JSON(http.StatusOK, resp)
}

func (pc *ProfileController) Update(c *gin.Context) {
	uid := c.GetUint("userID")

	var input services.ProfileUpdateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := pc.Profile.Update(uid, input)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, profile)
}
