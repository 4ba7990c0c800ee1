package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Glory2TheLord/FitLogV1/services"
)

type PhotoController struct {
	Photos *services.PhotoService
}

func NewPhotoController(p *services.PhotoService) *PhotoController {
	return &PhotoController{Photos: p}
}

func (pc *PhotoController) ListDays(c *gin.Context) {
	uid := c.GetUint("userID")

	days, err := pc.Photos.ListDays(uid)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, days)
}

func (pc *PhotoController) GetDay(c *gin.Context) {
	uid := c.GetUint("userID")

	dateKey := c.Param("date")
	if dateKey == "" {
		dateKey = services.DateKey(time.Now())
	}

	day, err := pc.Photos.GetOrCreateDay(uid, dateKey)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

type uploadPhotoInput struct {
	Position string `json:"position" binding:"required"`
	Image    string `json:"image" binding:"required"` // base64 data URI
}

func (pc *PhotoController) UploadPosition(c *gin.Context) {
	uid := c.GetUint("userID")
	dateKey := c.Param("date")

	var input uploadPhotoInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	day, err := pc.Photos.UploadPositionPhoto(uid, dateKey, input.Position, input.Image)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, services.ErrUnknownPosition) || errors.Is(err, services.ErrNoPersonInPhoto) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, day)
}

func (pc *PhotoController) DeleteDay(c *gin.Context) {
	uid := c.GetUint("userID")

	if err := pc.Photos.DeleteDay(uid, c.Param("date")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "photo day deleted"})
}
