package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// The five progress-photo positions required to complete a photo day.
var PhotoPositionIDs = []string{"front", "left", "right", "back", "flex"}

var PhotoPositionLabels = map[string]string{
	"front": "Front",
	"left":  "Left Side",
	"right": "Right Side",
	"back":  "Back",
	"flex":  "Flex",
}

// PhotoPosition is one slot of a photo day; ImageURL is set once a shot
// has been uploaded.
type PhotoPosition struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// PhotoDay is a date-keyed progress-photo album.
type PhotoDay struct {
	gorm.Model
	UserID      uint   `gorm:"not null;uniqueIndex:idx_photo_day_user_date"`
	DateKey     string `gorm:"size:10;not null;uniqueIndex:idx_photo_day_user_date"`
	DisplayDate string

	Positions datatypes.JSON `gorm:"type:jsonb"` // []PhotoPosition
}
