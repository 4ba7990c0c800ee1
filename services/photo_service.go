package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
	"github.com/Glory2TheLord/FitLogV1/utils"
)

var (
	ErrUnknownPosition = errors.New("unknown photo position")
	ErrNoPersonInPhoto = errors.New("no person detected in photo")
)

// PersonVerifier gates uploads on a person being visible in the shot.
type PersonVerifier interface {
	ContainsPerson(base64Img string) (bool, error)
}

// PhotoService owns date-keyed progress-photo albums. Images land in S3;
// the database keeps only position metadata and URLs.
type PhotoService struct {
	db       *gorm.DB
	upload   func(base64Data, keyPrefix string) (string, error)
	verifier PersonVerifier // nil disables the person check
}

func NewPhotoService(db *gorm.DB, verifier PersonVerifier) *PhotoService {
	return &PhotoService{
		db:       db,
		upload:   utils.UploadBase64ImageToS3,
		verifier: verifier,
	}
}

func emptyPositions() []models.PhotoPosition {
	out := make([]models.PhotoPosition, 0, len(models.PhotoPositionIDs))
	for _, id := range models.PhotoPositionIDs {
		out = append(out, models.PhotoPosition{ID: id, Label: models.PhotoPositionLabels[id]})
	}
	return out
}

func decodePositions(raw datatypes.JSON) ([]models.PhotoPosition, error) {
	if len(raw) == 0 {
		return emptyPositions(), nil
	}
	var positions []models.PhotoPosition
	if err := json.Unmarshal(raw, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

func encodePositions(positions []models.PhotoPosition) (datatypes.JSON, error) {
	raw, err := json.Marshal(positions)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// GetOrCreateDay returns the album for one day, creating it with the five
// empty positions on first read.
func (s *PhotoService) GetOrCreateDay(userID uint, dateKey string) (*models.PhotoDay, error) {
	var day models.PhotoDay
	err := s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&day).Error
	if err == gorm.ErrRecordNotFound {
		date, perr := time.ParseInLocation("2006-01-02", dateKey, time.Local)
		if perr != nil {
			return nil, fmt.Errorf("bad date key %q: %w", dateKey, perr)
		}
		positions, perr := encodePositions(emptyPositions())
		if perr != nil {
			return nil, perr
		}
		day = models.PhotoDay{
			UserID:      userID,
			DateKey:     dateKey,
			DisplayDate: date.Format("January 2, 2006"),
			Positions:   positions,
		}
		if err := s.db.Create(&day).Error; err != nil {
			return nil, err
		}
		return &day, nil
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

// UploadPositionPhoto verifies, stores and records one position's shot.
// Re-uploading a position replaces its URL.
func (s *PhotoService) UploadPositionPhoto(userID uint, dateKey, positionID, base64Data string) (*models.PhotoDay, error) {
	if _, ok := models.PhotoPositionLabels[positionID]; !ok {
		return nil, ErrUnknownPosition
	}

	if s.verifier != nil {
		ok, err := s.verifier.ContainsPerson(base64Data)
		if err != nil {
			return nil, fmt.Errorf("photo check failed: %w", err)
		}
		if !ok {
			return nil, ErrNoPersonInPhoto
		}
	}

	day, err := s.GetOrCreateDay(userID, dateKey)
	if err != nil {
		return nil, err
	}
	positions, err := decodePositions(day.Positions)
	if err != nil {
		return nil, err
	}

	url, err := s.upload(base64Data, fmt.Sprintf("photos/%d/%s/%s", userID, dateKey, positionID))
	if err != nil {
		return nil, err
	}

	filledBefore := countFilled(positions)
	for i := range positions {
		if positions[i].ID == positionID {
			positions[i].ImageURL = url
		}
	}
	encoded, err := encodePositions(positions)
	if err != nil {
		return nil, err
	}
	day.Positions = encoded
	if err := s.db.Save(day).Error; err != nil {
		return nil, err
	}

	EmitEvent(userID, models.EventPhotosSlotCompleted,
		fmt.Sprintf("%s photo uploaded", models.PhotoPositionLabels[positionID]),
		map[string]any{"position": positionID, "dateKey": dateKey})
	if filled := countFilled(positions); filled == len(positions) && filledBefore < filled {
		EmitEvent(userID, models.EventPhotosCompleted, "All progress photos taken", nil)
	}
	return day, nil
}

func countFilled(positions []models.PhotoPosition) int {
	n := 0
	for _, p := range positions {
		if p.ImageURL != "" {
			n++
		}
	}
	return n
}

// StatusForDate reports how many positions are filled for one day.
func (s *PhotoService) StatusForDate(userID uint, dateKey string) (taken, required int, complete bool, err error) {
	required = len(models.PhotoPositionIDs)
	var day models.PhotoDay
	err = s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).First(&day).Error
	if err == gorm.ErrRecordNotFound {
		return 0, required, false, nil
	}
	if err != nil {
		return 0, required, false, err
	}
	positions, derr := decodePositions(day.Positions)
	if derr != nil {
		return 0, required, false, derr
	}
	taken = countFilled(positions)
	return taken, required, taken == required, nil
}

// ListDays returns all albums, newest first.
func (s *PhotoService) ListDays(userID uint) ([]models.PhotoDay, error) {
	var days []models.PhotoDay
	err := s.db.Where("user_id = ?", userID).Order("date_key DESC").Find(&days).Error
	return days, err
}

// DeleteDay removes an album. Unscoped so the (user, date key) slot can
// be recreated afterwards.
func (s *PhotoService) DeleteDay(userID uint, dateKey string) error {
	return s.db.Unscoped().Where("user_id = ? AND date_key = ?", userID, dateKey).
		Delete(&models.PhotoDay{}).Error
}
