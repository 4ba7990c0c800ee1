package services

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

// HistoryService owns the per-day snapshot store. One entry per user and
// local calendar day, upserted on the date key.
type HistoryService struct {
	db *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService {
	return &HistoryService{db: db}
}

// NewHistoryEvent builds a timeline event stamped with the current time.
func NewHistoryEvent(evType, summary string, details map[string]any) models.HistoryEvent {
	return models.HistoryEvent{
		ID:           uuid.NewString(),
		TimestampISO: time.Now().Format(time.RFC3339),
		Type:         evType,
		Summary:      summary,
		Details:      details,
	}
}

// EventsOf decodes an entry's timeline in stored (insertion) order.
func EventsOf(entry *models.HistoryEntry) ([]models.HistoryEvent, error) {
	if len(entry.Events) == 0 {
		return []models.HistoryEvent{}, nil
	}
	var events []models.HistoryEvent
	if err := json.Unmarshal(entry.Events, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// SortedEventsOf decodes an entry's timeline ordered by event timestamp.
func SortedEventsOf(entry *models.HistoryEntry) ([]models.HistoryEvent, error) {
	events, err := EventsOf(entry)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].TimestampISO < events[j].TimestampISO
	})
	return events, nil
}

// EncodeEvents marshals a timeline for storage.
func EncodeEvents(events []models.HistoryEvent) (datatypes.JSON, error) {
	raw, err := json.Marshal(events)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// Upsert writes the entry for its user+date key, replacing any existing
// row in full. Zero-valued fields overwrite, which matters when a re-save
// clears a previously set flag.
func (s *HistoryService) Upsert(entry *models.HistoryEntry) error {
	var existing models.HistoryEntry
	err := s.db.Where("user_id = ? AND date_key = ?", entry.UserID, entry.DateKey).
		First(&existing).Error
	switch {
	case err == nil:
		entry.ID = existing.ID
		entry.CreatedAt = existing.CreatedAt
		return s.db.Save(entry).Error
	case err == gorm.ErrRecordNotFound:
		return s.db.Create(entry).Error
	default:
		return err
	}
}

// Get returns the entry for one day, or gorm.ErrRecordNotFound.
func (s *HistoryService) Get(userID uint, dateKey string) (*models.HistoryEntry, error) {
	var entry models.HistoryEntry
	if err := s.db.Where("user_id = ? AND date_key = ?", userID, dateKey).
		First(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// List returns all entries for a user, newest day first.
func (s *HistoryService) List(userID uint) ([]models.HistoryEntry, error) {
	var entries []models.HistoryEntry
	if err := s.db.Where("user_id = ?", userID).
		Order("date_key DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Delete removes one day's entry. Deleting a missing day is a no-op.
// The delete is unscoped: a soft-deleted row would still occupy the
// unique (user, date key) slot and block lazy recreation.
func (s *HistoryService) Delete(userID uint, dateKey string) error {
	return s.db.Unscoped().Where("user_id = ? AND date_key = ?", userID, dateKey).
		Delete(&models.HistoryEntry{}).Error
}

// AppendEventForToday appends to today's timeline, creating a placeholder
// (not-yet-complete) entry on first write of the day.
func (s *HistoryService) AppendEventForToday(userID uint, ev models.HistoryEvent) error {
	now := time.Now()
	key := DateKey(now)

	var entry models.HistoryEntry
	err := s.db.Where("user_id = ? AND date_key = ?", userID, key).First(&entry).Error
	if err == gorm.ErrRecordNotFound {
		entry = models.HistoryEntry{
			UserID:  userID,
			DateKey: key,
			DateISO: dayStartLocal(now).Format(time.RFC3339),
		}
	} else if err != nil {
		return err
	}

	events, err := EventsOf(&entry)
	if err != nil {
		return err
	}
	events = append(events, ev)

	encoded, err := EncodeEvents(events)
	if err != nil {
		return err
	}
	entry.Events = encoded

	return s.Upsert(&entry)
}
