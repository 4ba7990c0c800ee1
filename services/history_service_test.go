package services

import (
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

func TestHistoryUpsertOverwrites(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewHistoryService(db)

	first := &models.HistoryEntry{UserID: u.ID, DateKey: "2026-01-10", Steps: 5000, AllGoalsReached: true}
	if err := svc.Upsert(first); err != nil {
		t.Fatal(err)
	}
	second := &models.HistoryEntry{UserID: u.ID, DateKey: "2026-01-10", Steps: 12000}
	if err := svc.Upsert(second); err != nil {
		t.Fatal(err)
	}

	got, err := svc.Get(u.ID, "2026-01-10")
	if err != nil {
		t.Fatal(err)
	}
	if got.Steps != 12000 {
		t.Fatalf("steps = %d, want 12000", got.Steps)
	}
	// A full overwrite clears previously set flags too.
	if got.AllGoalsReached {
		t.Fatal("re-save should overwrite zero-valued fields")
	}

	var n int64
	if err := db.Model(&models.HistoryEntry{}).Where("user_id = ?", u.ID).Count(&n).Error; err != nil {
		t.Fatal(err)
	}
	if n != 1 {
		t.Fatalf("rows = %d, want 1", n)
	}
}

func TestHistoryListNewestFirst(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewHistoryService(db)

	for _, key := range []string{"2026-01-08", "2026-01-10", "2026-01-09"} {
		if err := svc.Upsert(&models.HistoryEntry{UserID: u.ID, DateKey: key}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := svc.List(u.ID)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"2026-01-10", "2026-01-09", "2026-01-08"}
	for i, e := range entries {
		if e.DateKey != want[i] {
			t.Fatalf("entries[%d] = %s, want %s", i, e.DateKey, want[i])
		}
	}
}

func TestAppendEventForTodayCreatesPlaceholder(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewHistoryService(db)

	ev := NewHistoryEvent(models.EventWaterLogged, "Logged 0.50L of water", nil)
	if err := svc.AppendEventForToday(u.ID, ev); err != nil {
		t.Fatal(err)
	}

	entry, err := svc.Get(u.ID, DateKey(time.Now()))
	if err != nil {
		t.Fatal(err)
	}
	if entry.IsDayComplete {
		t.Fatal("placeholder entry must not be marked complete")
	}

	events, err := EventsOf(entry)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != models.EventWaterLogged {
		t.Fatalf("events = %+v", events)
	}
}

func TestSortedEventsOfOrdersByTimestamp(t *testing.T) {
	entry := &models.HistoryEntry{}
	events := []models.HistoryEvent{
		{ID: "b", TimestampISO: "2026-01-10T12:00:00Z", Type: models.EventWaterLogged},
		{ID: "a", TimestampISO: "2026-01-10T08:00:00Z", Type: models.EventStepsAddedManual},
		{ID: "c", TimestampISO: "2026-01-10T20:00:00Z", Type: models.EventMarkDayComplete},
	}
	encoded, err := EncodeEvents(events)
	if err != nil {
		t.Fatal(err)
	}
	entry.Events = encoded

	sorted, err := SortedEventsOf(entry)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []string{"a", "b", "c"} {
		if sorted[i].ID != want {
			t.Fatalf("sorted[%d] = %s, want %s", i, sorted[i].ID, want)
		}
	}

	// Stored order is untouched.
	stored, err := EventsOf(entry)
	if err != nil {
		t.Fatal(err)
	}
	if stored[0].ID != "b" {
		t.Fatal("stored order should remain insertion order")
	}
}

func TestHistoryDelete(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewHistoryService(db)

	if err := svc.Upsert(&models.HistoryEntry{UserID: u.ID, DateKey: "2026-01-10"}); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(u.ID, "2026-01-10"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Get(u.ID, "2026-01-10"); err != gorm.ErrRecordNotFound {
		t.Fatalf("expected record gone, got %v", err)
	}
	// Deleting a missing day is fine.
	if err := svc.Delete(u.ID, "2026-01-11"); err != nil {
		t.Fatal(err)
	}
}

func TestHistoryDeleteFreesDateKey(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := NewHistoryService(db)

	key := DateKey(time.Now())
	if err := svc.AppendEventForToday(u.ID, NewHistoryEvent(models.EventWaterLogged, "Logged 1.00L of water", nil)); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(u.ID, key); err != nil {
		t.Fatal(err)
	}

	// The (user, date key) slot must be reusable after a delete, both for
	// lazy placeholder creation and for an explicit upsert.
	if err := svc.AppendEventForToday(u.ID, NewHistoryEvent(models.EventStepsAddedManual, "Added 500 steps", nil)); err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
	entry, err := svc.Get(u.ID, key)
	if err != nil {
		t.Fatal(err)
	}
	events, err := EventsOf(entry)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].Type != models.EventStepsAddedManual {
		t.Fatalf("events = %+v", events)
	}

	if err := svc.Delete(u.ID, key); err != nil {
		t.Fatal(err)
	}
	if err := svc.Upsert(&models.HistoryEntry{UserID: u.ID, DateKey: key, Steps: 100}); err != nil {
		t.Fatalf("upsert after delete: %v", err)
	}
}
