package services

import (
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/Glory2TheLord/FitLogV1/models"
)

type stubVerifier struct{ seesPerson bool }

func (v stubVerifier) ContainsPerson(string) (bool, error) { return v.seesPerson, nil }

// newStubPhotoService swaps the S3 uploader for one that fabricates URLs.
func newStubPhotoService(db *gorm.DB, verifier PersonVerifier) *PhotoService {
	svc := NewPhotoService(db, verifier)
	svc.upload = func(_, keyPrefix string) (string, error) {
		return "https://cdn.example.com/" + keyPrefix + ".jpg", nil
	}
	return svc
}

func countEventsOfType(t *testing.T, db *gorm.DB, userID uint, dateKey, evType string) int {
	t.Helper()

	entry, err := NewHistoryService(db).Get(userID, dateKey)
	if err == gorm.ErrRecordNotFound {
		return 0
	}
	if err != nil {
		t.Fatal(err)
	}
	events, err := EventsOf(entry)
	if err != nil {
		t.Fatal(err)
	}
	n := 0
	for _, ev := range events {
		if ev.Type == evType {
			n++
		}
	}
	return n
}

func TestUploadPositionPhotoFillsDay(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := newStubPhotoService(db, nil)
	key := DateKey(time.Now())

	for i, pos := range models.PhotoPositionIDs {
		day, err := svc.UploadPositionPhoto(u.ID, key, pos, "base64data")
		if err != nil {
			t.Fatalf("upload %s: %v", pos, err)
		}
		positions, err := decodePositions(day.Positions)
		if err != nil {
			t.Fatal(err)
		}
		if got := countFilled(positions); got != i+1 {
			t.Fatalf("after %s: filled = %d, want %d", pos, got, i+1)
		}
	}

	taken, required, complete, err := svc.StatusForDate(u.ID, key)
	if err != nil {
		t.Fatal(err)
	}
	if taken != 5 || required != 5 || !complete {
		t.Fatalf("status = %d/%d complete=%v, want 5/5 true", taken, required, complete)
	}

	// Filling the last slot fires the all-done event exactly once; every
	// upload records a slot event.
	if n := countEventsOfType(t, db, u.ID, key, models.EventPhotosCompleted); n != 1 {
		t.Fatalf("photosCompleted events = %d, want 1", n)
	}
	if n := countEventsOfType(t, db, u.ID, key, models.EventPhotosSlotCompleted); n != 5 {
		t.Fatalf("photosSlotCompleted events = %d, want 5", n)
	}

	// Re-uploading a position replaces the shot without a second all-done
	// event.
	day, err := svc.UploadPositionPhoto(u.ID, key, "front", "newerdata")
	if err != nil {
		t.Fatal(err)
	}
	positions, err := decodePositions(day.Positions)
	if err != nil {
		t.Fatal(err)
	}
	if got := countFilled(positions); got != 5 {
		t.Fatalf("filled after re-upload = %d, want 5", got)
	}
	if n := countEventsOfType(t, db, u.ID, key, models.EventPhotosCompleted); n != 1 {
		t.Fatalf("photosCompleted events after re-upload = %d, want 1", n)
	}
}

func TestUploadPositionPhotoValidation(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	key := DateKey(time.Now())

	svc := newStubPhotoService(db, nil)
	if _, err := svc.UploadPositionPhoto(u.ID, key, "overhead", "base64data"); err != ErrUnknownPosition {
		t.Fatalf("unknown position: got %v, want ErrUnknownPosition", err)
	}

	// A verifier that sees no person blocks the upload.
	svc = newStubPhotoService(db, stubVerifier{seesPerson: false})
	if _, err := svc.UploadPositionPhoto(u.ID, key, "front", "base64data"); err != ErrNoPersonInPhoto {
		t.Fatalf("no person: got %v, want ErrNoPersonInPhoto", err)
	}

	svc = newStubPhotoService(db, stubVerifier{seesPerson: true})
	day, err := svc.UploadPositionPhoto(u.ID, key, "front", "base64data")
	if err != nil {
		t.Fatal(err)
	}
	positions, err := decodePositions(day.Positions)
	if err != nil {
		t.Fatal(err)
	}
	for _, p := range positions {
		if p.ID == "front" && !strings.Contains(p.ImageURL, "photos/") {
			t.Fatalf("front URL = %q", p.ImageURL)
		}
	}
}

func TestDeletePhotoDayFreesDateKey(t *testing.T) {
	db := newTestDB(t)
	u := newTestUser(t, db, 0)
	svc := newStubPhotoService(db, nil)
	key := DateKey(time.Now())

	if _, err := svc.UploadPositionPhoto(u.ID, key, "front", "base64data"); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteDay(u.ID, key); err != nil {
		t.Fatal(err)
	}

	// The (user, date key) slot must be reusable after a delete.
	day, err := svc.GetOrCreateDay(u.ID, key)
	if err != nil {
		t.Fatalf("recreate after delete: %v", err)
	}
	positions, err := decodePositions(day.Positions)
	if err != nil {
		t.Fatal(err)
	}
	if got := countFilled(positions); got != 0 {
		t.Fatalf("recreated album filled = %d, want 0", got)
	}
}
