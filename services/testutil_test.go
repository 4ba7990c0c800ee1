package services

import (
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Glory2TheLord/FitLogV1/config"
	"github.com/Glory2TheLord/FitLogV1/models"
)

// newTestDB opens a fresh in-memory database with the full schema and
// routes emitted events into it.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	InitEventDeps(NewHistoryService(db), nil, nil)
	t.Cleanup(func() { InitEventDeps(nil, nil, nil) })
	return db
}

// newTestUser creates a user whose program started the given number of
// days ago.
func newTestUser(t *testing.T, db *gorm.DB, daysIntoProgram int) *models.User {
	t.Helper()

	u := models.User{
		Email:            "test@example.com",
		Password:         "x",
		FirstName:        "Test",
		ProgramStartDate: time.Now().AddDate(0, 0, -daysIntoProgram),
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &u
}

func intPtr(v int) *int           { return &v }
func uintPtr(v uint) *uint        { return &v }
func floatPtr(v float64) *float64 { return &v }
