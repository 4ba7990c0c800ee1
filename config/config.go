package config

import (
	"fmt"
	"log"
	"os"

	"github.com/Glory2TheLord/FitLogV1/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func InitDB() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
}

// Migrate runs schema migration for every model. Split out so tests can
// run it against their own database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Preferences{},
		&models.UserProfile{},
		&models.DayMetrics{},
		&models.HistoryEntry{},
		&models.MealTemplate{},
		&models.MealSlot{},
		&models.ProgramDay{},
		&models.WorkoutTemplate{},
		&models.WorkoutEntry{},
		&models.PhotoDay{},
		&models.WeighIn{},
		&models.EatingStreak{},
		&models.UserDevice{},
	)
}
