package utils

import (
	"math"
	"testing"
)

func TestMaintenanceCalories(t *testing.T) {
	// 30 year old male, 180cm, 180lbs, light activity.
	// BMR = 10*81.65 + 6.25*180 - 5*30 + 5 = 1796.5; *1.375 ≈ 2470
	got, err := MaintenanceCalories("male", 30, 180, 180, "light")
	if err != nil {
		t.Fatal(err)
	}
	if got < 2460 || got > 2480 {
		t.Fatalf("maintenance = %d, want ~2470", got)
	}

	female, err := MaintenanceCalories("female", 30, 180, 180, "light")
	if err != nil {
		t.Fatal(err)
	}
	// Female formula runs 166 kcal lower before the activity factor.
	if female >= got {
		t.Fatalf("female estimate %d should be below male %d", female, got)
	}
}

func TestMaintenanceCaloriesValidation(t *testing.T) {
	if _, err := MaintenanceCalories("male", 0, 180, 180, "light"); err == nil {
		t.Error("zero age should be rejected")
	}
	if _, err := MaintenanceCalories("male", 30, 180, 180, "extreme"); err == nil {
		t.Error("unknown activity level should be rejected")
	}
}

func TestLbsKgRoundTrip(t *testing.T) {
	kg := LbsToKg(180)
	if math.Abs(kg-81.65) > 0.01 {
		t.Fatalf("180 lbs = %.2f kg, want ~81.65", kg)
	}
	if got := KgToLbs(kg); math.Abs(got-180) > 0.1 {
		t.Fatalf("round trip = %.1f, want 180", got)
	}
}

func TestBMICategories(t *testing.T) {
	bmi, err := CalculateBMI(180, 81.65)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(bmi-25.2) > 0.1 {
		t.Fatalf("bmi = %.1f, want ~25.2", bmi)
	}
	if got := BMICategory(bmi); got != "Overweight" {
		t.Fatalf("category = %s", got)
	}
	if got := BMICategory(22); got != "Normal weight" {
		t.Fatalf("category = %s", got)
	}
}
