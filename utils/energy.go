package utils

import (
	"errors"
	"math"
)

const lbPerKg = 2.20462

// Activity multipliers applied on top of BMR.
var activityFactors = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

func LbsToKg(lbs float64) float64 { return lbs / lbPerKg }

func KgToLbs(kg float64) float64 { return math.Round(kg*lbPerKg*10) / 10 }

// MaintenanceCalories estimates daily maintenance via Mifflin-St Jeor.
// Weight in pounds, height in centimeters. The male formula is used as a
// neutral default for sex values other than "female".
func MaintenanceCalories(sex string, age int, heightCm, weightLbs float64, activityLevel string) (int, error) {
	if age <= 0 || heightCm <= 0 || weightLbs <= 0 {
		return 0, errors.New("age, height and weight must be positive")
	}
	factor, ok := activityFactors[activityLevel]
	if !ok {
		return 0, errors.New("unknown activity level")
	}

	weightKg := LbsToKg(weightLbs)
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if sex == "female" {
		bmr -= 161
	} else {
		bmr += 5
	}

	return int(math.Round(bmr * factor)), nil
}

// CalculateBMI expects height in centimeters and weight in kilograms.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}
	// Sanity checks to avoid garbage input
	if heightCm < 50 || heightCm > 250 || weightKg < 10 || weightKg > 400 {
		return 0, errors.New("height/weight out of plausible range")
	}

	h := heightCm / 100.0 // to meters
	return weightKg / (h * h), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25.0:
		return "Normal weight"
	case bmi < 30.0:
		return "Overweight"
	case bmi < 35.0:
		return "Obesity class I"
	case bmi < 40.0:
		return "Obesity class II"
	default:
		return "Obesity class III"
	}
}
