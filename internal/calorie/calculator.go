package calorie

import (
	"fmt"
	"math"

	"calPalAPI/internal/validation"
)

// Mifflin-St Jeor style estimation with imperial inputs, as the tracker's
// calculator page defines it.

type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

type Input struct {
	Sex           Sex `json:"sex"`
	Age           int `json:"age"`
	HeightFeet    int `json:"heightFeet"`
	HeightInches  int `json:"heightInches"`
	WeightLbs     int `json:"weightLbs"`
	ActivityLevel int `json:"activityLevel"` // 1..5
	GoalLevel     int `json:"goalLevel"`     // 1..6
}

type Result struct {
	BMR            int    `json:"bmr"`
	Maintenance    int    `json:"maintenance"`
	TargetCalories int    `json:"targetCalories"`
	ProteinGrams   int    `json:"proteinGrams"`
	CarbsGrams     int    `json:"carbsGrams"`
	FatGrams       int    `json:"fatGrams"`
	Message        string `json:"message"`
}

var activityMultipliers = map[int]float64{
	1: 1.2,
	2: 1.375,
	3: 1.55,
	4: 1.725,
	5: 1.9,
}

var goalAdjustments = map[int]int{
	1: 0,    // maintain
	2: -250, // mild loss
	3: -500, // moderate loss
	4: -750, // aggressive loss
	5: 250,  // mild gain
	6: 500,  // moderate gain
}

func Calculate(in Input) (*Result, error) {
	if in.Age < 15 || in.Age > 100 {
		return nil, validation.Errorf("age", "must be between 15 and 100")
	}
	if in.WeightLbs < 50 || in.WeightLbs > 500 {
		return nil, validation.Errorf("weightLbs", "must be between 50 and 500 lbs")
	}
	if in.HeightFeet <= 0 {
		return nil, validation.Errorf("heightFeet", "is required")
	}

	heightInches := in.HeightFeet*12 + in.HeightInches
	bmr := basalMetabolicRate(in.Sex, float64(in.WeightLbs), float64(heightInches), float64(in.Age))

	multiplier, ok := activityMultipliers[in.ActivityLevel]
	if !ok {
		multiplier = 1.2
	}
	maintenance := int(math.Round(float64(bmr) * multiplier))

	adjustment := goalAdjustments[in.GoalLevel]
	target := maintenance + adjustment

	return &Result{
		BMR:            bmr,
		Maintenance:    maintenance,
		TargetCalories: target,
		ProteinGrams:   int(math.Round(float64(target) * 0.30 / 4)),
		FatGrams:       int(math.Round(float64(target) * 0.25 / 9)),
		CarbsGrams:     int(math.Round(float64(target) * 0.45 / 4)),
		Message:        adjustmentMessage(adjustment),
	}, nil
}

func basalMetabolicRate(sex Sex, weightLbs, heightInches, age float64) int {
	weightKg := weightLbs * 0.453592
	heightCm := heightInches * 2.54

	var bmr float64
	if sex == SexMale {
		bmr = 88.362 + 13.397*weightKg + 4.799*heightCm - 5.677*age
	} else {
		bmr = 447.593 + 9.247*weightKg + 3.098*heightCm - 4.330*age
	}
	return int(math.Round(bmr))
}

func adjustmentMessage(adjustment int) string {
	switch {
	case adjustment < 0:
		return fmt.Sprintf("Your target is set for weight loss. You'll create a calorie deficit of %d kcal per day.", -adjustment)
	case adjustment > 0:
		return fmt.Sprintf("Your target is set for weight gain. You'll create a calorie surplus of %d kcal per day.", adjustment)
	default:
		return "Your target is set to maintain your current weight."
	}
}
